// Package mainwindow provides the main application window.
package mainwindow

import (
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"chart-measure/internal/app"
	"chart-measure/internal/chart"
	"chart-measure/internal/config"
	"chart-measure/internal/measure"
	"chart-measure/internal/series"
	"chart-measure/internal/version"
	"chart-measure/ui/canvas"
	"chart-measure/ui/toolbar"
)

const (
	appTitle       = "Measure Chart"
	prefKeyLastDir = "lastDirectory"

	statusReady     = "Ready"
	statusMeasuring = "Measure: click two points or drag between them"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	cfg   *config.Config
	log   *zap.Logger

	canvas    *canvas.ChartCanvas
	toolbar   *widget.Toolbar
	statusBar *widget.Label

	mainMenu    *fyne.MainMenu
	measureItem *fyne.MenuItem
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, cfg *config.Config, log *zap.Logger) *MainWindow {
	if log == nil {
		log = zap.NewNop()
	}
	win := fyneApp.NewWindow(appTitle)

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		cfg:    cfg,
		log:    log,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	mw.Resize(fyne.NewSize(float32(cfg.Width), float32(cfg.Height)))
	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	ch := chart.New(mw.cfg.Format())
	ch.SetLineColor(mw.cfg.SeriesColor())

	mw.canvas = canvas.NewChartCanvas(
		ch,
		mw.log,
		measure.WithColor(mw.cfg.Color()),
	)
	tool := mw.canvas.Tool()

	mw.canvas.SetContextMenu(func() []*fyne.MenuItem {
		return []*fyne.MenuItem{toolbar.ContextMenuItem(tool)}
	})
	mw.canvas.OnRedraw(func() {
		if label, ok := tool.Label(); ok {
			mw.state.Emit(app.EventMeasurementChanged, label)
		}
	})

	mw.statusBar = widget.NewLabel(statusReady)

	mw.toolbar = widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), mw.onOpenSeries),
		widget.NewToolbarSeparator(),
	)
	toolbar.AddToToolbar(tool, mw.toolbar)

	content := container.NewBorder(
		mw.toolbar,                        // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		mw.canvas,                         // center
	)

	mw.SetContent(content)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Series...", mw.onOpenSeries),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	tool := mw.canvas.Tool()
	mw.measureItem = fyne.NewMenuItem(toolbar.Label, tool.Toggle)
	viewMenu := fyne.NewMenu("View", mw.measureItem)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.mainMenu = fyne.NewMainMenu(fileMenu, viewMenu, helpMenu)
	mw.SetMainMenu(mw.mainMenu)
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.canvas.Tool().Subscribe(measure.ObserverFunc(func(active bool) {
		mw.state.Emit(app.EventMeasureToggled, active)
	}))

	mw.state.On(app.EventSeriesLoaded, func(data interface{}) {
		s, ok := data.(*series.Series)
		if !ok {
			return
		}
		mw.canvas.SetSeries(s)
		title := appTitle
		if s.Name != "" {
			title += " - " + s.Name
		}
		mw.SetTitle(title)
		mw.updateStatus("Series loaded: " + mw.state.SeriesPath)
	})

	mw.state.On(app.EventMeasureToggled, func(data interface{}) {
		active, ok := data.(bool)
		if !ok {
			return
		}
		mw.measureItem.Checked = active
		mw.mainMenu.Refresh()
		if active {
			mw.updateStatus(statusMeasuring)
		} else {
			mw.updateStatus(statusReady)
		}
	})

	mw.state.On(app.EventMeasurementChanged, func(data interface{}) {
		if label, ok := data.(string); ok {
			mw.updateStatus(label)
		}
	})
}

// LoadInitial loads the series named by the configuration, if any.
func (mw *MainWindow) LoadInitial() {
	if mw.cfg.Series == "" {
		return
	}
	if err := mw.state.LoadSeries(mw.cfg.Series); err != nil {
		mw.log.Error("failed to load series", zap.String("path", mw.cfg.Series), zap.Error(err))
		mw.updateStatus(err.Error())
	}
}

// Canvas returns the chart widget.
func (mw *MainWindow) Canvas() *canvas.ChartCanvas {
	return mw.canvas
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.app.Preferences().String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.app.Preferences().SetString(prefKeyLastDir, filepath.Dir(filePath))
}

func (mw *MainWindow) onOpenSeries() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.LoadSeries(path); err != nil {
			mw.log.Warn("failed to load series", zap.String("path", path), zap.Error(err))
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".txt", ".xlsx", ".xlsm"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About "+appTitle,
		version.String()+"\n\nA time-series chart with a measurement overlay.",
		mw.Window)
}
