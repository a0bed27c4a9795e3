// Package toolbar binds the measurement tool to toolbar buttons and menu items.
package toolbar

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"chart-measure/internal/measure"
	"chart-measure/ui/icons"
)

// Label is the user-visible name of the measurement action.
const Label = "Measure"

// AddToToolbar appends a button toggling tool to bar. The button's icon
// follows the tool state for as long as the tool lives.
func AddToToolbar(tool *measure.Tool, bar *widget.Toolbar) *widget.ToolbarAction {
	action := widget.NewToolbarAction(icons.Measure(tool.Active()), tool.Toggle)
	bar.Append(action)

	tool.Subscribe(measure.ObserverFunc(func(active bool) {
		action.Icon = icons.Measure(active)
		bar.Refresh()
	}))
	return action
}

// ContextMenuItem returns a new menu item toggling tool, checked while the
// tool is active. Build one each time the menu opens.
func ContextMenuItem(tool *measure.Tool) *fyne.MenuItem {
	item := fyne.NewMenuItem(Label, tool.Toggle)
	item.Checked = tool.Active()
	return item
}
