// Package main provides the entry point for the measurechart application.
package main

import (
	"fmt"
	"os"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"chart-measure/internal/app"
	"chart-measure/internal/config"
	"chart-measure/internal/logging"
	"chart-measure/internal/version"
	"chart-measure/pkg/colorutil"
	"chart-measure/ui/mainwindow"
)

const appID = "io.github.chartmeasure"

func main() {
	if err := newRootCmd(config.New()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:           "measurechart [series-file]",
		Short:         "Time-series chart with a distance measurement overlay",
		Args:          cobra.MaximumNArgs(1),
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, cfgFile, args)
			if err != nil {
				return err
			}

			logger, err := logging.New(cfg.LogLevel, cfg.Development)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			run(cfg, logger)
			return nil
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	flags.String("value-format", "", "value format pattern, e.g. \"+#,##0.00;-#,##0.00\"")
	flags.String("color", "", "measurement color as #rrggbb")
	flags.String("log-level", "", "log level (debug, info, warn, error)")

	for key, flag := range map[string]string{
		"value_format":  "value-format",
		"measure_color": "color",
		"log_level":     "log-level",
	} {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}
	return cmd
}

// loadConfig merges the config file, environment, flags and the optional
// positional series path.
func loadConfig(v *viper.Viper, cfgFile string, args []string) (*config.Config, error) {
	if len(args) == 1 {
		v.Set("series", args[0])
	}
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func run(cfg *config.Config, log *zap.Logger) {
	log.Info("starting",
		zap.String("version", version.Version),
		zap.String("value_format", cfg.ValueFormat),
		zap.String("measure_color", colorutil.Hex(cfg.Color())),
		zap.String("line_color", colorutil.Hex(cfg.SeriesColor())),
		zap.String("series", cfg.Series))

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(&app.ChartTheme{Accent: cfg.Color()})
	state := app.NewState(log)

	win := mainwindow.New(fyneApp, state, cfg, log)
	win.LoadInitial()
	win.ShowAndRun()
}
