// Package config loads measurechart settings from a file and the environment.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"chart-measure/internal/numfmt"
	"chart-measure/pkg/colorutil"
)

// EnvPrefix is prepended to every environment override, e.g. MEASURECHART_LOG_LEVEL.
const EnvPrefix = "MEASURECHART"

// Config holds the runtime settings.
type Config struct {
	Series       string `mapstructure:"series"`
	ValueFormat  string `mapstructure:"value_format"`
	MeasureColor string `mapstructure:"measure_color"`
	LineColor    string `mapstructure:"line_color"`
	LogLevel     string `mapstructure:"log_level"`
	Development  bool   `mapstructure:"development"`
	Width        int    `mapstructure:"width"`
	Height       int    `mapstructure:"height"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("series", "")
	v.SetDefault("value_format", numfmt.SignedAmount.String())
	v.SetDefault("measure_color", "#000000")
	v.SetDefault("line_color", "#0000ff")
	v.SetDefault("log_level", "info")
	v.SetDefault("development", false)
	v.SetDefault("width", 900)
	v.SetDefault("height", 600)
}

// New returns a viper instance with defaults and environment binding applied.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file at path into v and returns the
// validated configuration. An empty path skips the file.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.MeasureColor = colorutil.Hex(cfg.Color())
	cfg.LineColor = colorutil.Hex(cfg.SeriesColor())
	return &cfg, nil
}

// Validate checks every field that is parsed later.
func (c *Config) Validate() error {
	var errs []error
	if _, err := numfmt.Parse(c.ValueFormat); err != nil {
		errs = append(errs, fmt.Errorf("value_format %q: %w", c.ValueFormat, err))
	}
	if _, err := colorutil.ParseHex(c.MeasureColor); err != nil {
		errs = append(errs, fmt.Errorf("measure_color %q: %w", c.MeasureColor, err))
	}
	if _, err := colorutil.ParseHex(c.LineColor); err != nil {
		errs = append(errs, fmt.Errorf("line_color %q: %w", c.LineColor, err))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height))
	}
	return errors.Join(errs...)
}

// Format returns the parsed value format. Call after Validate.
func (c *Config) Format() numfmt.Format {
	return numfmt.MustParse(c.ValueFormat)
}

// Color returns the parsed measurement color. Call after Validate.
func (c *Config) Color() color.RGBA {
	col, _ := colorutil.ParseHex(c.MeasureColor)
	return col
}

// SeriesColor returns the parsed series line color. Call after Validate.
func (c *Config) SeriesColor() color.RGBA {
	col, _ := colorutil.ParseHex(c.LineColor)
	return col
}
