package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chart-measure/internal/numfmt"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "+#,##0.00;-#,##0.00", cfg.ValueFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 900, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, color.RGBA{A: 255}, cfg.Color())
	assert.Equal(t, color.RGBA{B: 255, A: 255}, cfg.SeriesColor())
	assert.False(t, numfmt.IsPercent(cfg.Format()))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "measurechart.yaml")
	data := "value_format: \"#,##0.0%\"\nmeasure_color: \"3366CC\"\nline_color: \"#ff8800\"\nwidth: 1200\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, 1200, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.True(t, numfmt.IsPercent(cfg.Format()))
	assert.Equal(t, color.RGBA{R: 0x33, G: 0x66, B: 0xcc, A: 255}, cfg.Color())
	assert.Equal(t, "#3366cc", cfg.MeasureColor)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0x88, A: 255}, cfg.SeriesColor())
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("MEASURECHART_LOG_LEVEL", "debug")
	t.Setenv("MEASURECHART_SERIES", "prices.csv")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "prices.csv", cfg.Series)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			ValueFormat:  "#,##0.00",
			MeasureColor: "#000000",
			LineColor:    "#0000ff",
			LogLevel:     "info",
			Width:        10,
			Height:       10,
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid", func(*Config) {}, ""},
		{"empty format", func(c *Config) { c.ValueFormat = "" }, "value_format"},
		{"bad color", func(c *Config) { c.MeasureColor = "blue" }, "measure_color"},
		{"bad line color", func(c *Config) { c.LineColor = "#12" }, "line_color"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"zero width", func(c *Config) { c.Width = 0 }, "window size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidateEmptyFormatIsSentinel(t *testing.T) {
	cfg := Config{ValueFormat: "", MeasureColor: "#000000", LineColor: "#000000", LogLevel: "info", Width: 1, Height: 1}
	assert.ErrorIs(t, cfg.Validate(), numfmt.ErrEmptyPattern)
}
