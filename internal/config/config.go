// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) initializer to build a Config with defaults.
// - Load layers a YAML file and COURTZONES_* env vars over the defaults.
// - Errors are wrapped with this package's sentinels.
package config

import (
	"context"
	"fmt"
	"runtime"

	"github.com/okian/courtzones/internal/domain/hexbin"
	"github.com/okian/courtzones/internal/domain/model"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// WorkerCount sets the number of batch chart workers.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the in-memory chart job queue.
	QueueSize int `koanf:"queue_size"`

	// DedupeSize bounds the shot identities remembered while merging loads.
	DedupeSize int `koanf:"dedupe_size"`

	// Binning tunables.
	GridResolution     int     `koanf:"grid_resolution"`
	ScaleCeiling       float64 `koanf:"scale_ceiling"`
	SizeFloor          float64 `koanf:"size_floor"`
	ClampFloor         float64 `koanf:"clamp_floor"`
	ClampTail          string  `koanf:"clamp_tail"`
	DifferentialOffset float64 `koanf:"differential_offset"`
	ExtentXMin         float64 `koanf:"extent_x_min"`
	ExtentXMax         float64 `koanf:"extent_x_max"`
	ExtentYMin         float64 `koanf:"extent_y_min"`
	ExtentYMax         float64 `koanf:"extent_y_max"`
	ClipToExtent       bool    `koanf:"clip_to_extent"`

	// MadeOnly bins made shots only; misses still count in the zone summary.
	MadeOnly bool `koanf:"made_only"`

	// PctPrecision rounds zone percentages; negative disables rounding.
	PctPrecision int `koanf:"pct_precision"`

	// LocationFallback classifies untagged shots by court position.
	LocationFallback bool `koanf:"location_fallback"`

	// CanvasWidth and CanvasHeight size the SVG output in pixels.
	CanvasWidth  int `koanf:"canvas_width"`
	CanvasHeight int `koanf:"canvas_height"`

	// MaxShotsPerRequest caps subject plus baseline rows in one HTTP request.
	MaxShotsPerRequest int `koanf:"max_shots_per_request"`

	// FailOnEmpty turns a chart with no joined zones into an error.
	FailOnEmpty bool `koanf:"fail_on_empty"`

	// MetricsTextfile, when set, is where batch runs leave a metrics snapshot.
	MetricsTextfile string `koanf:"metrics_textfile"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention.
func New(_ context.Context) *Config {
	b := hexbin.DefaultConfig()
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":9080",
		WorkerCount:        runtime.NumCPU(),
		QueueSize:          1024,
		DedupeSize:         500_000,
		GridResolution:     b.GridResolution,
		ScaleCeiling:       b.ScaleCeiling,
		SizeFloor:          b.SizeFloor,
		ClampFloor:         b.ClampFloor,
		ClampTail:          string(b.ClampTail),
		DifferentialOffset: b.DifferentialOffset,
		ExtentXMin:         b.Extent.XMin,
		ExtentXMax:         b.Extent.XMax,
		ExtentYMin:         b.Extent.YMin,
		ExtentYMax:         b.Extent.YMax,
		ClipToExtent:       b.ClipToExtent,
		PctPrecision:       -1,
		CanvasWidth:        720,
		CanvasHeight:       960,
		MaxShotsPerRequest: 200_000,
	}
}

// Binning returns the hex binning configuration.
func (c *Config) Binning() hexbin.Config {
	return hexbin.Config{
		GridResolution:     c.GridResolution,
		ScaleCeiling:       c.ScaleCeiling,
		SizeFloor:          c.SizeFloor,
		ClampFloor:         c.ClampFloor,
		ClampTail:          hexbin.Tail(c.ClampTail),
		DifferentialOffset: c.DifferentialOffset,
		Extent: model.Extent{
			XMin: c.ExtentXMin,
			XMax: c.ExtentXMax,
			YMin: c.ExtentYMin,
			YMax: c.ExtentYMax,
		},
		ClipToExtent: c.ClipToExtent,
		MadeOnly:     c.MadeOnly,
	}
}

// Validate checks field ranges. Errors wrap ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.WorkerCount < 1 {
		return fmt.Errorf("%w: worker_count must be positive, got %d", ErrInvalidConfig, c.WorkerCount)
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("%w: queue_size must be positive, got %d", ErrInvalidConfig, c.QueueSize)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	tail, err := hexbin.ParseTail(c.ClampTail)
	if err != nil {
		return fmt.Errorf("%w: clamp_tail: %w", ErrInvalidConfig, err)
	}
	c.ClampTail = string(tail)
	b := c.Binning()
	if err := b.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.PctPrecision > 12 {
		return fmt.Errorf("%w: pct_precision must be at most 12, got %d", ErrInvalidConfig, c.PctPrecision)
	}
	if c.CanvasWidth < 1 || c.CanvasHeight < 1 {
		return fmt.Errorf("%w: canvas must be positive, got %dx%d", ErrInvalidConfig, c.CanvasWidth, c.CanvasHeight)
	}
	if c.MaxShotsPerRequest < 1 {
		return fmt.Errorf("%w: max_shots_per_request must be positive", ErrInvalidConfig)
	}
	return nil
}
