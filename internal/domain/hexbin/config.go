package hexbin

import (
	"fmt"
	"strings"

	"github.com/okian/courtzones/internal/domain/model"
)

// Default binning configuration constants.
const (
	DefaultGridResolution = 50
	DefaultScaleCeiling   = 10.0
	DefaultSizeFloor      = 0.4
	DefaultClampFloor     = 0.05
)

// DefaultExtent is the half court plus a margin around the sidelines and baseline.
var DefaultExtent = model.Extent{XMin: -275, XMax: 275, YMin: -50, YMax: 425}

// Tail selects which side of the value range bounds the colour clamp.
type Tail string

// Clamp tails.
const (
	// TailTighter uses the smaller of |min| and |max| so a single outlier
	// cannot flatten the rest of the chart.
	TailTighter Tail = "tighter"
	TailLooser  Tail = "looser"
)

// ParseTail parses a tail name, case-insensitively.
func ParseTail(s string) (Tail, error) {
	switch t := Tail(strings.ToLower(strings.TrimSpace(s))); t {
	case TailTighter, TailLooser:
		return t, nil
	case "":
		return TailTighter, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTail, s)
	}
}

// Config holds the binning tunables.
type Config struct {
	GridResolution     int
	ScaleCeiling       float64
	SizeFloor          float64
	ClampFloor         float64
	ClampTail          Tail
	DifferentialOffset float64
	Extent             model.Extent
	ClipToExtent       bool

	// MadeOnly bins made shots only, leaving misses out of counts and means.
	MadeOnly bool
}

// DefaultConfig returns the standard court binning configuration.
func DefaultConfig() Config {
	return Config{
		GridResolution: DefaultGridResolution,
		ScaleCeiling:   DefaultScaleCeiling,
		SizeFloor:      DefaultSizeFloor,
		ClampFloor:     DefaultClampFloor,
		ClampTail:      TailTighter,
		Extent:         DefaultExtent,
		ClipToExtent:   true,
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case c.GridResolution < 1:
		return fmt.Errorf("%w: grid resolution %d", ErrInvalidConfig, c.GridResolution)
	case c.ScaleCeiling < 1:
		return fmt.Errorf("%w: scale ceiling %g", ErrInvalidConfig, c.ScaleCeiling)
	case c.SizeFloor <= 0 || c.SizeFloor > 1:
		return fmt.Errorf("%w: size floor %g not in (0, 1]", ErrInvalidConfig, c.SizeFloor)
	case c.ClampFloor <= 0:
		return fmt.Errorf("%w: clamp floor %g", ErrInvalidConfig, c.ClampFloor)
	case c.ClampTail != TailTighter && c.ClampTail != TailLooser:
		return fmt.Errorf("%w: %q", ErrInvalidTail, c.ClampTail)
	case c.Extent.Width() <= 0 || c.Extent.Height() <= 0:
		return fmt.Errorf("%w: empty extent %+v", ErrInvalidConfig, c.Extent)
	}
	return nil
}

// normalized replaces unusable fields with their defaults so that binning
// itself never fails.
func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.GridResolution < 1 {
		c.GridResolution = d.GridResolution
	}
	if c.ScaleCeiling < 1 {
		c.ScaleCeiling = d.ScaleCeiling
	}
	if c.SizeFloor <= 0 || c.SizeFloor > 1 {
		c.SizeFloor = d.SizeFloor
	}
	if c.ClampFloor <= 0 {
		c.ClampFloor = d.ClampFloor
	}
	if c.ClampTail != TailLooser {
		c.ClampTail = TailTighter
	}
	if c.Extent.Width() <= 0 || c.Extent.Height() <= 0 {
		c.Extent = d.Extent
	}
	return c
}
