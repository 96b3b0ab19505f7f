// Package render draws charts as SVG: the half court, one scaled hexagon per
// binned cell or one dot per shot, a legend and the zone summary table.
package render

import (
	"fmt"
	"strings"
)

// Option configures a Renderer.
type Option func(*Renderer)

// With returns a copy of r with opts applied. r is left unchanged.
func (r *Renderer) With(opts ...Option) *Renderer {
	c := *r
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}

// WithCanvas sets the output size in pixels.
func WithCanvas(width, height int) Option {
	return func(r *Renderer) {
		if width > 0 && height > 0 {
			r.width, r.height = width, height
		}
	}
}

// WithCourt replaces the court geometry.
func WithCourt(c Court) Option {
	return func(r *Renderer) { r.court = c }
}

// WithPalette replaces the fill palette.
func WithPalette(p Palette) Option {
	return func(r *Renderer) {
		if len(p) > 0 {
			r.palette = p
		}
	}
}

// WithBackground sets the canvas fill colour.
func WithBackground(color string) Option {
	return func(r *Renderer) {
		if color != "" {
			r.background = color
		}
	}
}

// WithSummaryTable toggles the zone table under the court.
func WithSummaryTable(enabled bool) Option {
	return func(r *Renderer) { r.table = enabled }
}

// Mode selects how shots are drawn on the court.
type Mode string

// Chart modes.
const (
	ModeHex     Mode = "hex"
	ModeScatter Mode = "scatter"
)

// ParseMode parses a mode name, case-insensitively. Empty means hex.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeHex, ModeScatter:
		return m, nil
	case "":
		return ModeHex, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// WithMode selects hexbin or scatter drawing. Unknown modes are ignored.
func WithMode(m Mode) Option {
	return func(r *Renderer) {
		if m == ModeHex || m == ModeScatter {
			r.mode = m
		}
	}
}

// WithMisses adds missed shots to a scatter chart.
func WithMisses(enabled bool) Option {
	return func(r *Renderer) { r.misses = enabled }
}
