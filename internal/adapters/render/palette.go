package render

import (
	"github.com/okian/courtzones/internal/domain/hexbin"
)

// Palette is an ordered list of fill colours from the most negative to the
// most positive value.
type Palette []string

// DefaultPalette is a 10-step diverging scale: blue below the baseline, red
// above it.
func DefaultPalette() Palette {
	return Palette{
		"#313695", "#4575b4", "#74add1", "#abd9e9", "#e0f3f8",
		"#fee090", "#fdae61", "#f46d43", "#d73027", "#a50026",
	}
}

// Color picks the step for v on the symmetric range [-limit, +limit].
func (p Palette) Color(v, limit float64) string {
	if len(p) == 0 {
		return "none"
	}
	i := int(hexbin.ColorFraction(v, limit) * float64(len(p)))
	if i >= len(p) {
		i = len(p) - 1
	}
	if i < 0 {
		i = 0
	}
	return p[i]
}
