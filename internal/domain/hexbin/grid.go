package hexbin

import (
	"math"

	"github.com/okian/courtzones/internal/domain/model"
)

var sqrt3 = math.Sqrt(3)

// Grid is a pointy-top hexagonal lattice anchored at the lower-left corner
// of an extent, addressed by axial coordinates (q, r).
type Grid struct {
	spec model.GridSpec
}

// NewGrid sizes cells so that resolution cells span the dominant axis of extent.
func NewGrid(resolution int, extent model.Extent) Grid {
	if resolution < 1 {
		resolution = DefaultGridResolution
	}
	var radius float64
	if extent.Width() >= extent.Height() {
		// Horizontal centre spacing is sqrt(3) * radius.
		radius = extent.Width() / float64(resolution) / sqrt3
	} else {
		// Row spacing is 1.5 * radius.
		radius = extent.Height() / float64(resolution) / 1.5
	}
	return Grid{spec: model.GridSpec{
		Resolution: resolution,
		Radius:     radius,
		OriginX:    extent.XMin,
		OriginY:    extent.YMin,
		Extent:     extent,
	}}
}

// GridFromSpec rebuilds a grid from a stored description.
func GridFromSpec(spec model.GridSpec) Grid { return Grid{spec: spec} }

// Spec returns the grid description.
func (g Grid) Spec() model.GridSpec { return g.spec }

// Radius returns the centre-to-vertex distance of an unscaled cell.
func (g Grid) Radius() float64 { return g.spec.Radius }

// Locate returns the cell whose centre is nearest to (x, y).
func (g Grid) Locate(x, y float64) (q, r int) {
	px := (x - g.spec.OriginX) / g.spec.Radius
	py := (y - g.spec.OriginY) / g.spec.Radius
	fq := sqrt3/3*px - py/3
	fr := 2.0 / 3 * py
	return cubeRound(fq, fr)
}

// Center returns the court position of cell (q, r).
func (g Grid) Center(q, r int) (x, y float64) {
	x = g.spec.OriginX + g.spec.Radius*(sqrt3*float64(q)+sqrt3/2*float64(r))
	y = g.spec.OriginY + g.spec.Radius*1.5*float64(r)
	return x, y
}

// cubeRound rounds fractional axial coordinates to the containing hex.
func cubeRound(fq, fr float64) (int, int) {
	fs := -fq - fr
	q, r, s := math.Round(fq), math.Round(fr), math.Round(fs)
	dq, dr, ds := math.Abs(q-fq), math.Abs(r-fr), math.Abs(s-fs)
	switch {
	case dq > dr && dq > ds:
		q = -r - s
	case dr > ds:
		r = -q - s
	}
	return int(q), int(r)
}

// Point is a vertex on the court plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// HexVertices returns the six corners of a pointy-top hexagon of the given
// radius centred on (cx, cy), shrunk about its centre by scale.
func HexVertices(cx, cy, radius, scale float64) [6]Point {
	var pts [6]Point
	rr := radius * scale
	for i := range pts {
		a := math.Pi / 180 * float64(60*i+30)
		pts[i] = Point{X: cx + rr*math.Cos(a), Y: cy + rr*math.Sin(a)}
	}
	return pts
}

// CellVertices returns the polygon of a binned cell scaled by its SizeScale.
func (g Grid) CellVertices(c *model.BinnedCell) [6]Point {
	return HexVertices(c.CenterX, c.CenterY, g.spec.Radius, c.SizeScale)
}
