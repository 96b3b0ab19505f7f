// Package hexbin bins per-shot differentials on a hexagonal court grid.
// Cell size encodes shot density and cell colour encodes the mean
// differential, clamped to a symmetric range.
package hexbin

import (
	"math"
	"sort"

	"github.com/okian/courtzones/internal/domain/model"
)

// Result is the output of one binning pass.
type Result struct {
	Cells      []model.BinnedCell
	ClampLimit float64
	Grid       model.GridSpec
}

type axial struct{ q, r int }

type acc struct {
	count int
	sum   float64
}

// Bin assigns every shot to its nearest hex centre and derives per-cell size
// and colour values. With MadeOnly set, missed shots are not binned. Unusable
// config fields fall back to defaults.
func Bin(perShot []model.ShotDifferential, cfg Config) Result {
	cfg = cfg.normalized()
	grid := NewGrid(cfg.GridResolution, cfg.Extent)

	bins := make(map[axial]*acc)
	for i := range perShot {
		s := &perShot[i].Shot
		if cfg.MadeOnly && !s.Made {
			continue
		}
		if cfg.ClipToExtent && !cfg.Extent.Contains(s.X, s.Y) {
			continue
		}
		q, r := grid.Locate(s.X, s.Y)
		a := bins[axial{q, r}]
		if a == nil {
			a = &acc{}
			bins[axial{q, r}] = a
		}
		a.count++
		a.sum += perShot[i].Differential + cfg.DifferentialOffset
	}

	res := Result{
		Cells:      make([]model.BinnedCell, 0, len(bins)),
		ClampLimit: cfg.ClampFloor,
		Grid:       grid.Spec(),
	}
	if len(bins) == 0 {
		return res
	}

	minVal, maxVal := math.Inf(1), math.Inf(-1)
	minCount, maxCount := math.MaxInt, 0
	for k, a := range bins {
		cx, cy := grid.Center(k.q, k.r)
		raw := a.sum / float64(a.count)
		minVal, maxVal = math.Min(minVal, raw), math.Max(maxVal, raw)
		minCount, maxCount = min(minCount, a.count), max(maxCount, a.count)
		res.Cells = append(res.Cells, model.BinnedCell{
			Q:          k.q,
			R:          k.r,
			CenterX:    cx,
			CenterY:    cy,
			PointCount: a.count,
			RawValue:   raw,
		})
	}
	sort.Slice(res.Cells, func(i, j int) bool {
		if res.Cells[i].R != res.Cells[j].R {
			return res.Cells[i].R < res.Cells[j].R
		}
		return res.Cells[i].Q < res.Cells[j].Q
	})

	limit := ClampLimit(minVal, maxVal, cfg.ClampFloor, cfg.ClampTail)
	// Counts at the ceiling already draw at full size.
	uniform := minCount == maxCount && float64(minCount) < cfg.ScaleCeiling
	for i := range res.Cells {
		c := &res.Cells[i]
		c.ClampLimit = limit
		c.ColorValue = ValueToColor(c.RawValue, limit)
		if uniform {
			c.SizeScale = cfg.SizeFloor
		} else {
			c.SizeScale = DensityToSize(c.PointCount, minCount, cfg.ScaleCeiling, cfg.SizeFloor)
		}
	}
	res.ClampLimit = limit
	return res
}

// ClampLimit returns the symmetric colour bound for the observed value range.
// It is never below floor, so an all-zero chart keeps a usable scale.
func ClampLimit(minVal, maxVal, floor float64, tail Tail) float64 {
	lo, hi := math.Abs(minVal), math.Abs(maxVal)
	bound := math.Min(lo, hi)
	if tail == TailLooser {
		bound = math.Max(lo, hi)
	}
	if math.IsNaN(bound) || math.IsInf(bound, 0) {
		return floor
	}
	return math.Max(floor, bound)
}

// ValueToColor clamps v to [-limit, +limit].
func ValueToColor(v, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, v))
}

// DensityToSize maps a cell's point count into [floor, 1]. Counts are capped
// at ceiling and measured from the smallest occupied count, so the sparsest
// cell draws at floor and any cell at or above ceiling draws at full size.
func DensityToSize(count, minCount int, ceiling, floor float64) float64 {
	c := math.Min(float64(count), ceiling)
	m := math.Min(float64(minCount), ceiling)
	if ceiling <= m {
		return 1
	}
	t := (c - m) / (ceiling - m)
	if t < 0 {
		t = 0
	}
	return floor + (1-floor)*t
}

// ColorFraction maps a clamped colour value onto [0, 1] for palette lookup.
func ColorFraction(v, limit float64) float64 {
	if limit <= 0 {
		return 0.5
	}
	return (ValueToColor(v, limit) + limit) / (2 * limit)
}
