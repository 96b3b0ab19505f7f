package loadgen

import (
	"errors"
	"fmt"
	"math"

	"github.com/okian/courtzones/internal/domain/aggregate"
	"github.com/okian/courtzones/internal/domain/model"
)

// ErrInvalidChart marks a chart that disagrees with the request it answers.
var ErrInvalidChart = errors.New("invalid chart")

// Differences up to this much are rounding on the server side.
const pctTolerance = 2e-3

// verifyChart checks chart against a local aggregation of req. Counts must
// match exactly; percentages within pctTolerance.
func verifyChart(req *ChartRequest, chart *model.Chart) error {
	if chart.SubjectID != req.SubjectID {
		return fmt.Errorf("%w: subject %q, want %q", ErrInvalidChart, chart.SubjectID, req.SubjectID)
	}

	_, want := aggregate.New().AggregateTotals(req.Shots, req.Baseline)
	if len(chart.Summary) != len(want) {
		return fmt.Errorf("%w: %d zones, want %d", ErrInvalidChart, len(chart.Summary), len(want))
	}
	for i := range want {
		got, exp := &chart.Summary[i], &want[i]
		if got.Zone != exp.Zone {
			return fmt.Errorf("%w: zone %d is %s, want %s", ErrInvalidChart, i, got.Zone, exp.Zone)
		}
		if got.SubjectAttempts != exp.SubjectAttempts || got.SubjectMakes != exp.SubjectMakes {
			return fmt.Errorf("%w: %s subject %d/%d, want %d/%d", ErrInvalidChart, got.Zone,
				got.SubjectMakes, got.SubjectAttempts, exp.SubjectMakes, exp.SubjectAttempts)
		}
		if got.BaselineAttempts != exp.BaselineAttempts || got.BaselineMakes != exp.BaselineMakes {
			return fmt.Errorf("%w: %s baseline %d/%d, want %d/%d", ErrInvalidChart, got.Zone,
				got.BaselineMakes, got.BaselineAttempts, exp.BaselineMakes, exp.BaselineAttempts)
		}
		if math.Abs(got.Differential-(got.SubjectPct-got.BaselinePct)) > pctTolerance {
			return fmt.Errorf("%w: %s differential %.4f is not %.4f - %.4f", ErrInvalidChart, got.Zone,
				got.Differential, got.SubjectPct, got.BaselinePct)
		}
	}

	return verifyCells(chart)
}

// verifyCells checks the binning bounds every chart must respect.
func verifyCells(chart *model.Chart) error {
	if chart.Empty() {
		if len(chart.Cells) != 0 {
			return fmt.Errorf("%w: empty chart has %d cells", ErrInvalidChart, len(chart.Cells))
		}
		return nil
	}
	if chart.ClampLimit <= 0 {
		return fmt.Errorf("%w: clamp limit %.4f", ErrInvalidChart, chart.ClampLimit)
	}

	subject := 0
	for i := range chart.Summary {
		subject += chart.Summary[i].SubjectAttempts
	}
	points := 0
	for i := range chart.Cells {
		c := &chart.Cells[i]
		if c.PointCount < 1 {
			return fmt.Errorf("%w: cell (%d,%d) has no points", ErrInvalidChart, c.Q, c.R)
		}
		if math.Abs(c.ColorValue) > chart.ClampLimit+1e-9 {
			return fmt.Errorf("%w: cell (%d,%d) colour %.4f outside ±%.4f", ErrInvalidChart, c.Q, c.R, c.ColorValue, chart.ClampLimit)
		}
		if c.SizeScale <= 0 || c.SizeScale > 1 {
			return fmt.Errorf("%w: cell (%d,%d) size %.4f outside (0,1]", ErrInvalidChart, c.Q, c.R, c.SizeScale)
		}
		points += c.PointCount
	}
	if points > subject {
		return fmt.Errorf("%w: cells hold %d points from %d joined shots", ErrInvalidChart, points, subject)
	}
	return nil
}
