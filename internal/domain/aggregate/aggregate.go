// Package aggregate groups classified shots by zone and compares a subject
// against a league baseline.
package aggregate

import (
	"math"

	"github.com/okian/courtzones/internal/domain/model"
	"github.com/okian/courtzones/internal/domain/zone"
)

// Aggregator joins subject shots with baseline rows per zone. The zero
// configuration does not round and never infers tags from location.
type Aggregator struct {
	precision        int
	locationFallback bool
}

// New creates an Aggregator.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{precision: -1}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate compares subject shots with individual baseline shots using the
// default configuration.
func Aggregate(subject, baseline []model.ShotRecord) ([]model.ShotDifferential, []model.ZoneSummary) {
	return New().Aggregate(subject, baseline)
}

type tally struct {
	attempts int
	makes    int
}

func (t tally) pct() float64 {
	return float64(t.makes) / float64(t.attempts)
}

// Aggregate compares subject shots with individual baseline shots.
func (a *Aggregator) Aggregate(subject, baseline []model.ShotRecord) ([]model.ShotDifferential, []model.ZoneSummary) {
	return a.AggregateTotals(subject, model.BaselineFromShots(baseline))
}

// AggregateTotals compares subject shots with pre-aggregated baseline rows.
// Only zones with attempts on both sides are returned. Summary rows follow the
// canonical zone order and per-shot entries follow the subject input order.
func (a *Aggregator) AggregateTotals(subject []model.ShotRecord, baseline []model.BaselineRecord) ([]model.ShotDifferential, []model.ZoneSummary) {
	labels := make([]zone.Label, len(subject))
	subjTotals := make(map[zone.Label]tally)
	for i := range subject {
		l := a.Classify(&subject[i])
		labels[i] = l
		t := subjTotals[l]
		t.attempts++
		if subject[i].Made {
			t.makes++
		}
		subjTotals[l] = t
	}

	baseTotals := make(map[zone.Label]tally)
	for i := range baseline {
		r := &baseline[i]
		if r.Attempts <= 0 {
			continue
		}
		l := zone.Classify(r.RangeTag, r.AreaTag, r.BasicTag)
		t := baseTotals[l]
		t.attempts += r.Attempts
		t.makes += min(max(r.Makes, 0), r.Attempts)
		baseTotals[l] = t
	}

	diffs := make(map[zone.Label]float64)
	summary := make([]model.ZoneSummary, 0, len(subjTotals))
	for _, l := range zone.Labels() {
		s, ok := subjTotals[l]
		if !ok {
			continue
		}
		b, ok := baseTotals[l]
		if !ok {
			continue
		}
		sp, bp := a.round(s.pct()), a.round(b.pct())
		d := a.round(sp - bp)
		diffs[l] = d
		summary = append(summary, model.ZoneSummary{
			Zone:             l,
			SubjectAttempts:  s.attempts,
			SubjectMakes:     s.makes,
			SubjectPct:       sp,
			BaselineAttempts: b.attempts,
			BaselineMakes:    b.makes,
			BaselinePct:      bp,
			Differential:     d,
		})
	}

	perShot := make([]model.ShotDifferential, 0, len(subject))
	for i := range subject {
		d, ok := diffs[labels[i]]
		if !ok {
			continue
		}
		perShot = append(perShot, model.ShotDifferential{
			Shot:         subject[i],
			Zone:         labels[i],
			Differential: d,
		})
	}
	return perShot, summary
}

// Classify returns the zone of one shot under the aggregator's configuration.
func (a *Aggregator) Classify(s *model.ShotRecord) zone.Label {
	t := zone.ParseTags(s.RangeTag, s.AreaTag, s.BasicTag)
	if a.locationFallback && t.Unknown() {
		t = zone.InferTags(s.X, s.Y)
	}
	return zone.ClassifyTags(t)
}

func (a *Aggregator) round(v float64) float64 {
	if a.precision < 0 {
		return v
	}
	p := math.Pow10(a.precision)
	return math.Round(v*p) / p
}
