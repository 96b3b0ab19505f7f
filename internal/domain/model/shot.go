// Package model contains domain models passed between layers.
package model

import (
	"strconv"

	"github.com/okian/courtzones/internal/domain/zone"
)

// ShotRecord is one attempted field goal. X and Y are court coordinates in
// tenths of a foot with the hoop at the origin.
type ShotRecord struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Made     bool    `json:"made"`
	RangeTag string  `json:"zone_range"`
	AreaTag  string  `json:"zone_area"`
	BasicTag string  `json:"zone_basic"`

	// GameID and EventID identify the shot for deduplication only.
	GameID  string `json:"game_id,omitempty"`
	EventID int    `json:"game_event_id,omitempty"`
}

// Key returns the dedupe key for the shot, or "" when it carries no identity.
func (s *ShotRecord) Key() string {
	if s.GameID == "" {
		return ""
	}
	return s.GameID + ":" + strconv.Itoa(s.EventID)
}

// BaselineRecord is an aggregated league-average row for one tag combination.
type BaselineRecord struct {
	RangeTag string `json:"zone_range"`
	AreaTag  string `json:"zone_area"`
	BasicTag string `json:"zone_basic"`
	Attempts int    `json:"fga"`
	Makes    int    `json:"fgm"`
}

// BaselineFromShots expands individual baseline shots into one-attempt rows.
func BaselineFromShots(shots []ShotRecord) []BaselineRecord {
	out := make([]BaselineRecord, len(shots))
	for i := range shots {
		s := &shots[i]
		out[i] = BaselineRecord{
			RangeTag: s.RangeTag,
			AreaTag:  s.AreaTag,
			BasicTag: s.BasicTag,
			Attempts: 1,
		}
		if s.Made {
			out[i].Makes = 1
		}
	}
	return out
}

// ZoneSummary is one joined zone row. Percentages are always defined because
// only zones with attempts on both sides are emitted.
type ZoneSummary struct {
	Zone             zone.Label `json:"zone"`
	SubjectAttempts  int        `json:"subject_attempts"`
	SubjectMakes     int        `json:"subject_makes"`
	SubjectPct       float64    `json:"subject_pct"`
	BaselineAttempts int        `json:"baseline_attempts"`
	BaselineMakes    int        `json:"baseline_makes"`
	BaselinePct      float64    `json:"baseline_pct"`
	Differential     float64    `json:"differential"`
}

// ShotDifferential is a subject shot annotated with its zone's differential.
type ShotDifferential struct {
	Shot         ShotRecord `json:"shot"`
	Zone         zone.Label `json:"zone"`
	Differential float64    `json:"differential"`
}
