// Package loadgen drives a running chart server with synthetic shot data and
// checks every chart it gets back.
package loadgen

import (
	"time"

	"github.com/okian/courtzones/internal/domain/model"
)

// Config holds configuration for a load run.
type Config struct {
	BaseURL         string        // Base URL of the service
	Subjects        int           // Number of synthetic subjects, one chart each
	ShotsPerSubject int           // Shots generated per subject
	LeagueShots     int           // Shots aggregated into the shared baseline
	Workers         int           // Number of concurrent workers
	Timeout         time.Duration // HTTP request timeout
	Seed            uint64        // Seed for the shot generator
	Verbose         bool          // Log every chart
}

// ChartRequest is the body posted to /charts.
type ChartRequest struct {
	SubjectID string                 `json:"subject_id"`
	Title     string                 `json:"title,omitempty"`
	Shots     []model.ShotRecord     `json:"shots"`
	Baseline  []model.BaselineRecord `json:"baseline"`
}

// Stats holds run statistics.
type Stats struct {
	SubjectsGenerated int
	ChartsSubmitted   int
	ChartsSuccessful  int
	ChartsEmpty       int
	ChartsFailed      int
	ChartsInvalid     int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
