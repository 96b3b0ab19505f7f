package model

import "time"

// Extent is a rectangle on the court plane.
type Extent struct {
	XMin float64 `json:"x_min"`
	XMax float64 `json:"x_max"`
	YMin float64 `json:"y_min"`
	YMax float64 `json:"y_max"`
}

// Contains reports whether (x, y) lies inside the extent, edges included.
func (e Extent) Contains(x, y float64) bool {
	return x >= e.XMin && x <= e.XMax && y >= e.YMin && y <= e.YMax
}

// Width returns the horizontal span.
func (e Extent) Width() float64 { return e.XMax - e.XMin }

// Height returns the vertical span.
func (e Extent) Height() float64 { return e.YMax - e.YMin }

// GridSpec describes the hexagonal grid a chart was binned on. Radius is the
// centre-to-vertex distance of an unscaled pointy-top cell.
type GridSpec struct {
	Resolution int     `json:"resolution"`
	Radius     float64 `json:"radius"`
	OriginX    float64 `json:"origin_x"`
	OriginY    float64 `json:"origin_y"`
	Extent     Extent  `json:"extent"`
}

// BinnedCell is one occupied hexagon. Q and R are axial coordinates.
type BinnedCell struct {
	Q          int     `json:"q"`
	R          int     `json:"r"`
	CenterX    float64 `json:"center_x"`
	CenterY    float64 `json:"center_y"`
	PointCount int     `json:"point_count"`
	RawValue   float64 `json:"raw_value"`
	ColorValue float64 `json:"color_value"`
	SizeScale  float64 `json:"size_scale"`
	ClampLimit float64 `json:"clamp_limit"`
}

// Chart bundles everything a rendering adapter needs for one subject.
type Chart struct {
	ID         string             `json:"id"`
	SubjectID  string             `json:"subject_id"`
	Title      string             `json:"title,omitempty"`
	Summary    []ZoneSummary      `json:"summary"`
	Shots      []ShotDifferential `json:"shots,omitempty"`
	Cells      []BinnedCell       `json:"cells"`
	ClampLimit float64            `json:"clamp_limit"`
	Grid       GridSpec           `json:"grid"`
	CreatedAt  time.Time          `json:"created_at"`
}

// Empty reports whether the join produced no zones.
func (c *Chart) Empty() bool { return len(c.Summary) == 0 }

// ChartJob is a unit of batch work: one subject against a baseline.
type ChartJob struct {
	ID        string
	SubjectID string
	Title     string
	Shots     []ShotRecord
	Baseline  []BaselineRecord
}

// ChartResult is the outcome of one ChartJob.
type ChartResult struct {
	JobID string
	Chart *Chart
	Err   error
}
