// Package source loads shot and league-average records from files in the
// stats.nba.com column layout, merges several loads and writes zone summaries.
package source

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/okian/courtzones/internal/domain/model"
)

// Column names used by the shotchartdetail endpoint.
const (
	ColLocX      = "LOC_X"
	ColLocY      = "LOC_Y"
	ColMadeFlag  = "SHOT_MADE_FLAG"
	ColZoneRange = "SHOT_ZONE_RANGE"
	ColZoneArea  = "SHOT_ZONE_AREA"
	ColZoneBasic = "SHOT_ZONE_BASIC"
	ColGameID    = "GAME_ID"
	ColEventID   = "GAME_EVENT_ID"
	ColFGA       = "FGA"
	ColFGM       = "FGM"
)

var (
	shotColumns     = []string{ColLocX, ColLocY, ColMadeFlag, ColZoneRange, ColZoneArea, ColZoneBasic}
	baselineColumns = []string{ColZoneBasic, ColZoneArea, ColZoneRange, ColFGA, ColFGM}
)

// ShotRow is one CSV row of the shot chart.
type ShotRow struct {
	LocX      float64 `csv:"LOC_X"`
	LocY      float64 `csv:"LOC_Y"`
	MadeFlag  int     `csv:"SHOT_MADE_FLAG"`
	ZoneRange string  `csv:"SHOT_ZONE_RANGE"`
	ZoneArea  string  `csv:"SHOT_ZONE_AREA"`
	ZoneBasic string  `csv:"SHOT_ZONE_BASIC"`
	GameID    string  `csv:"GAME_ID"`
	EventID   int     `csv:"GAME_EVENT_ID"`
}

// Record converts the row to a domain shot.
func (r *ShotRow) Record() model.ShotRecord {
	return model.ShotRecord{
		X:        r.LocX,
		Y:        r.LocY,
		Made:     r.MadeFlag == 1,
		RangeTag: r.ZoneRange,
		AreaTag:  r.ZoneArea,
		BasicTag: r.ZoneBasic,
		GameID:   r.GameID,
		EventID:  r.EventID,
	}
}

// shotRowFrom is the inverse of ShotRow.Record.
func shotRowFrom(s *model.ShotRecord) *ShotRow {
	made := 0
	if s.Made {
		made = 1
	}
	return &ShotRow{
		LocX:      s.X,
		LocY:      s.Y,
		MadeFlag:  made,
		ZoneRange: s.RangeTag,
		ZoneArea:  s.AreaTag,
		ZoneBasic: s.BasicTag,
		GameID:    s.GameID,
		EventID:   s.EventID,
	}
}

// BaselineRow is one CSV row of the league averages.
type BaselineRow struct {
	ZoneBasic string `csv:"SHOT_ZONE_BASIC"`
	ZoneArea  string `csv:"SHOT_ZONE_AREA"`
	ZoneRange string `csv:"SHOT_ZONE_RANGE"`
	FGA       int    `csv:"FGA"`
	FGM       int    `csv:"FGM"`
}

// Record converts the row to a domain baseline record.
func (r *BaselineRow) Record() model.BaselineRecord {
	return model.BaselineRecord{
		RangeTag: r.ZoneRange,
		AreaTag:  r.ZoneArea,
		BasicTag: r.ZoneBasic,
		Attempts: r.FGA,
		Makes:    r.FGM,
	}
}

// ReadShotsCSV decodes a shot chart CSV.
func ReadShotsCSV(r io.Reader) ([]model.ShotRecord, error) {
	var rows []*ShotRow
	if err := decodeCSV(r, shotColumns, &rows); err != nil {
		return nil, err
	}
	out := make([]model.ShotRecord, len(rows))
	for i, row := range rows {
		out[i] = row.Record()
	}
	return out, nil
}

// ReadBaselineCSV decodes a league-average CSV.
func ReadBaselineCSV(r io.Reader) ([]model.BaselineRecord, error) {
	var rows []*BaselineRow
	if err := decodeCSV(r, baselineColumns, &rows); err != nil {
		return nil, err
	}
	out := make([]model.BaselineRecord, len(rows))
	for i, row := range rows {
		out[i] = row.Record()
	}
	return out, nil
}

// WriteShotsCSV writes shots in the layout ReadShotsCSV reads.
func WriteShotsCSV(w io.Writer, shots []model.ShotRecord) error {
	rows := make([]*ShotRow, len(shots))
	for i := range shots {
		rows[i] = shotRowFrom(&shots[i])
	}
	return gocsv.Marshal(&rows, w)
}

// decodeCSV checks the header for required columns before handing the body
// to gocsv, which otherwise leaves absent columns at their zero value.
func decodeCSV(r io.Reader, required []string, out interface{}) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	b = bytes.TrimPrefix(b, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(b)) == 0 {
		return fmt.Errorf("%w: empty input", ErrDecode)
	}

	header, err := csv.NewReader(bytes.NewReader(b)).Read()
	if err != nil {
		return fmt.Errorf("%w: header: %w", ErrDecode, err)
	}
	if err := requireColumns(header, required); err != nil {
		return err
	}

	if err := gocsv.UnmarshalBytes(b, out); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}

func requireColumns(header, required []string) error {
	have := make(map[string]bool, len(header))
	for _, h := range header {
		have[strings.TrimSpace(h)] = true
	}
	var missing []string
	for _, c := range required {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

// SummaryRow is the CSV shape of one zone summary row.
type SummaryRow struct {
	Zone             string  `csv:"zone"`
	Display          string  `csv:"display"`
	SubjectAttempts  int     `csv:"subject_fga"`
	SubjectMakes     int     `csv:"subject_fgm"`
	SubjectPct       float64 `csv:"subject_pct"`
	BaselineAttempts int     `csv:"baseline_fga"`
	BaselineMakes    int     `csv:"baseline_fgm"`
	BaselinePct      float64 `csv:"baseline_pct"`
	Differential     float64 `csv:"differential"`
}

// WriteSummaryCSV writes the zone summary table, header included.
func WriteSummaryCSV(w io.Writer, summary []model.ZoneSummary) error {
	rows := make([]*SummaryRow, len(summary))
	for i := range summary {
		s := &summary[i]
		rows[i] = &SummaryRow{
			Zone:             s.Zone.String(),
			Display:          s.Zone.Display(),
			SubjectAttempts:  s.SubjectAttempts,
			SubjectMakes:     s.SubjectMakes,
			SubjectPct:       s.SubjectPct,
			BaselineAttempts: s.BaselineAttempts,
			BaselineMakes:    s.BaselineMakes,
			BaselinePct:      s.BaselinePct,
			Differential:     s.Differential,
		}
	}
	if len(rows) == 0 {
		// An empty table still carries its header.
		cw := csv.NewWriter(w)
		if err := cw.Write(summaryHeader()); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	}
	return gocsv.Marshal(&rows, w)
}

func summaryHeader() []string {
	return []string{
		"zone", "display", "subject_fga", "subject_fgm", "subject_pct",
		"baseline_fga", "baseline_fgm", "baseline_pct", "differential",
	}
}
