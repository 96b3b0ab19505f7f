package source

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/okian/courtzones/internal/domain/model"
)

// Result set names in a shotchartdetail payload.
const (
	SetShotChart      = "Shot_Chart_Detail"
	SetLeagueAverages = "LeagueAverages"
)

type resultSet struct {
	Name    string          `json:"name"`
	Headers []string        `json:"headers"`
	RowSet  [][]interface{} `json:"rowSet"`
}

type statsPayload struct {
	ResultSets []resultSet `json:"resultSets"`
}

// Load is the outcome of reading one source: the subject's shots and, when
// the source carries them, the league averages for the same query.
type Load struct {
	Source   string
	Shots    []model.ShotRecord
	Baseline []model.BaselineRecord
}

// ReadStatsJSON decodes a stats.nba.com shotchartdetail response. The
// LeagueAverages set is optional.
func ReadStatsJSON(r io.Reader) (*Load, error) {
	var p statsPayload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	var shotsSet, avgSet *resultSet
	for i := range p.ResultSets {
		switch p.ResultSets[i].Name {
		case SetShotChart:
			shotsSet = &p.ResultSets[i]
		case SetLeagueAverages:
			avgSet = &p.ResultSets[i]
		}
	}
	if shotsSet == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingSet, SetShotChart)
	}

	load := &Load{Source: "json"}
	var err error
	if load.Shots, err = decodeShotRows(shotsSet); err != nil {
		return nil, err
	}
	if avgSet != nil {
		if load.Baseline, err = decodeBaselineRows(avgSet); err != nil {
			return nil, err
		}
	}
	return load, nil
}

type columns map[string]int

func indexColumns(set *resultSet, required []string) (columns, error) {
	idx := make(columns, len(set.Headers))
	for i, h := range set.Headers {
		idx[h] = i
	}
	if err := requireColumns(set.Headers, required); err != nil {
		return nil, fmt.Errorf("%s: %w", set.Name, err)
	}
	return idx, nil
}

func decodeShotRows(set *resultSet) ([]model.ShotRecord, error) {
	idx, err := indexColumns(set, shotColumns)
	if err != nil {
		return nil, err
	}
	out := make([]model.ShotRecord, 0, len(set.RowSet))
	for n, row := range set.RowSet {
		rd := rowReader{row: row, idx: idx}
		s := model.ShotRecord{
			X:        rd.number(ColLocX),
			Y:        rd.number(ColLocY),
			Made:     rd.integer(ColMadeFlag) == 1,
			RangeTag: rd.text(ColZoneRange),
			AreaTag:  rd.text(ColZoneArea),
			BasicTag: rd.text(ColZoneBasic),
			GameID:   rd.text(ColGameID),
			EventID:  rd.integer(ColEventID),
		}
		if rd.err != nil {
			return nil, fmt.Errorf("%w: %s row %d: %w", ErrDecode, set.Name, n, rd.err)
		}
		out = append(out, s)
	}
	return out, nil
}

func decodeBaselineRows(set *resultSet) ([]model.BaselineRecord, error) {
	idx, err := indexColumns(set, baselineColumns)
	if err != nil {
		return nil, err
	}
	out := make([]model.BaselineRecord, 0, len(set.RowSet))
	for n, row := range set.RowSet {
		rd := rowReader{row: row, idx: idx}
		b := model.BaselineRecord{
			RangeTag: rd.text(ColZoneRange),
			AreaTag:  rd.text(ColZoneArea),
			BasicTag: rd.text(ColZoneBasic),
			Attempts: rd.integer(ColFGA),
			Makes:    rd.integer(ColFGM),
		}
		if rd.err != nil {
			return nil, fmt.Errorf("%w: %s row %d: %w", ErrDecode, set.Name, n, rd.err)
		}
		out = append(out, b)
	}
	return out, nil
}

// rowReader reads typed cells from a header-indexed row and keeps the first
// error. Absent optional columns read as zero values.
type rowReader struct {
	row []interface{}
	idx columns
	err error
}

func (r *rowReader) cell(col string) (interface{}, bool) {
	i, ok := r.idx[col]
	if !ok {
		return nil, false
	}
	if i >= len(r.row) {
		if r.err == nil {
			r.err = fmt.Errorf("short row: no %s", col)
		}
		return nil, false
	}
	return r.row[i], r.row[i] != nil
}

func (r *rowReader) text(col string) string {
	v, ok := r.cell(col)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprintf("%.0f", t)
	default:
		return fmt.Sprint(t)
	}
}

func (r *rowReader) number(col string) float64 {
	v, ok := r.cell(col)
	if !ok {
		return 0
	}
	f, isNum := v.(float64)
	if !isNum && r.err == nil {
		r.err = fmt.Errorf("%s: want number, got %T", col, v)
	}
	return f
}

func (r *rowReader) integer(col string) int {
	f := r.number(col)
	if f != math.Trunc(f) && r.err == nil {
		r.err = fmt.Errorf("%s: want integer, got %g", col, f)
	}
	return int(f)
}
