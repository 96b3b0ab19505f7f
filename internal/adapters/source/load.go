package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/courtzones/internal/domain/dedupe"
	"github.com/okian/courtzones/internal/domain/model"
	"github.com/okian/courtzones/pkg/logger"
	"github.com/okian/courtzones/pkg/metrics"
)

// ReadShotsFile loads shots from a .csv or .json file. JSON payloads also
// yield their league averages.
func ReadShotsFile(path string) (*Load, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer func() { _ = f.Close() }()

	var load *Load
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		shots, err := ReadShotsCSV(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		load = &Load{Source: "csv", Shots: shots}
	case ".json":
		load, err = ReadStatsJSON(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, ext)
	}

	metrics.RecordShotsLoaded(load.Source, len(load.Shots))
	return load, nil
}

// ReadBaselineFile loads league averages from a .csv file or the
// LeagueAverages set of a .json payload.
func ReadBaselineFile(path string) ([]model.BaselineRecord, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		defer func() { _ = f.Close() }()
		rows, err := ReadBaselineCSV(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return rows, nil
	case ".json":
		load, err := ReadShotsFile(path)
		if err != nil {
			return nil, err
		}
		if load.Baseline == nil {
			return nil, fmt.Errorf("%s: %w: %s", path, ErrMissingSet, SetLeagueAverages)
		}
		return load.Baseline, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, ext)
	}
}

// Merge concatenates loads in order. Shots whose game and event ids were
// already seen are dropped; shots without ids are always kept. Baseline
// rows are concatenated, so several seasons sum their attempts.
func Merge(ctx context.Context, d dedupe.Deduper, loads ...*Load) *Load {
	out := &Load{Source: "merged"}
	dups := 0
	for _, l := range loads {
		if l == nil {
			continue
		}
		for i := range l.Shots {
			if d != nil && d.SeenAndRecord(ctx, l.Shots[i].Key()) {
				dups++
				continue
			}
			out.Shots = append(out.Shots, l.Shots[i])
		}
		out.Baseline = append(out.Baseline, l.Baseline...)
	}
	if dups > 0 {
		metrics.RecordShotsDuplicate(dups)
		logger.Get().Named("source").Debug(ctx, "dropped duplicate shots", logger.Int("count", dups))
	}
	return out
}
