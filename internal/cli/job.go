package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/courtzones/internal/adapters/render"
	"github.com/okian/courtzones/internal/adapters/source"
	"github.com/okian/courtzones/internal/domain/dedupe"
	"github.com/okian/courtzones/internal/domain/model"
)

// ErrNoBaseline is returned when a job names no baseline and its shot files
// carry no league averages.
var ErrNoBaseline = errors.New("no baseline data")

// JobSpec names the inputs of one chart. Paths are files on disk.
type JobSpec struct {
	ID            string   `koanf:"id"`
	SubjectID     string   `koanf:"subject_id"`
	Name          string   `koanf:"name"`
	Title         string   `koanf:"title"`
	Seasons       []int    `koanf:"seasons"`
	Shots         []string `koanf:"shots"`
	Baseline      []string `koanf:"baseline"`
	BaselineShots []string `koanf:"baseline_shots"`
}

// Outputs names where a chart is written. "-" is stdout; empty skips.
type Outputs struct {
	SVG     string
	Summary string
	JSON    string
}

func (o Outputs) empty() bool { return o.SVG == "" && o.Summary == "" && o.JSON == "" }

// resolve makes relative input paths relative to dir.
func (j *JobSpec) resolve(dir string) {
	fix := func(paths []string) {
		for i, p := range paths {
			if p != "" && !filepath.IsAbs(p) {
				paths[i] = filepath.Join(dir, p)
			}
		}
	}
	fix(j.Shots)
	fix(j.Baseline)
	fix(j.BaselineShots)
}

// loadJob reads every input file of spec into a ChartJob. Subject shots are
// merged through d so overlapping exports count each shot once.
func loadJob(ctx context.Context, d dedupe.Deduper, spec *JobSpec) (model.ChartJob, error) {
	if len(spec.Shots) == 0 {
		return model.ChartJob{}, fmt.Errorf("job %q: no shot files", spec.label())
	}

	loads := make([]*source.Load, 0, len(spec.Shots))
	for _, p := range spec.Shots {
		l, err := source.ReadShotsFile(p)
		if err != nil {
			return model.ChartJob{}, err
		}
		loads = append(loads, l)
	}
	merged := source.Merge(ctx, d, loads...)

	var baseline []model.BaselineRecord
	for _, p := range spec.Baseline {
		rows, err := source.ReadBaselineFile(p)
		if err != nil {
			return model.ChartJob{}, err
		}
		baseline = append(baseline, rows...)
	}
	for _, p := range spec.BaselineShots {
		l, err := source.ReadShotsFile(p)
		if err != nil {
			return model.ChartJob{}, err
		}
		baseline = append(baseline, model.BaselineFromShots(l.Shots)...)
	}
	if len(spec.Baseline) == 0 && len(spec.BaselineShots) == 0 {
		baseline = merged.Baseline
	}
	if len(baseline) == 0 {
		return model.ChartJob{}, fmt.Errorf("job %q: %w", spec.label(), ErrNoBaseline)
	}

	title := spec.Title
	if title == "" && spec.Name != "" {
		title = render.Title(strings.TrimSpace(spec.Name), spec.Seasons...)
	}
	return model.ChartJob{
		ID:        spec.ID,
		SubjectID: spec.SubjectID,
		Title:     title,
		Shots:     merged.Shots,
		Baseline:  baseline,
	}, nil
}

func (j *JobSpec) label() string {
	switch {
	case j.ID != "":
		return j.ID
	case j.SubjectID != "":
		return j.SubjectID
	default:
		return j.Name
	}
}

// writeOutputs writes chart to each named destination.
func writeOutputs(stdout io.Writer, r *render.Renderer, chart *model.Chart, out Outputs) error {
	if out.SVG != "" {
		if err := writeTo(stdout, out.SVG, func(w io.Writer) error { return r.SVG(w, chart) }); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
	}
	if out.Summary != "" {
		if err := writeTo(stdout, out.Summary, func(w io.Writer) error { return source.WriteSummaryCSV(w, chart.Summary) }); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	if out.JSON != "" {
		if err := writeTo(stdout, out.JSON, func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(chart)
		}); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
	}
	return nil
}

func writeTo(stdout io.Writer, path string, fn func(io.Writer) error) error {
	if path == "-" {
		return fn(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
