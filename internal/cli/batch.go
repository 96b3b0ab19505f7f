package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	"github.com/okian/courtzones/internal/domain/model"
	"github.com/okian/courtzones/pkg/logger"
	"github.com/okian/courtzones/pkg/metrics"
)

// ErrJobsFailed is returned when at least one batch job did not produce a chart.
var ErrJobsFailed = errors.New("batch jobs failed")

// Output formats a manifest may request.
const (
	FormatSVG  = "svg"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Manifest describes a batch run.
//
//	output_dir: charts
//	formats: [svg, csv]
//	jobs:
//	  - subject_id: "201939"
//	    name: Stephen Curry
//	    seasons: [2015, 2016]
//	    shots: [curry-2015.json, curry-2016.json]
type Manifest struct {
	OutputDir string    `koanf:"output_dir"`
	Formats   []string  `koanf:"formats"`
	Jobs      []JobSpec `koanf:"jobs"`
}

// LoadManifest reads a YAML manifest. Relative paths inside it are taken
// relative to the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load manifest %s: %w", path, err)
	}
	m := &Manifest{OutputDir: ".", Formats: []string{FormatSVG}}
	if err := k.UnmarshalWithConf("", m, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}
	if len(m.Jobs) == 0 {
		return nil, fmt.Errorf("manifest %s: no jobs", path)
	}
	for i, f := range m.Formats {
		f = strings.ToLower(strings.TrimSpace(f))
		switch f {
		case FormatSVG, FormatCSV, FormatJSON:
			m.Formats[i] = f
		default:
			return nil, fmt.Errorf("manifest %s: unknown format %q", path, f)
		}
	}

	dir := filepath.Dir(path)
	if !filepath.IsAbs(m.OutputDir) {
		m.OutputDir = filepath.Join(dir, m.OutputDir)
	}
	for i := range m.Jobs {
		m.Jobs[i].resolve(dir)
	}
	return m, nil
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// fileBases picks one unique output file stem per job.
func fileBases(jobs []JobSpec) []string {
	used := make(map[string]int, len(jobs))
	out := make([]string, len(jobs))
	for i := range jobs {
		base := strings.Trim(unsafeName.ReplaceAllString(jobs[i].label(), "_"), "_")
		if base == "" {
			base = fmt.Sprintf("job-%03d", i+1)
		}
		if n := used[base]; n > 0 {
			used[base] = n + 1
			base = fmt.Sprintf("%s-%d", base, n+1)
		} else {
			used[base] = 1
		}
		out[i] = base
	}
	return out
}

func (m *Manifest) outputs(base string) Outputs {
	var o Outputs
	for _, f := range m.Formats {
		p := filepath.Join(m.OutputDir, base)
		switch f {
		case FormatSVG:
			o.SVG = p + ".svg"
		case FormatCSV:
			o.Summary = p + ".csv"
		case FormatJSON:
			o.JSON = p + ".json"
		}
	}
	return o
}

func newBatchCommand() *cobra.Command {
	var manifestPath, outputDir string

	cmd := &cobra.Command{
		Use:   "batch MANIFEST",
		Short: "Render every chart listed in a YAML manifest on the worker pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifestPath = args[0]
			return runBatch(cmd, manifestPath, outputDir)
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "override the manifest's output_dir")
	return cmd
}

func runBatch(cmd *cobra.Command, manifestPath, outputDir string) error {
	cc, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	m, err := LoadManifest(manifestPath)
	if err != nil {
		return err
	}
	if outputDir != "" {
		m.OutputDir = outputDir
	}
	if err := os.MkdirAll(m.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	bases := fileBases(m.Jobs)
	jobs := make([]model.ChartJob, 0, len(m.Jobs))
	owner := make([]int, 0, len(m.Jobs))
	failed := 0
	for i := range m.Jobs {
		job, err := loadJob(ctx, cc.Service.NewDeduper(), &m.Jobs[i])
		if err != nil {
			failed++
			cc.Logger.Error(ctx, "job inputs failed", logger.String("job", bases[i]), logger.Error(err))
			metrics.RecordErrorByComponent("cli", "load")
			continue
		}
		jobs = append(jobs, job)
		owner = append(owner, i)
	}

	if len(jobs) > 0 {
		results, err := cc.Service.Batch(ctx, jobs)
		if err != nil {
			return err
		}
		r := cc.Renderer()
		for i, res := range results {
			base := bases[owner[i]]
			if res.Err != nil {
				failed++
				cc.Logger.Error(ctx, "job failed", logger.String("job", base), logger.Error(res.Err))
				continue
			}
			if err := writeOutputs(cmd.OutOrStdout(), r, res.Chart, m.outputs(base)); err != nil {
				failed++
				cc.Logger.Error(ctx, "job output failed", logger.String("job", base), logger.Error(err))
				continue
			}
			cc.Logger.Debug(ctx, "job written", logger.String("job", base), logger.String("chart_id", res.Chart.ID))
		}
	}

	if path := cc.Config.MetricsTextfile; path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			cc.Logger.Warn(ctx, "metrics textfile not written", logger.String("path", path), logger.Error(err))
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d of %d charts written to %s\n", len(m.Jobs)-failed, len(m.Jobs), m.OutputDir)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrJobsFailed, failed, len(m.Jobs))
	}
	return nil
}
