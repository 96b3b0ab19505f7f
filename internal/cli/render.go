package cli

import (
	"github.com/spf13/cobra"

	"github.com/okian/courtzones/internal/adapters/render"
	"github.com/okian/courtzones/pkg/logger"
)

type renderOptions struct {
	spec    JobSpec
	out     Outputs
	noTable bool
	mode    string
	misses  bool
}

func newRenderCommand() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one subject's zone chart",
		Example: `  courtzones render --shots curry-2019.json --name "Stephen Curry" --season 2019 --svg curry.svg
  courtzones render --shots a.csv --shots b.csv --baseline league.csv --summary -
  courtzones render --shots a.csv --baseline league.csv --mode scatter --misses --svg shots.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringSliceVarP(&opts.spec.Shots, "shots", "s", nil, "subject shot file (.csv or .json), repeatable")
	f.StringSliceVarP(&opts.spec.Baseline, "baseline", "b", nil, "league average file (.csv or .json), repeatable")
	f.StringSliceVar(&opts.spec.BaselineShots, "baseline-shots", nil, "league shot file aggregated into a baseline, repeatable")
	f.StringVar(&opts.spec.SubjectID, "subject", "", "subject identifier carried on the chart")
	f.StringVarP(&opts.spec.Name, "name", "n", "", "subject name used in the chart title")
	f.IntSliceVar(&opts.spec.Seasons, "season", nil, "season starting year, repeatable")
	f.StringVar(&opts.spec.Title, "title", "", "chart title, overrides --name and --season")
	f.StringVar(&opts.out.SVG, "svg", "", "SVG output path, - for stdout")
	f.StringVar(&opts.out.Summary, "summary", "", "zone summary CSV path, - for stdout")
	f.StringVar(&opts.out.JSON, "json", "", "chart JSON path, - for stdout")
	f.BoolVar(&opts.noTable, "no-table", false, "omit the zone table under the court")
	f.StringVar(&opts.mode, "mode", string(render.ModeHex), "chart mode: hex or scatter")
	f.BoolVar(&opts.misses, "misses", false, "draw missed shots on a scatter chart")
	_ = cmd.MarkFlagRequired("shots")

	return cmd
}

func runRender(cmd *cobra.Command, opts *renderOptions) error {
	cc, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	mode, err := render.ParseMode(opts.mode)
	if err != nil {
		return err
	}

	out := opts.out
	if out.empty() {
		out.SVG = "-"
	}

	spec := opts.spec
	job, err := loadJob(ctx, cc.Service.NewDeduper(), &spec)
	if err != nil {
		return err
	}
	chart, err := cc.Service.Build(ctx, job)
	if err != nil {
		return err
	}

	r := cc.Renderer(
		render.WithSummaryTable(!opts.noTable),
		render.WithMode(mode),
		render.WithMisses(opts.misses),
	)
	if err := writeOutputs(cmd.OutOrStdout(), r, chart, out); err != nil {
		return err
	}
	cc.Logger.Info(ctx, "chart rendered",
		logger.String("chart_id", chart.ID),
		logger.Int("shots", len(job.Shots)),
		logger.Int("zones", len(chart.Summary)),
		logger.Int("cells", len(chart.Cells)),
		logger.String("mode", string(mode)),
	)
	return nil
}
