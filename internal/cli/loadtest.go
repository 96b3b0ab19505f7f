package cli

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/courtzones/internal/adapters/source"
	"github.com/okian/courtzones/internal/loadgen"
)

func newLoadtestCommand() *cobra.Command {
	cfg := &loadgen.Config{}

	cmd := &cobra.Command{
		Use:   "loadtest",
		Short: "Post synthetic charts to a running server and verify every response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := loadgen.Run(cmd.Context(), cfg)
			if stats != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%d charts in %s: %d ok, %d empty, %d failed, %d invalid\n",
					stats.ChartsSubmitted, stats.Duration.Round(time.Millisecond),
					stats.ChartsSuccessful, stats.ChartsEmpty, stats.ChartsFailed, stats.ChartsInvalid)
			}
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.BaseURL, "url", "http://localhost:9080", "base URL of the service")
	f.IntVar(&cfg.Subjects, "subjects", 200, "number of synthetic subjects")
	f.IntVar(&cfg.ShotsPerSubject, "shots", 1200, "shots per subject")
	f.IntVar(&cfg.LeagueShots, "league-shots", 200_000, "shots aggregated into the baseline")
	f.IntVar(&cfg.Workers, "workers", runtime.NumCPU()*loadgen.WorkerChannelMultiplier, "concurrent workers")
	f.DurationVar(&cfg.Timeout, "timeout", 30*time.Second, "HTTP request timeout")
	f.Uint64Var(&cfg.Seed, "seed", 1, "generator seed")
	f.BoolVar(&cfg.Verbose, "verbose", false, "log every verified chart")
	return cmd
}

func newSynthCommand() *cobra.Command {
	var (
		n     int
		seed  uint64
		skill float64
		out   string
	)

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Write synthetic shots as a shot chart CSV",
		Example: `  courtzones synth --shots 200000 --seed 1 --out league.csv
  courtzones synth --shots 1500 --seed 2 --skill 1.1 --out subject.csv
  courtzones render --shots subject.csv --baseline-shots league.csv --svg chart.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if n < 1 {
				return fmt.Errorf("--shots must be positive, got %d", n)
			}
			gen := loadgen.NewGenerator(seed)
			shots := gen.Shots(n, skill)
			if out == "" || out == "-" {
				return source.WriteShotsCSV(cmd.OutOrStdout(), shots)
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := source.WriteShotsCSV(f, shots); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		},
	}

	f := cmd.Flags()
	f.IntVar(&n, "shots", 1000, "number of shots")
	f.Uint64Var(&seed, "seed", 1, "generator seed")
	f.Float64Var(&skill, "skill", 1, "make rate multiplier")
	f.StringVarP(&out, "out", "o", "-", "output path, - for stdout")
	return cmd
}
