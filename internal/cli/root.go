// Package cli implements the courtzones command line: single charts,
// manifest driven batches, the zone catalogue, synthetic data and load runs.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/courtzones/internal/adapters/render"
	service "github.com/okian/courtzones/internal/app"
	"github.com/okian/courtzones/internal/config"
	"github.com/okian/courtzones/pkg/logger"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config  *config.Config
	Logger  logger.Logger
	Service *service.Service
}

// Renderer builds an SVG renderer sized from the loaded configuration.
func (c *CLIContext) Renderer(opts ...render.Option) *render.Renderer {
	base := []render.Option{render.WithCanvas(c.Config.CanvasWidth, c.Config.CanvasHeight)}
	return render.New(append(base, opts...)...)
}

// NewRootCommand creates the root command with every subcommand attached.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	root := &cobra.Command{
		Use:   "courtzones",
		Short: "Shot-zone efficiency charts against a league baseline",
		Long: `courtzones classifies shots into court zones, compares a subject's
field goal percentage in each zone to a baseline, and draws the result as a
hexbin chart.`,
		Version:       fmt.Sprintf("%s (%s)", Version, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initContext(cmd, opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "YAML config file (default: $COURTZONES_CONFIG)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&opts.LogFormat, "log-format", "", "log format: text or json")

	root.AddCommand(
		newRenderCommand(),
		newBatchCommand(),
		newZonesCommand(),
		newSynthCommand(),
		newLoadtestCommand(),
	)
	return root
}

func initContext(cmd *cobra.Command, opts *RootOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	path := opts.ConfigPath
	if path == "" {
		path = os.Getenv(config.EnvPrefix + "CONFIG")
	}
	cfg, err := config.LoadFile(ctx, path)
	if err != nil {
		return err
	}
	if opts.LogFormat != "" {
		cfg.LogFormat = opts.LogFormat
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Chart output may go to stdout, so logs always go to stderr.
	if err := logger.InitWithOptions(
		logger.WithWriter(cmd.ErrOrStderr()),
		logger.WithJSON(cfg.LogFormat == "json"),
	); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return err
	}

	log := logger.Named("cli")
	cc := &CLIContext{
		Config:  cfg,
		Logger:  log,
		Service: service.New(append(service.FromConfig(cfg), service.WithLogger(log))...),
	}
	cmd.SetContext(context.WithValue(ctx, cliContextKey{}, cc))
	return nil
}

// GetCLIContext extracts the CLIContext installed by the root command.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	if ctx := cmd.Context(); ctx != nil {
		if cc, ok := ctx.Value(cliContextKey{}).(*CLIContext); ok {
			return cc, nil
		}
	}
	return nil, errors.New("cli context not initialized")
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	root := NewRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return 1
	}
	return 0
}
