package loadgen

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/courtzones/internal/domain/model"
	"github.com/okian/courtzones/pkg/logger"
)

// WorkerChannelMultiplier sizes the request channel per worker.
const WorkerChannelMultiplier = 2

// ErrRunFailed is returned when any chart failed or did not verify.
var ErrRunFailed = errors.New("load run failed")

// Run executes a complete load run against config.BaseURL.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	if config.Subjects < 1 || config.Workers < 1 || config.ShotsPerSubject < 1 || config.LeagueShots < 1 {
		return nil, fmt.Errorf("subjects, workers, shots and league shots must be positive")
	}
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting load run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("subjects", config.Subjects),
		logger.Int("shotsPerSubject", config.ShotsPerSubject),
		logger.Int("leagueShots", config.LeagueShots),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
	)

	if err := checkServiceHealth(ctx, config); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}

	league := NewGenerator(config.Seed)
	baseline := model.BaselineFromShots(league.Shots(config.LeagueShots, 1))

	reqs, err := generateRequests(ctx, config, baseline, stats)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	submitCharts(ctx, config, reqs, stats)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if err := ctx.Err(); err != nil {
		return stats, err
	}
	if stats.ChartsFailed > 0 || stats.ChartsInvalid > 0 {
		return stats, fmt.Errorf("%w: %d failed, %d invalid", ErrRunFailed, stats.ChartsFailed, stats.ChartsInvalid)
	}
	return stats, nil
}

func checkServiceHealth(ctx context.Context, config *Config) error {
	client := newHTTPClient(config.Timeout)
	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("connect to service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Any 200 is healthy; the body is Prometheus exposition text.
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}

func displayFinalStats(ctx context.Context, stats *Stats) {
	var successRate, chartsPerSecond float64
	if stats.ChartsSubmitted > 0 {
		successRate = float64(stats.ChartsSuccessful+stats.ChartsEmpty) / float64(stats.ChartsSubmitted) * 100
	}
	if stats.Duration > 0 {
		chartsPerSecond = float64(stats.ChartsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("subjectsGenerated", stats.SubjectsGenerated),
		logger.Int("chartsSubmitted", stats.ChartsSubmitted),
		logger.Int("chartsSuccessful", stats.ChartsSuccessful),
		logger.Int("chartsEmpty", stats.ChartsEmpty),
		logger.Int("chartsFailed", stats.ChartsFailed),
		logger.Int("chartsInvalid", stats.ChartsInvalid),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("chartsPerSecond", chartsPerSecond),
	)
}
