// Package service composes classification, aggregation and hex binning into
// charts, one subject at a time or as a batch over the worker pool.
package service

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/courtzones/internal/adapters/mq/queue"
	"github.com/okian/courtzones/internal/adapters/mq/worker"
	"github.com/okian/courtzones/internal/domain/aggregate"
	"github.com/okian/courtzones/internal/domain/dedupe"
	"github.com/okian/courtzones/internal/domain/hexbin"
	"github.com/okian/courtzones/internal/domain/model"
	"github.com/okian/courtzones/internal/domain/zone"
	"github.com/okian/courtzones/pkg/logger"
	"github.com/okian/courtzones/pkg/metrics"
)

// Service builds charts. It holds no per-request state, so one instance can
// serve concurrent callers.
type Service struct {
	aggregator  *aggregate.Aggregator
	binning     hexbin.Config
	failOnEmpty bool

	workerCount int
	queueSize   int
	dedupeSize  int

	startedAt    time.Time
	chartsBuilt  atomic.Int64
	chartsEmpty  atomic.Int64
	chartsFailed atomic.Int64
	batchesRun   atomic.Int64

	logger logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		aggregator:  aggregate.New(),
		binning:     hexbin.DefaultConfig(),
		workerCount: runtime.NumCPU(),
		queueSize:   1024,
		dedupeSize:  500_000,
		startedAt:   time.Now(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	return s
}

// Binning returns the hex binning configuration in use.
func (s *Service) Binning() hexbin.Config { return s.binning }

// NewDeduper returns an empty deduper sized for one merge of shot loads.
func (s *Service) NewDeduper() dedupe.Deduper {
	return dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
}

// Build runs one job through aggregation and binning. An empty join yields
// an empty chart, or ErrEmptyChart when the service was built to fail on it.
func (s *Service) Build(ctx context.Context, job model.ChartJob) (*model.Chart, error) { //nolint:gocritic // hugeParam: ChartJob is the worker contract
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if job.ID == "" {
		job.ID = uuid.NewString()
	}

	start := time.Now()
	perShot, summary := s.aggregator.AggregateTotals(job.Shots, job.Baseline)
	metrics.RecordStageLatency("aggregate", msSince(start))
	s.recordZones(job.Shots, summary)

	binStart := time.Now()
	res := hexbin.Bin(perShot, s.binning)
	metrics.RecordStageLatency("bin", msSince(binStart))

	chart := &model.Chart{
		ID:         job.ID,
		SubjectID:  job.SubjectID,
		Title:      job.Title,
		Summary:    summary,
		Shots:      perShot,
		Cells:      res.Cells,
		ClampLimit: res.ClampLimit,
		Grid:       res.Grid,
		CreatedAt:  time.Now().UTC(),
	}

	if chart.Empty() {
		s.chartsEmpty.Add(1)
		metrics.RecordChartEmpty()
		s.logger.Warn(ctx, "chart has no joined zones",
			logger.String("chart_id", chart.ID),
			logger.String("subject_id", job.SubjectID),
			logger.Int("shots", len(job.Shots)),
			logger.Int("baseline_rows", len(job.Baseline)),
		)
		if s.failOnEmpty {
			s.chartsFailed.Add(1)
			return nil, fmt.Errorf("%w: subject %q", ErrEmptyChart, job.SubjectID)
		}
	}

	s.chartsBuilt.Add(1)
	metrics.RecordChartBuilt(len(chart.Cells), chart.ClampLimit)
	s.logger.Debug(ctx, "chart built",
		logger.String("chart_id", chart.ID),
		logger.Int("zones", len(summary)),
		logger.Int("cells", len(chart.Cells)),
		logger.Float64("clamp_limit", chart.ClampLimit),
		logger.Duration("took", time.Since(start)),
	)
	return chart, nil
}

func (s *Service) recordZones(shots []model.ShotRecord, summary []model.ZoneSummary) {
	seen := make(map[zone.Label]bool)
	for i := range shots {
		l := s.aggregator.Classify(&shots[i])
		metrics.RecordShotClassified(l.String())
		seen[l] = true
	}
	metrics.RecordZonesJoined(len(summary))
	if dropped := len(seen) - len(summary); dropped > 0 {
		metrics.RecordZonesDropped("subject", dropped)
	}
}

// Batch builds every job on a worker pool and returns one result per job in
// input order. Jobs without an ID are given one in a copy, so the caller's
// slice is not modified. Job failures are reported in
// their result; the error is only set when the batch itself could not run.
func (s *Service) Batch(ctx context.Context, jobs []model.ChartJob) ([]model.ChartResult, error) {
	if len(jobs) == 0 {
		return nil, ErrNoJobs
	}
	s.batchesRun.Add(1)

	jobs = slices.Clone(jobs)
	index := make(map[string]int, len(jobs))
	for i := range jobs {
		if jobs[i].ID == "" {
			jobs[i].ID = uuid.NewString()
		}
		if _, dup := index[jobs[i].ID]; dup {
			return nil, fmt.Errorf("duplicate job id %q", jobs[i].ID)
		}
		index[jobs[i].ID] = i
	}

	results := make([]model.ChartResult, len(jobs))
	var mu sync.Mutex
	sink := worker.SinkFunc(func(_ context.Context, res model.ChartResult) {
		mu.Lock()
		defer mu.Unlock()
		results[index[res.JobID]] = res
	})

	q := queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	pool := worker.NewPool(min(s.workerCount, len(jobs)), q, s, sink)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	pool.Start(runCtx)

	s.logger.Info(ctx, "batch started",
		logger.Int("jobs", len(jobs)),
		logger.Int("workers", pool.Size()),
	)
	start := time.Now()

	for i := range jobs {
		if err := q.Submit(runCtx, jobs[i]); err != nil {
			cancel()
			_ = q.Close()
			_ = pool.Wait(context.Background())
			return nil, fmt.Errorf("submit job %s: %w", jobs[i].ID, err)
		}
	}
	_ = q.Close()

	if err := pool.Wait(ctx); err != nil {
		return nil, err
	}

	failed := 0
	for i := range results {
		if results[i].JobID == "" {
			results[i] = model.ChartResult{JobID: jobs[i].ID, Err: fmt.Errorf("job %s: %w", jobs[i].ID, context.Canceled)}
		}
		if results[i].Err != nil {
			failed++
		}
	}
	s.logger.Info(ctx, "batch finished",
		logger.Int("jobs", len(jobs)),
		logger.Int("failed", failed),
		logger.Duration("took", time.Since(start)),
	)
	return results, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"workerCount":    s.workerCount,
		"queueSize":      s.queueSize,
		"dedupeSize":     s.dedupeSize,
		"gridResolution": s.binning.GridResolution,
		"clampTail":      string(s.binning.ClampTail),
		"chartsBuilt":    s.chartsBuilt.Load(),
		"chartsEmpty":    s.chartsEmpty.Load(),
		"chartsFailed":   s.chartsFailed.Load(),
		"batchesRun":     s.batchesRun.Load(),
		"uptimeSeconds":  int64(time.Since(s.startedAt).Seconds()),
	}
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
