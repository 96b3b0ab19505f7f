package service

import (
	"github.com/okian/courtzones/internal/config"
	"github.com/okian/courtzones/internal/domain/aggregate"
	"github.com/okian/courtzones/internal/domain/hexbin"
	"github.com/okian/courtzones/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of batch workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize bounds the batch job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize bounds the shot identities remembered by NewDeduper.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithBinning sets the hex binning configuration.
func WithBinning(cfg hexbin.Config) Option {
	return func(s *Service) { s.binning = cfg }
}

// WithAggregation configures the zone aggregator.
func WithAggregation(opts ...aggregate.Option) Option {
	return func(s *Service) { s.aggregator = aggregate.New(opts...) }
}

// WithFailOnEmpty makes Build return ErrEmptyChart when no zone joins.
func WithFailOnEmpty(enabled bool) Option {
	return func(s *Service) { s.failOnEmpty = enabled }
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// FromConfig translates process configuration into service options.
func FromConfig(cfg *config.Config) []Option {
	return []Option{
		WithWorkerCount(cfg.WorkerCount),
		WithQueueSize(cfg.QueueSize),
		WithDedupeSize(cfg.DedupeSize),
		WithBinning(cfg.Binning()),
		WithAggregation(
			aggregate.WithPrecision(cfg.PctPrecision),
			aggregate.WithLocationFallback(cfg.LocationFallback),
		),
		WithFailOnEmpty(cfg.FailOnEmpty),
	}
}
