// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/courtzones/internal/adapters/render"
	"github.com/okian/courtzones/internal/domain/model"
)

// Default request limits.
const (
	defaultMaxShots     = 200_000
	defaultMaxBodyBytes = 64 << 20
)

// ChartBuilder turns a request into a chart.
type ChartBuilder interface {
	Build(ctx context.Context, job model.ChartJob) (*model.Chart, error)
}

// Dependencies required by HTTP handlers.
type Dependencies interface {
	ChartBuilder
	StatsProvider
}

// Option configures a Server.
type Option func(*Server)

// WithRenderer sets the SVG renderer used by POST /charts/svg.
func WithRenderer(r *render.Renderer) Option {
	return func(s *Server) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithMaxShots caps subject plus baseline rows in one request.
func WithMaxShots(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxShots = n
		}
	}
}

// WithMaxBodyBytes caps the request body size.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// Server wires HTTP routes for the chart API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	chartsHandler *ChartsHandler

	renderer     *render.Renderer
	maxShots     int
	maxBodyBytes int64
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		renderer:     render.New(),
		maxShots:     defaultMaxShots,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(deps)
	s.chartsHandler = NewChartsHandler(deps, s.renderer, s.maxShots, s.maxBodyBytes)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/zones", MetricsMiddleware(HandleZones, "zones"))
	mux.HandleFunc("/charts", MetricsMiddleware(s.chartsHandler.HandleChartJSON, "charts"))
	mux.HandleFunc("/charts/svg", MetricsMiddleware(s.chartsHandler.HandleChartSVG, "charts_svg"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// fail writes err with the status its kind maps to.
func fail(w http.ResponseWriter, err error) {
	status, code := statusOf(err)
	writeError(w, status, code, err)
}
