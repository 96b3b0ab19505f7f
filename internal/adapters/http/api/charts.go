package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/courtzones/internal/adapters/render"
	"github.com/okian/courtzones/internal/domain/model"
	"github.com/okian/courtzones/pkg/logger"
)

// chartRequest is the body of POST /charts and POST /charts/svg. Baseline
// may be given as aggregated rows, individual shots, or both.
type chartRequest struct {
	SubjectID     string                 `json:"subject_id"`
	Title         string                 `json:"title"`
	Name          string                 `json:"name"`
	Seasons       []int                  `json:"seasons"`
	Shots         []model.ShotRecord     `json:"shots"`
	Baseline      []model.BaselineRecord `json:"baseline"`
	BaselineShots []model.ShotRecord     `json:"baseline_shots"`
	IncludeShots  bool                   `json:"include_shots"`
}

func (c *chartRequest) validate() error {
	if len(c.Baseline) == 0 && len(c.BaselineShots) == 0 {
		return errors.New("missing baseline or baseline_shots")
	}
	if len(c.Seasons) > 0 && strings.TrimSpace(c.Name) == "" && c.Title == "" {
		return errors.New("seasons require name")
	}
	return nil
}

func (c *chartRequest) rows() int {
	return len(c.Shots) + len(c.Baseline) + len(c.BaselineShots)
}

func (c *chartRequest) job() model.ChartJob {
	title := c.Title
	if title == "" && c.Name != "" {
		title = render.Title(strings.TrimSpace(c.Name), c.Seasons...)
	}
	baseline := make([]model.BaselineRecord, 0, len(c.Baseline)+len(c.BaselineShots))
	baseline = append(baseline, c.Baseline...)
	baseline = append(baseline, model.BaselineFromShots(c.BaselineShots)...)
	return model.ChartJob{
		SubjectID: c.SubjectID,
		Title:     title,
		Shots:     c.Shots,
		Baseline:  baseline,
	}
}

// ChartsHandler builds charts from request bodies. Each request is handled
// on its own inputs.
type ChartsHandler struct {
	deps         ChartBuilder
	renderer     *render.Renderer
	maxShots     int
	maxBodyBytes int64
}

// NewChartsHandler creates a new charts handler.
func NewChartsHandler(deps ChartBuilder, renderer *render.Renderer, maxShots int, maxBodyBytes int64) *ChartsHandler {
	return &ChartsHandler{deps: deps, renderer: renderer, maxShots: maxShots, maxBodyBytes: maxBodyBytes}
}

// HandleChartJSON handles POST /charts requests.
func (h *ChartsHandler) HandleChartJSON(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_chart"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	req, chart, err := h.build(op, w, r)
	if err != nil {
		fail(w, err)
		return
	}
	if !req.IncludeShots {
		chart.Shots = nil
	}
	writeJSON(w, http.StatusOK, chart)
}

// HandleChartSVG handles POST /charts/svg requests. The mode query parameter
// selects hex or scatter drawing and misses=true adds missed shots to a
// scatter chart.
func (h *ChartsHandler) HandleChartSVG(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_chart_svg"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	renderer, err := h.rendererFor(r)
	if err != nil {
		fail(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	_, chart, err := h.build(op, w, r)
	if err != nil {
		fail(w, err)
		return
	}
	var buf bytes.Buffer
	if err := renderer.SVG(&buf, chart); err != nil {
		fail(w, Wrap(op, err))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("X-Chart-Id", chart.ID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *ChartsHandler) rendererFor(r *http.Request) (*render.Renderer, error) {
	q := r.URL.Query()
	var opts []render.Option
	if v := q.Get("mode"); v != "" {
		mode, err := render.ParseMode(v)
		if err != nil {
			return nil, err
		}
		opts = append(opts, render.WithMode(mode))
	}
	if v := q.Get("misses"); v != "" {
		misses, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("misses: %w", err)
		}
		opts = append(opts, render.WithMisses(misses))
	}
	return h.renderer.With(opts...), nil
}

func (h *ChartsHandler) build(op string, w http.ResponseWriter, r *http.Request) (*chartRequest, *model.Chart, error) {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || mt != "application/json" {
			return nil, nil, WrapKind(op, ErrUnsupported, fmt.Errorf("content type %q", ct))
		}
	}

	if r.ContentLength == 0 {
		return nil, nil, NewKind(op, ErrBadRequest)
	}

	var req chartRequest
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, WrapKind(op, ErrTooLarge, err)
		}
		return nil, nil, WrapKind(op, ErrBadRequest, err)
	}
	if n := req.rows(); n > h.maxShots {
		return nil, nil, WrapKind(op, ErrTooLarge, fmt.Errorf("%d rows exceeds limit %d", n, h.maxShots))
	}
	if err := req.validate(); err != nil {
		return nil, nil, WrapKind(op, ErrBadRequest, err)
	}

	chart, err := h.deps.Build(r.Context(), req.job())
	if err != nil {
		logger.Get().Named("api").Warn(r.Context(), "chart build failed",
			logger.String("op", op),
			logger.String("subject_id", req.SubjectID),
			logger.Error(err),
		)
		return nil, nil, Wrap(op, err)
	}
	return &req, chart, nil
}
