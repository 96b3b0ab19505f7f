package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/courtzones/internal/adapters/http/api"
	service "github.com/okian/courtzones/internal/app"
	"github.com/okian/courtzones/internal/domain/model"
	"github.com/okian/courtzones/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// failingBuilder returns a fixed error from Build.
type failingBuilder struct {
	err error
}

func (f *failingBuilder) Build(ctx context.Context, job model.ChartJob) (*model.Chart, error) {
	return nil, f.err
}

func (f *failingBuilder) GetStats() map[string]interface{} {
	return map[string]interface{}{"chartsBuilt": 0}
}

const chartBody = `{
  "subject_id": "201939",
  "name": "Stephen Curry",
  "seasons": [2018, 2019],
  "shots": [
    {"x": 0, "y": 260, "made": true,  "zone_range": "24+ ft.", "zone_area": "Center(C)", "zone_basic": "Above the Break 3"},
    {"x": 0, "y": 260, "made": true,  "zone_range": "24+ ft.", "zone_area": "Center(C)", "zone_basic": "Above the Break 3"},
    {"x": 0, "y": 260, "made": true,  "zone_range": "24+ ft.", "zone_area": "Center(C)", "zone_basic": "Above the Break 3"},
    {"x": 0, "y": 260, "made": false, "zone_range": "24+ ft.", "zone_area": "Center(C)", "zone_basic": "Above the Break 3"},
    {"x": 0, "y": 260, "made": false, "zone_range": "24+ ft.", "zone_area": "Center(C)", "zone_basic": "Above the Break 3"},
    {"x": -100, "y": 50, "made": false, "zone_range": "8-16 ft.", "zone_area": "Left Side(L)", "zone_basic": "In The Paint (Non-RA)"}
  ],
  "baseline": [
    {"zone_range": "24+ ft.", "zone_area": "Center(C)", "zone_basic": "Above the Break 3", "fga": 250, "fgm": 100},
    {"zone_range": "Less Than 8 ft.", "zone_area": "Center(C)", "zone_basic": "Restricted Area", "fga": 100, "fgm": 50}
  ]
}`

func post(mux *http.ServeMux, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func newMux(deps api.Dependencies, opts ...api.Option) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, opts...).Register(context.Background(), mux)
	return mux
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		mux := newMux(service.New())

		Convey("Then the health endpoint serves metrics", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "courtzones_")
		})

		Convey("Then the stats endpoint returns JSON", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			var stats map[string]interface{}
			So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
			So(stats, ShouldContainKey, "gridResolution")
		})

		Convey("Then the zones endpoint lists every label in order", func() {
			req := httptest.NewRequest(http.MethodGet, "/zones", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			var zones []map[string]string
			So(json.Unmarshal(w.Body.Bytes(), &zones), ShouldBeNil)
			So(len(zones), ShouldEqual, 15)
			So(zones[0]["name"], ShouldNotBeEmpty)
			So(zones[len(zones)-1]["name"], ShouldEqual, "backcourt")
		})

		Convey("Then unknown paths and wrong methods are not found", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/unknown", nil))
			So(w.Code, ShouldEqual, http.StatusNotFound)

			w = httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/charts", nil))
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestCharts(t *testing.T) {
	Convey("Given a server backed by the chart service", t, func() {
		mux := newMux(service.New())

		Convey("When a chart is requested as JSON", func() {
			w := post(mux, "/charts", chartBody)

			Convey("Then the summary holds only the shared zone", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var chart model.Chart
				So(json.Unmarshal(w.Body.Bytes(), &chart), ShouldBeNil)
				So(chart.Title, ShouldEqual, "Stephen Curry in the 2018-19 and 2019-20 seasons")
				So(chart.Summary, ShouldHaveLength, 1)
				So(chart.Summary[0].Differential, ShouldAlmostEqual, 0.2, 1e-9)
				So(chart.Cells, ShouldHaveLength, 1)
				So(chart.Shots, ShouldBeEmpty)
			})
		})

		Convey("When per-shot differentials are asked for", func() {
			body := strings.Replace(chartBody, `"subject_id"`, `"include_shots": true, "subject_id"`, 1)
			w := post(mux, "/charts", body)

			Convey("Then they are included", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var chart model.Chart
				So(json.Unmarshal(w.Body.Bytes(), &chart), ShouldBeNil)
				So(chart.Shots, ShouldHaveLength, 5)
			})
		})

		Convey("When a chart is requested as SVG", func() {
			w := post(mux, "/charts/svg", chartBody)

			Convey("Then an SVG document is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "image/svg+xml")
				So(w.Header().Get("X-Chart-Id"), ShouldNotBeEmpty)
				So(w.Body.String(), ShouldContainSubstring, "<svg")
				So(strings.Count(w.Body.String(), "<polygon"), ShouldEqual, 1)
			})
		})

		Convey("When a scatter chart is requested", func() {
			made := post(mux, "/charts/svg?mode=scatter", chartBody)
			all := post(mux, "/charts/svg?mode=scatter&misses=true", chartBody)

			Convey("Then one mark is drawn per joined shot", func() {
				So(made.Code, ShouldEqual, http.StatusOK)
				So(strings.Count(made.Body.String(), `class="shot made"`), ShouldEqual, 3)
				So(strings.Count(made.Body.String(), "<polygon"), ShouldEqual, 0)
				So(all.Code, ShouldEqual, http.StatusOK)
				So(strings.Count(all.Body.String(), `class="shot `), ShouldEqual, 5)
			})
		})

		Convey("When the chart mode is unknown", func() {
			w := post(mux, "/charts/svg?mode=heatmap", chartBody)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Body.String(), ShouldContainSubstring, "unknown chart mode")
		})

		Convey("When misses is not a boolean", func() {
			w := post(mux, "/charts/svg?mode=scatter&misses=lots", chartBody)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the body is malformed", func() {
			w := post(mux, "/charts", `{"shots": [`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Body.String(), ShouldContainSubstring, "bad_request")
		})

		Convey("When the body is empty", func() {
			w := post(mux, "/charts", "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the baseline is missing", func() {
			w := post(mux, "/charts", `{"shots": []}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Body.String(), ShouldContainSubstring, "missing baseline")
		})

		Convey("When the content type is not JSON", func() {
			req := httptest.NewRequest(http.MethodPost, "/charts", strings.NewReader(chartBody))
			req.Header.Set("Content-Type", "text/csv")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusUnsupportedMediaType)
		})

		Convey("When baseline shots replace aggregated rows", func() {
			body := `{"shots": [{"x": 0, "y": 10, "made": true, "zone_range": "Less Than 8 ft."}],
			          "baseline_shots": [{"made": true, "zone_range": "Less Than 8 ft."}, {"made": false, "zone_range": "Less Than 8 ft."}]}`
			w := post(mux, "/charts", body)

			Convey("Then they are expanded into one-attempt rows", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var chart model.Chart
				So(json.Unmarshal(w.Body.Bytes(), &chart), ShouldBeNil)
				So(chart.Summary, ShouldHaveLength, 1)
				So(chart.Summary[0].BaselinePct, ShouldEqual, 0.5)
				So(chart.Summary[0].Differential, ShouldEqual, 0.5)
			})
		})
	})

	Convey("Given tight request limits", t, func() {
		Convey("When too many rows are sent", func() {
			w := post(newMux(service.New(), api.WithMaxShots(3)), "/charts", chartBody)
			So(w.Code, ShouldEqual, http.StatusRequestEntityTooLarge)
		})

		Convey("When the body is larger than allowed", func() {
			w := post(newMux(service.New(), api.WithMaxBodyBytes(64)), "/charts", chartBody)
			So(w.Code, ShouldEqual, http.StatusRequestEntityTooLarge)
		})
	})

	Convey("Given a service that rejects empty charts", t, func() {
		mux := newMux(service.New(service.WithFailOnEmpty(true)))
		body := `{"shots": [{"x": 0, "y": 10, "made": true, "zone_range": "Less Than 8 ft."}],
		          "baseline": [{"zone_range": "24+ ft.", "zone_area": "Center(C)", "zone_basic": "Above the Break 3", "fga": 10, "fgm": 4}]}`
		w := post(mux, "/charts", body)

		Convey("Then the request is unprocessable", func() {
			So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
			So(w.Body.String(), ShouldContainSubstring, "empty_chart")
		})
	})

	Convey("Given a builder that fails unexpectedly", t, func() {
		mux := newMux(&failingBuilder{err: errors.New("boom")})
		w := post(mux, "/charts", chartBody)
		So(w.Code, ShouldEqual, http.StatusInternalServerError)
		So(w.Body.String(), ShouldContainSubstring, "boom")
	})
}

func TestErrorKinds(t *testing.T) {
	Convey("Given operation errors", t, func() {
		cause := errors.New("unexpected EOF")

		Convey("Then NewKind carries only the kind", func() {
			err := api.NewKind("api.op", api.ErrBadRequest)
			So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.op: bad request")
		})

		Convey("Then WrapKind carries kind and cause", func() {
			err := api.WrapKind("api.op", api.ErrTooLarge, cause)
			So(errors.Is(err, api.ErrTooLarge), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.op: request too large: unexpected EOF")
		})

		Convey("Then Wrap infers the kind", func() {
			So(errors.Is(api.Wrap("api.op", cause), api.ErrInternal), ShouldBeTrue)
			empty := fmt.Errorf("build: %w", service.ErrEmptyChart)
			So(errors.Is(api.Wrap("api.op", empty), api.ErrEmptyChart), ShouldBeTrue)
			inner := api.NewKind("api.inner", api.ErrBadRequest)
			So(errors.Is(api.Wrap("api.outer", inner), api.ErrBadRequest), ShouldBeTrue)
			So(api.Wrap("api.op", nil), ShouldBeNil)
		})
	})
}
