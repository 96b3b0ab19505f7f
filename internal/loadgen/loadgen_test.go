package loadgen_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/courtzones/internal/adapters/http/api"
	service "github.com/okian/courtzones/internal/app"
	"github.com/okian/courtzones/internal/domain/model"
	"github.com/okian/courtzones/internal/domain/zone"
	"github.com/okian/courtzones/internal/loadgen"
	"github.com/okian/courtzones/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerator(t *testing.T) {
	Convey("Given two generators with the same seed", t, func() {
		a := loadgen.NewGenerator(42)
		b := loadgen.NewGenerator(42)

		Convey("When each generates shots", func() {
			sa := a.Shots(500, 1)
			sb := b.Shots(500, 1)

			Convey("Then the output is identical", func() {
				So(sa, ShouldResemble, sb)
			})

			Convey("And every shot is tagged from its location", func() {
				for i := range sa {
					s := &sa[i]
					So(zone.Classify(s.RangeTag, s.AreaTag, s.BasicTag), ShouldEqual, zone.ClassifyTags(zone.InferTags(s.X, s.Y)))
				}
			})

			Convey("And shot identities are unique", func() {
				seen := make(map[string]bool, len(sa))
				for i := range sa {
					k := sa[i].Key()
					So(seen[k], ShouldBeFalse)
					seen[k] = true
				}
			})

			Convey("And some shots go in and some miss", func() {
				made := 0
				for i := range sa {
					if sa[i].Made {
						made++
					}
				}
				So(made, ShouldBeGreaterThan, 100)
				So(made, ShouldBeLessThan, 400)
			})
		})
	})
}

func newChartServer() *httptest.Server {
	svc := service.New(service.WithWorkerCount(2))
	mux := http.NewServeMux()
	api.NewServer(svc).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func TestRun(t *testing.T) {
	_ = logger.Init()

	Convey("Given a running chart server", t, func() {
		srv := newChartServer()
		defer srv.Close()

		cfg := &loadgen.Config{
			BaseURL:         srv.URL,
			Subjects:        12,
			ShotsPerSubject: 300,
			LeagueShots:     5000,
			Workers:         4,
			Timeout:         10 * time.Second,
			Seed:            7,
		}

		Convey("When a load run completes", func() {
			stats, err := loadgen.Run(context.Background(), cfg)

			Convey("Then every chart verifies", func() {
				So(err, ShouldBeNil)
				So(stats.SubjectsGenerated, ShouldEqual, 12)
				So(stats.ChartsSubmitted, ShouldEqual, 12)
				So(stats.ChartsSuccessful+stats.ChartsEmpty, ShouldEqual, 12)
				So(stats.ChartsInvalid, ShouldEqual, 0)
			})
		})

		Convey("When the config has no subjects", func() {
			cfg.Subjects = 0
			_, err := loadgen.Run(context.Background(), cfg)
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given a server that answers with the wrong charts", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
		mux.HandleFunc("/charts", func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(model.Chart{SubjectID: "someone-else"})
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		stats, err := loadgen.Run(context.Background(), &loadgen.Config{
			BaseURL: srv.URL, Subjects: 3, ShotsPerSubject: 20, LeagueShots: 100,
			Workers: 2, Timeout: 5 * time.Second,
		})

		Convey("Then the run fails with every chart invalid", func() {
			So(errors.Is(err, loadgen.ErrRunFailed), ShouldBeTrue)
			So(stats.ChartsInvalid, ShouldEqual, 3)
		})
	})

	Convey("Given an unhealthy server", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := loadgen.Run(context.Background(), &loadgen.Config{
			BaseURL: srv.URL, Subjects: 1, ShotsPerSubject: 1, LeagueShots: 1,
			Workers: 1, Timeout: time.Second,
		})
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "health check")
	})
}
