package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSiteHandler(t *testing.T) {
	Convey("Given a site handler", t, func() {
		ctx := context.Background()
		mux := http.NewServeMux()

		Convey("When registering the site handler", func() {
			Register(ctx, mux)

			Convey("Then /docs redirects to /docs/", func() {
				req := httptest.NewRequest(http.MethodGet, "/docs", http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusMovedPermanently)
				So(w.Header().Get("Location"), ShouldEqual, "/docs/")
			})

			Convey("And /docs/ serves the index page", func() {
				req := httptest.NewRequest(http.MethodGet, "/docs/", http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				So(w.Body.String(), ShouldContainSubstring, "POST /charts")
			})

			Convey("And the stylesheet is served", func() {
				req := httptest.NewRequest(http.MethodGet, "/docs/style.css", http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("And the zone catalogue lists every zone in order", func() {
				req := httptest.NewRequest(http.MethodGet, "/docs/zones", http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusOK)
				body := w.Body.String()
				So(strings.Count(body, "<code>"), ShouldEqual, 15)
				So(strings.Index(body, "close_range"), ShouldBeLessThan, strings.Index(body, "backcourt"))
				So(body, ShouldContainSubstring, "16-24 ft. Left Center")
			})

			Convey("And the root is not handled", func() {
				req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusNotFound)
			})

			Convey("And missing pages are not found", func() {
				req := httptest.NewRequest(http.MethodGet, "/docs/missing.html", http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestSiteHandlerWithNilMux(t *testing.T) {
	Convey("Given a nil mux", t, func() {
		So(func() { Register(context.Background(), nil) }, ShouldPanic)
	})
}
