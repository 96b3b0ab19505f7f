package render_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/okian/courtzones/internal/adapters/render"
	"github.com/okian/courtzones/internal/domain/hexbin"
	"github.com/okian/courtzones/internal/domain/model"
	"github.com/okian/courtzones/internal/domain/zone"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleChart() *model.Chart {
	g := hexbin.NewGrid(50, hexbin.DefaultExtent)
	perShot := make([]model.ShotDifferential, 0, 12)
	for i := 0; i < 8; i++ {
		x, y := g.Center(25, 8)
		perShot = append(perShot, model.ShotDifferential{Shot: model.ShotRecord{X: x, Y: y}, Zone: zone.CloseRange, Differential: 0.1})
	}
	for i := 0; i < 4; i++ {
		x, y := g.Center(20, 30)
		perShot = append(perShot, model.ShotDifferential{Shot: model.ShotRecord{X: x, Y: y}, Zone: zone.ThreeCenter, Differential: -0.08})
	}
	res := hexbin.Bin(perShot, hexbin.DefaultConfig())
	return &model.Chart{
		ID:    "c1",
		Title: render.Title("Stephen Curry", 2018, 2019),
		Summary: []model.ZoneSummary{
			{Zone: zone.ThreeCenter, SubjectAttempts: 4, SubjectMakes: 1, SubjectPct: 0.25, BaselineAttempts: 10, BaselineMakes: 3, BaselinePct: 0.33, Differential: -0.08},
			{Zone: zone.CloseRange, SubjectAttempts: 8, SubjectMakes: 6, SubjectPct: 0.75, BaselineAttempts: 20, BaselineMakes: 13, BaselinePct: 0.65, Differential: 0.1},
		},
		Shots:      perShot,
		Cells:      res.Cells,
		ClampLimit: res.ClampLimit,
		Grid:       res.Grid,
	}
}

func TestTitle(t *testing.T) {
	Convey("Given a subject name", t, func() {
		So(render.Title("Kawhi Leonard"), ShouldEqual, "Kawhi Leonard")
		So(render.Title("Kawhi Leonard", 2019), ShouldEqual, "Kawhi Leonard in the 2019-20 season")
		So(render.Title("Kawhi Leonard", 2018, 2019), ShouldEqual, "Kawhi Leonard in the 2018-19 and 2019-20 seasons")
		So(render.Title("Kawhi Leonard", 2015, 2019), ShouldEqual, "Kawhi Leonard from the 2015-16 to 2019-20 seasons")
		So(render.Title("Kawhi Leonard", 2019, 2019), ShouldEqual, "Kawhi Leonard in the 2019-20 season")
		So(render.Season(1999), ShouldEqual, "1999-00")
	})
}

func TestPalette(t *testing.T) {
	Convey("Given the default palette", t, func() {
		p := render.DefaultPalette()
		So(p, ShouldHaveLength, 10)

		Convey("Then the bounds pick the end colours", func() {
			So(p.Color(-0.05, 0.05), ShouldEqual, p[0])
			So(p.Color(0.05, 0.05), ShouldEqual, p[9])
			So(p.Color(1, 0.05), ShouldEqual, p[9])
		})

		Convey("Then zero sits on the warm side of the midpoint", func() {
			So(p.Color(0, 0.05), ShouldEqual, p[5])
			So(p.Color(-0.001, 0.05), ShouldEqual, p[4])
		})

		Convey("Then an empty palette draws nothing", func() {
			So(render.Palette{}.Color(0, 1), ShouldEqual, "none")
		})
	})
}

func TestSVG(t *testing.T) {
	Convey("Given a binned chart", t, func() {
		chart := sampleChart()
		So(chart.Cells, ShouldHaveLength, 2)

		Convey("When rendered with defaults", func() {
			var buf bytes.Buffer
			err := render.New().SVG(&buf, chart)
			out := buf.String()

			Convey("Then a complete document with one polygon per cell is written", func() {
				So(err, ShouldBeNil)
				So(out, ShouldStartWith, "<?xml")
				So(strings.TrimSpace(out), ShouldEndWith, "</svg>")
				So(strings.Count(out, "<polygon"), ShouldEqual, 2)
				So(out, ShouldContainSubstring, `width="720"`)
				So(out, ShouldContainSubstring, "Stephen Curry in the 2018-19 and 2019-20 seasons")
			})

			Convey("Then the extreme cells use the palette ends", func() {
				p := render.DefaultPalette()
				So(out, ShouldContainSubstring, "fill:"+p[9])
				So(out, ShouldContainSubstring, "fill:"+p[0])
			})

			Convey("Then the legend and summary table are drawn", func() {
				So(out, ShouldContainSubstring, "+8.0%")
				So(out, ShouldContainSubstring, "Above the Break 3 Center")
				So(out, ShouldContainSubstring, "6/8")
				So(out, ShouldContainSubstring, "clip-path")
			})
		})

		Convey("When rendered without the table on a smaller canvas", func() {
			var buf bytes.Buffer
			err := render.New(
				render.WithCanvas(400, 420),
				render.WithSummaryTable(false),
				render.WithBackground("#ffffff"),
				render.WithPalette(render.Palette{"#0000ff", "#ff0000"}),
				render.WithCourt(render.DefaultCourt()),
			).SVG(&buf, chart)
			out := buf.String()

			Convey("Then the options apply", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, `width="400"`)
				So(out, ShouldContainSubstring, "fill:#ffffff")
				So(out, ShouldContainSubstring, "fill:#ff0000")
				So(out, ShouldNotContainSubstring, "6/8")
			})
		})
	})

	Convey("Given an empty chart", t, func() {
		var buf bytes.Buffer
		err := render.New().SVG(&buf, &model.Chart{ClampLimit: hexbin.DefaultClampFloor})

		Convey("Then the court is drawn with a notice", func() {
			So(err, ShouldBeNil)
			So(strings.Count(buf.String(), "<polygon"), ShouldEqual, 0)
			So(buf.String(), ShouldContainSubstring, "no zones in common")
		})
	})
}

func TestScatter(t *testing.T) {
	Convey("Given a chart with six made and six missed shots", t, func() {
		chart := sampleChart()
		for i := range chart.Shots {
			chart.Shots[i].Shot.Made = i%2 == 0
		}

		Convey("When drawn as a scatter of makes", func() {
			var buf bytes.Buffer
			err := render.New(render.WithMode(render.ModeScatter)).SVG(&buf, chart)
			out := buf.String()

			Convey("Then each made shot is one mark and no hexagons are drawn", func() {
				So(err, ShouldBeNil)
				So(strings.Count(out, `class="shot made"`), ShouldEqual, 6)
				So(strings.Count(out, `class="shot missed"`), ShouldEqual, 0)
				So(strings.Count(out, "<polygon"), ShouldEqual, 0)
				So(out, ShouldContainSubstring, "Made")
				So(out, ShouldNotContainSubstring, "FG% relative to league average")
			})
		})

		Convey("When misses are shown too", func() {
			var buf bytes.Buffer
			err := render.New(render.WithMode(render.ModeScatter), render.WithMisses(true)).SVG(&buf, chart)
			out := buf.String()

			Convey("Then every shot is one mark", func() {
				So(err, ShouldBeNil)
				So(strings.Count(out, `class="shot `), ShouldEqual, len(chart.Shots))
				So(strings.Count(out, `class="shot missed"`), ShouldEqual, 6)
				So(out, ShouldContainSubstring, "Missed")
			})
		})

		Convey("When misses are asked for on a hex chart", func() {
			var buf bytes.Buffer
			So(render.New(render.WithMisses(true)).SVG(&buf, chart), ShouldBeNil)
			So(strings.Count(buf.String(), `class="shot `), ShouldEqual, 0)
			So(strings.Count(buf.String(), "<polygon"), ShouldEqual, 2)
		})
	})

	Convey("Given mode names", t, func() {
		m, err := render.ParseMode(" Scatter ")
		So(err, ShouldBeNil)
		So(m, ShouldEqual, render.ModeScatter)

		m, err = render.ParseMode("")
		So(err, ShouldBeNil)
		So(m, ShouldEqual, render.ModeHex)

		_, err = render.ParseMode("heatmap")
		So(errors.Is(err, render.ErrUnknownMode), ShouldBeTrue)
	})
}
