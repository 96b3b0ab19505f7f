package source_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/courtzones/internal/adapters/source"
	"github.com/okian/courtzones/internal/domain/dedupe"
	"github.com/okian/courtzones/internal/domain/model"
	"github.com/okian/courtzones/internal/domain/zone"
	"github.com/okian/courtzones/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

const shotsCSV = `GRID_TYPE,GAME_ID,GAME_EVENT_ID,PLAYER_NAME,LOC_X,LOC_Y,SHOT_MADE_FLAG,SHOT_ZONE_BASIC,SHOT_ZONE_AREA,SHOT_ZONE_RANGE
Shot Chart Detail,0021900001,7,Kawhi Leonard,-152,123,1,Mid-Range,Left Side Center(LC),16-24 ft.
Shot Chart Detail,0021900001,12,Kawhi Leonard,4,9,0,Restricted Area,Center(C),Less Than 8 ft.
Shot Chart Detail,0021900002,40,Kawhi Leonard,231,17,1,Right Corner 3,Right Side(R),24+ ft.
`

const baselineCSV = `GRID_TYPE,SHOT_ZONE_BASIC,SHOT_ZONE_AREA,SHOT_ZONE_RANGE,FGA,FGM,FG_PCT
League Averages,Mid-Range,Left Side Center(LC),16-24 ft.,6512,2580,0.396
League Averages,Restricted Area,Center(C),Less Than 8 ft.,61045,38340,0.628
`

const statsJSON = `{
  "resource": "shotchartdetail",
  "resultSets": [
    {
      "name": "Shot_Chart_Detail",
      "headers": ["GRID_TYPE","GAME_ID","GAME_EVENT_ID","LOC_X","LOC_Y","SHOT_MADE_FLAG","SHOT_ZONE_BASIC","SHOT_ZONE_AREA","SHOT_ZONE_RANGE"],
      "rowSet": [
        ["Shot Chart Detail","0021900001",7,-152,123,1,"Mid-Range","Left Side Center(LC)","16-24 ft."],
        ["Shot Chart Detail","0021900003",2,0,260,0,"Above the Break 3","Center(C)","24+ ft."]
      ]
    },
    {
      "name": "LeagueAverages",
      "headers": ["GRID_TYPE","SHOT_ZONE_BASIC","SHOT_ZONE_AREA","SHOT_ZONE_RANGE","FGA","FGM","FG_PCT"],
      "rowSet": [
        ["League Averages","Above the Break 3","Center(C)","24+ ft.",8144,2896,0.356]
      ]
    }
  ]
}`

func TestReadShotsCSV(t *testing.T) {
	Convey("Given a shot chart CSV", t, func() {
		Convey("When it has every required column", func() {
			shots, err := source.ReadShotsCSV(strings.NewReader(shotsCSV))

			Convey("Then each row becomes a shot record", func() {
				So(err, ShouldBeNil)
				So(shots, ShouldHaveLength, 3)
				So(shots[0], ShouldResemble, model.ShotRecord{
					X: -152, Y: 123, Made: true,
					RangeTag: "16-24 ft.", AreaTag: "Left Side Center(LC)", BasicTag: "Mid-Range",
					GameID: "0021900001", EventID: 7,
				})
				So(shots[1].Made, ShouldBeFalse)
				So(zone.Classify(shots[2].RangeTag, shots[2].AreaTag, shots[2].BasicTag), ShouldEqual, zone.CornerThreeRight)
			})
		})

		Convey("When a required column is absent", func() {
			in := "LOC_X,LOC_Y,SHOT_MADE_FLAG\n1,2,1\n"
			_, err := source.ReadShotsCSV(strings.NewReader(in))

			Convey("Then the missing columns are named", func() {
				So(errors.Is(err, source.ErrMissingColumn), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "SHOT_ZONE_RANGE")
			})
		})

		Convey("When the input is empty", func() {
			_, err := source.ReadShotsCSV(strings.NewReader(""))
			So(errors.Is(err, source.ErrDecode), ShouldBeTrue)
		})

		Convey("When a number does not parse", func() {
			in := strings.Replace(shotsCSV, ",-152,", ",left,", 1)
			_, err := source.ReadShotsCSV(strings.NewReader(in))
			So(errors.Is(err, source.ErrDecode), ShouldBeTrue)
		})
	})
}

func TestReadBaselineCSV(t *testing.T) {
	Convey("Given a league average CSV", t, func() {
		rows, err := source.ReadBaselineCSV(strings.NewReader(baselineCSV))

		Convey("Then attempts and makes are read", func() {
			So(err, ShouldBeNil)
			So(rows, ShouldHaveLength, 2)
			So(rows[1], ShouldResemble, model.BaselineRecord{
				RangeTag: "Less Than 8 ft.", AreaTag: "Center(C)", BasicTag: "Restricted Area",
				Attempts: 61045, Makes: 38340,
			})
		})

		Convey("Then a file without FGM is rejected", func() {
			_, err := source.ReadBaselineCSV(strings.NewReader("SHOT_ZONE_BASIC,SHOT_ZONE_AREA,SHOT_ZONE_RANGE,FGA\n"))
			So(errors.Is(err, source.ErrMissingColumn), ShouldBeTrue)
		})
	})
}

func TestReadStatsJSON(t *testing.T) {
	Convey("Given a shotchartdetail payload", t, func() {
		Convey("When both result sets are present", func() {
			load, err := source.ReadStatsJSON(strings.NewReader(statsJSON))

			Convey("Then shots and league averages are decoded by header", func() {
				So(err, ShouldBeNil)
				So(load.Shots, ShouldHaveLength, 2)
				So(load.Shots[0].GameID, ShouldEqual, "0021900001")
				So(load.Shots[0].EventID, ShouldEqual, 7)
				So(load.Shots[0].X, ShouldEqual, -152)
				So(load.Shots[0].Made, ShouldBeTrue)
				So(load.Shots[1].BasicTag, ShouldEqual, "Above the Break 3")
				So(load.Baseline, ShouldResemble, []model.BaselineRecord{{
					RangeTag: "24+ ft.", AreaTag: "Center(C)", BasicTag: "Above the Break 3",
					Attempts: 8144, Makes: 2896,
				}})
			})
		})

		Convey("When the shot set is missing", func() {
			_, err := source.ReadStatsJSON(strings.NewReader(`{"resultSets":[]}`))
			So(errors.Is(err, source.ErrMissingSet), ShouldBeTrue)
		})

		Convey("When a row is shorter than the header", func() {
			in := strings.Replace(statsJSON, `,"Left Side Center(LC)","16-24 ft."]`, `]`, 1)
			_, err := source.ReadStatsJSON(strings.NewReader(in))
			So(errors.Is(err, source.ErrDecode), ShouldBeTrue)
		})

		Convey("When a coordinate is not a number", func() {
			in := strings.Replace(statsJSON, `7,-152,123`, `7,"x",123`, 1)
			_, err := source.ReadStatsJSON(strings.NewReader(in))
			So(errors.Is(err, source.ErrDecode), ShouldBeTrue)
		})

		Convey("When the body is not JSON", func() {
			_, err := source.ReadStatsJSON(strings.NewReader("<html>"))
			So(errors.Is(err, source.ErrDecode), ShouldBeTrue)
		})
	})
}

func TestReadFiles(t *testing.T) {
	Convey("Given files on disk", t, func() {
		dir := t.TempDir()
		write := func(name, body string) string {
			p := filepath.Join(dir, name)
			So(os.WriteFile(p, []byte(body), 0o600), ShouldBeNil)
			return p
		}

		Convey("Then CSV and JSON shots load by extension", func() {
			csvLoad, err := source.ReadShotsFile(write("shots.csv", shotsCSV))
			So(err, ShouldBeNil)
			So(csvLoad.Shots, ShouldHaveLength, 3)
			So(csvLoad.Baseline, ShouldBeEmpty)

			jsonLoad, err := source.ReadShotsFile(write("shots.JSON", statsJSON))
			So(err, ShouldBeNil)
			So(jsonLoad.Baseline, ShouldHaveLength, 1)
		})

		Convey("Then baselines load from either format", func() {
			rows, err := source.ReadBaselineFile(write("avg.csv", baselineCSV))
			So(err, ShouldBeNil)
			So(rows, ShouldHaveLength, 2)

			rows, err = source.ReadBaselineFile(write("payload.json", statsJSON))
			So(err, ShouldBeNil)
			So(rows, ShouldHaveLength, 1)
		})

		Convey("Then other extensions are rejected", func() {
			_, err := source.ReadShotsFile(write("shots.txt", shotsCSV))
			So(errors.Is(err, source.ErrFormat), ShouldBeTrue)
		})

		Convey("Then a missing file is a decode error", func() {
			_, err := source.ReadShotsFile(filepath.Join(dir, "nope.csv"))
			So(errors.Is(err, source.ErrDecode), ShouldBeTrue)
		})
	})
}

func TestMerge(t *testing.T) {
	Convey("Given two overlapping loads", t, func() {
		_ = logger.Init()
		ctx := context.Background()
		a := &source.Load{
			Shots: []model.ShotRecord{
				{GameID: "0021900001", EventID: 7},
				{GameID: "0021900001", EventID: 12},
				{X: 1},
			},
			Baseline: []model.BaselineRecord{{Attempts: 10}},
		}
		b := &source.Load{
			Shots: []model.ShotRecord{
				{GameID: "0021900001", EventID: 12},
				{GameID: "0021900002", EventID: 40},
				{X: 1},
			},
			Baseline: []model.BaselineRecord{{Attempts: 20}},
		}

		Convey("When merged with a deduper", func() {
			out := source.Merge(ctx, dedupe.NewInMemoryDeduper(), a, nil, b)

			Convey("Then repeated ids are dropped and id-less shots kept", func() {
				So(out.Shots, ShouldHaveLength, 5)
				So(out.Shots[3].EventID, ShouldEqual, 40)
				So(out.Baseline, ShouldHaveLength, 2)
			})
		})

		Convey("When merged without a deduper", func() {
			out := source.Merge(ctx, nil, a, b)
			So(out.Shots, ShouldHaveLength, 6)
		})
	})
}

func TestWriteSummaryCSV(t *testing.T) {
	Convey("Given a zone summary", t, func() {
		summary := []model.ZoneSummary{{
			Zone: zone.ThreeCenter, SubjectAttempts: 5, SubjectMakes: 3, SubjectPct: 0.6,
			BaselineAttempts: 250, BaselineMakes: 100, BaselinePct: 0.4, Differential: 0.2,
		}}

		Convey("When written", func() {
			var buf bytes.Buffer
			So(source.WriteSummaryCSV(&buf, summary), ShouldBeNil)
			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

			Convey("Then a header and one row are produced", func() {
				So(lines, ShouldHaveLength, 2)
				So(lines[0], ShouldStartWith, "zone,display,subject_fga")
				So(lines[1], ShouldStartWith, "three_center,")
				So(lines[1], ShouldContainSubstring, ",5,3,0.6,250,100,0.4,0.2")
			})
		})

		Convey("When the summary is empty", func() {
			var buf bytes.Buffer
			So(source.WriteSummaryCSV(&buf, nil), ShouldBeNil)
			So(strings.TrimSpace(buf.String()), ShouldStartWith, "zone,display")
		})
	})
}

func TestWriteShotsCSV(t *testing.T) {
	Convey("Given shots read from a CSV export", t, func() {
		shots, err := source.ReadShotsCSV(strings.NewReader(shotsCSV))
		So(err, ShouldBeNil)

		Convey("When they are written back out", func() {
			var buf bytes.Buffer
			So(source.WriteShotsCSV(&buf, shots), ShouldBeNil)

			Convey("Then reading the output yields the same shots", func() {
				again, err := source.ReadShotsCSV(&buf)
				So(err, ShouldBeNil)
				So(again, ShouldResemble, shots)
			})
		})
	})
}
