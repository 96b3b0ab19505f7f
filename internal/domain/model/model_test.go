package model_test

import (
	"testing"

	model "github.com/okian/courtzones/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestShotKey(t *testing.T) {
	convey.Convey("Given shot records", t, func() {
		convey.Convey("When the shot has a game identity", func() {
			s := model.ShotRecord{GameID: "0021900001", EventID: 42}

			convey.Convey("Then the key joins game and event", func() {
				convey.So(s.Key(), convey.ShouldEqual, "0021900001:42")
			})
		})

		convey.Convey("When the shot has no game identity", func() {
			s := model.ShotRecord{EventID: 42}

			convey.Convey("Then the key is empty", func() {
				convey.So(s.Key(), convey.ShouldEqual, "")
			})
		})
	})
}

func TestBaselineFromShots(t *testing.T) {
	convey.Convey("Given individual baseline shots", t, func() {
		shots := []model.ShotRecord{
			{RangeTag: "24+ ft.", AreaTag: "Center(C)", BasicTag: "Above the Break 3", Made: true},
			{RangeTag: "8-16 ft.", AreaTag: "Left Side(L)", BasicTag: "Mid-Range"},
		}

		convey.Convey("When they are expanded into baseline rows", func() {
			rows := model.BaselineFromShots(shots)

			convey.Convey("Then each row is a single attempt carrying the tags", func() {
				convey.So(len(rows), convey.ShouldEqual, 2)
				convey.So(rows[0].Attempts, convey.ShouldEqual, 1)
				convey.So(rows[0].Makes, convey.ShouldEqual, 1)
				convey.So(rows[0].BasicTag, convey.ShouldEqual, "Above the Break 3")
				convey.So(rows[1].Makes, convey.ShouldEqual, 0)
				convey.So(rows[1].AreaTag, convey.ShouldEqual, "Left Side(L)")
			})
		})
	})
}

func TestExtent(t *testing.T) {
	convey.Convey("Given the default court extent", t, func() {
		e := model.Extent{XMin: -275, XMax: 275, YMin: -50, YMax: 425}

		convey.So(e.Width(), convey.ShouldEqual, 550.0)
		convey.So(e.Height(), convey.ShouldEqual, 475.0)
		convey.So(e.Contains(0, 0), convey.ShouldBeTrue)
		convey.So(e.Contains(275, 425), convey.ShouldBeTrue)
		convey.So(e.Contains(-276, 0), convey.ShouldBeFalse)
		convey.So(e.Contains(0, 430), convey.ShouldBeFalse)
	})
}

func TestChartEmpty(t *testing.T) {
	convey.Convey("Given charts", t, func() {
		convey.So((&model.Chart{}).Empty(), convey.ShouldBeTrue)
		convey.So((&model.Chart{Summary: []model.ZoneSummary{{}}}).Empty(), convey.ShouldBeFalse)
	})
}
