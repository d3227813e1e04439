package types_test

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/touchboard/internal/domain/filter"
	"github.com/okian/touchboard/internal/domain/player"
	types "github.com/okian/touchboard/internal/domain/types"
)

func TestMetrics(t *testing.T) {
	Convey("Given the metric catalogue", t, func() {
		infos := types.Metrics()

		Convey("Then every metric has a spreadsheet label", func() {
			So(infos, ShouldHaveLength, len(player.Metrics))
			So(infos[0].Name, ShouldEqual, player.MetricTouchesPer90)
			So(infos[0].Label, ShouldEqual, "Touches per 90")
			for _, info := range infos {
				So(info.Label, ShouldNotBeEmpty)
			}
		})
	})
}

func TestQueryResultJSON(t *testing.T) {
	Convey("Given an empty query result", t, func() {
		res := types.QueryResult{Players: []player.Record{}, Summary: filter.Summary{}}

		Convey("When encoding it", func() {
			b, err := json.Marshal(res)

			Convey("Then absent means are null and players is an empty list", func() {
				So(err, ShouldBeNil)
				So(string(b), ShouldContainSubstring, `"players":[]`)
				So(string(b), ShouldContainSubstring, `"mean_touches_per_90":null`)
				So(string(b), ShouldContainSubstring, `"count":0`)
			})
		})
	})
}
