package chart

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/touchboard/internal/domain/player"
)

func sampleRecords() []player.Record {
	return []player.Record{
		{
			Player:       "Ana",
			Team:         player.Some("A"),
			Position:     player.Some("Midfielder"),
			Age:          player.Some(24),
			TouchesPer90: player.Some(50.0),
			OBVRank:      player.Some(80.0),
		},
		{
			Player:       "Ben",
			Team:         player.Some("B"),
			Position:     player.Some("Forward"),
			TouchesPer90: player.Some(30.0),
			OBVRank:      player.Some(60.0),
		},
		{
			Player:       "Cai",
			TouchesPer90: player.Some(42.0),
			OBVRank:      player.Some(10.0),
		},
		{
			Player:       "Dee",
			Position:     player.Some("Forward"),
			TouchesPer90: player.Some(70.0),
		},
	}
}

func TestPoints(t *testing.T) {
	Convey("Given records with gaps", t, func() {
		points := Points(sampleRecords())

		Convey("Then records missing an axis value are skipped", func() {
			So(points, ShouldHaveLength, 3)
			So(points[0].Player, ShouldEqual, "Ana")
			So(points[0].Age.OrElse(0), ShouldEqual, 24)
			So(points[2].Position, ShouldEqual, UnknownPosition)
		})

		Convey("Then points are grouped by position in name order", func() {
			groups := byPosition(points)
			So(groups, ShouldHaveLength, 3)
			So(groups[0].name, ShouldEqual, "Forward")
			So(groups[1].name, ShouldEqual, "Midfielder")
			So(groups[2].name, ShouldEqual, UnknownPosition)
			So(groups[0].xs, ShouldResemble, []float64{30})
		})
	})

	Convey("Given no records", t, func() {
		So(Points(nil), ShouldBeEmpty)
	})
}

func TestRender(t *testing.T) {
	Convey("Given a renderer", t, func() {
		r := NewRenderer(WithSize(640, 480), WithTitle("League view"))
		points := Points(sampleRecords())
		var buf bytes.Buffer

		Convey("When rendering SVG", func() {
			err := r.Render(&buf, points, FormatSVG)

			Convey("Then an SVG document with the legend is written", func() {
				So(err, ShouldBeNil)
				So(buf.String(), ShouldStartWith, "<svg")
				So(buf.String(), ShouldContainSubstring, "Midfielder")
				So(buf.String(), ShouldContainSubstring, "League view")
			})
		})

		Convey("When rendering PNG", func() {
			err := r.Render(&buf, points, FormatPNG)

			Convey("Then a PNG of the requested size is written", func() {
				So(err, ShouldBeNil)
				cfg, err := png.DecodeConfig(&buf)
				So(err, ShouldBeNil)
				So(cfg.Width, ShouldEqual, 640)
				So(cfg.Height, ShouldEqual, 480)
			})
		})

		Convey("When rendering a single point", func() {
			err := r.Render(&buf, points[:1], FormatSVG)

			Convey("Then the padded axis still renders", func() {
				So(err, ShouldBeNil)
				So(buf.Len(), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When rendering nothing", func() {
			svgErr := r.Render(&buf, nil, FormatSVG)
			pngErr := r.Render(&bytes.Buffer{}, nil, FormatPNG)

			Convey("Then SVG gets a placeholder and PNG fails", func() {
				So(svgErr, ShouldBeNil)
				So(buf.String(), ShouldContainSubstring, "No players match")
				So(errors.Is(pngErr, ErrNoPoints), ShouldBeTrue)
			})
		})

		Convey("When asking for an unknown format", func() {
			err := r.Render(&buf, points, Format("gif"))

			Convey("Then it fails", func() {
				So(errors.Is(err, ErrUnsupportedFormat), ShouldBeTrue)
			})
		})
	})
}

func TestParseFormat(t *testing.T) {
	Convey("Given format names", t, func() {
		f, err := ParseFormat("")
		So(err, ShouldBeNil)
		So(f, ShouldEqual, FormatSVG)

		f, err = ParseFormat("PNG")
		So(err, ShouldBeNil)
		So(f, ShouldEqual, FormatPNG)
		So(f.ContentType(), ShouldEqual, "image/png")

		_, err = ParseFormat("gif")
		So(err, ShouldNotBeNil)
	})
}

func TestXRange(t *testing.T) {
	Convey("Given equal touches values", t, func() {
		lo, hi := xRange([]Point{{TouchesPer90: 40}, {TouchesPer90: 40}})
		So(lo, ShouldEqual, 39.0)
		So(hi, ShouldEqual, 41.0)
	})
}
