package filter_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/okian/touchboard/internal/domain/filter"
	"github.com/okian/touchboard/internal/domain/player"
	. "github.com/smartystreets/goconvey/convey"
)

func twoPlayers() *player.Dataset {
	return player.NewDataset([]player.Record{
		{
			Player:       "One",
			Team:         player.Some("A"),
			Position:     player.Some("FW"),
			Age:          player.Some(20),
			Usage:        player.Some(30.0),
			TouchesPer90: player.Some(50.0),
		},
		{
			Player:       "Two",
			Team:         player.Some("B"),
			Position:     player.Some("MF"),
			Age:          player.Some(25),
			Usage:        player.Some(60.0),
			TouchesPer90: player.Some(40.0),
		},
	})
}

func names(v filter.View) []string {
	out := []string{}
	for _, r := range v.Records() {
		out = append(out, r.Player)
	}
	return out
}

func TestApplyScenarios(t *testing.T) {
	Convey("Given a two-player dataset", t, func() {
		ds := twoPlayers()

		Convey("When filtering by team A", func() {
			res, err := filter.Apply(ds, filter.Criteria{Teams: []string{"A"}})

			Convey("Then only the first player remains", func() {
				So(err, ShouldBeNil)
				So(names(res.View), ShouldResemble, []string{"One"})
				So(res.Summary.Count, ShouldEqual, 1)
				So(res.Summary.MeanTouchesPer90.OrElse(-1), ShouldEqual, 50.0)
			})
		})

		Convey("When the age range excludes everyone", func() {
			res, err := filter.Apply(ds, filter.Criteria{Age: &filter.Range{Min: 26, Max: 30}})

			Convey("Then the view is empty and means are absent", func() {
				So(err, ShouldBeNil)
				So(res.View.Len(), ShouldEqual, 0)
				So(res.Summary.Count, ShouldEqual, 0)
				So(res.Summary.MeanTouchesPer90.Present(), ShouldBeFalse)
				So(res.Summary.MeanOBV.Present(), ShouldBeFalse)
			})
		})

		Convey("When range bounds touch a value exactly", func() {
			res, err := filter.Apply(ds, filter.Criteria{
				Age:   &filter.Range{Min: 20, Max: 25},
				Usage: &filter.Range{Min: 30, Max: 30},
			})

			Convey("Then both ends are inclusive", func() {
				So(err, ShouldBeNil)
				So(names(res.View), ShouldResemble, []string{"One"})
			})
		})

		Convey("When a range is inverted", func() {
			res, err := filter.Apply(ds, filter.Criteria{Usage: &filter.Range{Min: 80, Max: 10}})

			Convey("Then nothing matches and no error is raised", func() {
				So(err, ShouldBeNil)
				So(res.View.Len(), ShouldEqual, 0)
			})
		})

		Convey("When a bound is NaN", func() {
			_, err := filter.Apply(ds, filter.Criteria{Age: &filter.Range{Min: math.NaN(), Max: 30}})

			Convey("Then the criteria are rejected", func() {
				So(errors.Is(err, filter.ErrInvalidCriteria), ShouldBeTrue)
			})
		})

		Convey("When a bound is infinite", func() {
			_, err := filter.Apply(ds, filter.Criteria{Usage: &filter.Range{Min: 0, Max: math.Inf(1)}})

			Convey("Then the criteria are rejected", func() {
				So(errors.Is(err, filter.ErrInvalidCriteria), ShouldBeTrue)
			})
		})

		Convey("When several categorical filters combine", func() {
			res, err := filter.Apply(ds, filter.Criteria{
				Teams:     []string{"A", "B"},
				Positions: []string{"MF"},
			})

			Convey("Then predicates are conjunctive", func() {
				So(err, ShouldBeNil)
				So(names(res.View), ShouldResemble, []string{"Two"})
			})
		})
	})
}

func TestApplyMissingValues(t *testing.T) {
	Convey("Given records with absent fields", t, func() {
		ds := player.NewDataset([]player.Record{
			{Player: "NoTeam", Position: player.Some("FW"), Age: player.Some(22), Usage: player.Some(40.0)},
			{Player: "NoAge", Team: player.Some("A"), Usage: player.Some(40.0)},
			{Player: "Full", Team: player.Some("A"), Age: player.Some(22), Usage: player.Some(40.0), OBV: player.Some(0.2)},
		})

		Convey("When no criteria are active", func() {
			res, err := filter.Apply(ds, filter.Criteria{})

			Convey("Then every record is kept", func() {
				So(err, ShouldBeNil)
				So(res.View.Len(), ShouldEqual, 3)
			})

			Convey("Then means skip absent values", func() {
				So(res.Summary.MeanOBV.OrElse(-1), ShouldAlmostEqual, 0.2)
				So(res.Summary.MeanTouchesPer90.Present(), ShouldBeFalse)
			})
		})

		Convey("When filtering on team", func() {
			res, _ := filter.Apply(ds, filter.Criteria{Teams: []string{"A"}})

			Convey("Then a missing team fails the predicate", func() {
				So(names(res.View), ShouldResemble, []string{"NoAge", "Full"})
			})
		})

		Convey("When filtering on age", func() {
			res, _ := filter.Apply(ds, filter.Criteria{Age: &filter.Range{Min: 0, Max: 100}})

			Convey("Then a missing age fails the range", func() {
				So(names(res.View), ShouldResemble, []string{"NoTeam", "Full"})
			})
		})
	})

	Convey("Given an empty dataset", t, func() {
		res, err := filter.Apply(player.NewDataset(nil), filter.Criteria{Teams: []string{"A"}})

		Convey("Then the result is empty with a zero count", func() {
			So(err, ShouldBeNil)
			So(res.View.Len(), ShouldEqual, 0)
			So(res.View.Records(), ShouldNotBeNil)
			So(res.Summary.Count, ShouldEqual, 0)
		})
	})
}

func randomDataset(rng *rand.Rand, n int) *player.Dataset {
	teams := []string{"A", "B", "C"}
	positions := []string{"FW", "MF", "DF"}
	recs := make([]player.Record, n)
	for i := range recs {
		recs[i] = player.Record{
			Player:       string(rune('a' + i%26)),
			Team:         player.Some(teams[rng.Intn(len(teams))]),
			Position:     player.Some(positions[rng.Intn(len(positions))]),
			Competition:  player.Some("League"),
			Age:          player.Some(17 + rng.Intn(20)),
			Usage:        player.Some(rng.Float64() * 100),
			TouchesPer90: player.Some(20 + rng.Float64()*60),
			OBV:          player.Some(rng.Float64() - 0.5),
		}
	}
	return player.NewDataset(recs)
}

func randomCriteria(rng *rand.Rand) filter.Criteria {
	var c filter.Criteria
	if rng.Intn(2) == 0 {
		c.Teams = []string{"A"}
	}
	if rng.Intn(2) == 0 {
		c.Positions = []string{"MF", "DF"}
	}
	if rng.Intn(2) == 0 {
		lo := float64(17 + rng.Intn(20))
		c.Age = &filter.Range{Min: lo, Max: lo + float64(rng.Intn(10)) - 2}
	}
	if rng.Intn(2) == 0 {
		c.Usage = &filter.Range{Min: rng.Float64() * 50, Max: 50 + rng.Float64()*50}
	}
	return c
}

func TestApplyProperties(t *testing.T) {
	Convey("Given random datasets and criteria", t, func() {
		rng := rand.New(rand.NewSource(7))

		for i := 0; i < 50; i++ {
			ds := randomDataset(rng, 1+rng.Intn(40))
			c := randomCriteria(rng)

			first, err := filter.Apply(ds, c)
			So(err, ShouldBeNil)
			second, err := filter.Apply(ds, c)
			So(err, ShouldBeNil)

			// deterministic
			So(second.View.Records(), ShouldResemble, first.View.Records())
			So(second.Summary, ShouldResemble, first.Summary)

			// count matches the view and never exceeds the dataset
			So(first.Summary.Count, ShouldEqual, first.View.Len())
			So(first.View.Len(), ShouldBeLessThanOrEqualTo, ds.Len())

			// every kept record came from the dataset
			src := map[string]int{}
			for _, r := range ds.All() {
				src[r.Player+r.Team.OrElse("")]++
			}
			for _, r := range first.View.Records() {
				So(src[r.Player+r.Team.OrElse("")], ShouldBeGreaterThan, 0)
			}

			if first.View.Len() == 0 {
				So(first.Summary.MeanTouchesPer90.Present(), ShouldBeFalse)
			}
		}
	})

	Convey("Given full-span criteria over complete records", t, func() {
		rng := rand.New(rand.NewSource(11))
		ds := randomDataset(rng, 30)
		f := ds.Facets()
		c := filter.Criteria{
			Age:   &filter.Range{Min: float64(f.Age.Min), Max: float64(f.Age.Max)},
			Usage: &filter.Range{Min: float64(f.Usage.Min), Max: float64(f.Usage.Max)},
		}

		res, err := filter.Apply(ds, c)

		Convey("Then the view equals the dataset", func() {
			So(err, ShouldBeNil)
			So(res.View.Records(), ShouldResemble, ds.Records())
		})
	})
}

func TestViewOrdering(t *testing.T) {
	Convey("Given a view with a missing metric", t, func() {
		ds := player.NewDataset([]player.Record{
			{Player: "Low", TouchesPer90: player.Some(10.0)},
			{Player: "None"},
			{Player: "High", TouchesPer90: player.Some(90.0)},
			{Player: "Mid", TouchesPer90: player.Some(50.0)},
		})
		res, _ := filter.Apply(ds, filter.Criteria{})

		Convey("When sorting descending", func() {
			v := res.View.Sorted(player.MetricTouchesPer90, true)

			Convey("Then absent values go last", func() {
				So(names(v), ShouldResemble, []string{"High", "Mid", "Low", "None"})
			})

			Convey("And the original view is untouched", func() {
				So(names(res.View), ShouldResemble, []string{"Low", "None", "High", "Mid"})
			})
		})

		Convey("When sorting ascending", func() {
			v := res.View.Sorted(player.MetricTouchesPer90, false)

			Convey("Then absent values still go last", func() {
				So(names(v), ShouldResemble, []string{"Low", "Mid", "High", "None"})
			})
		})

		Convey("When limiting", func() {
			So(res.View.Limit(2).Len(), ShouldEqual, 2)
			So(res.View.Limit(0).Len(), ShouldEqual, 4)
			So(res.View.Limit(10).Len(), ShouldEqual, 4)
		})
	})
}

func TestDefaults(t *testing.T) {
	Convey("Given facets from a dataset", t, func() {
		f := player.Facets{
			Age:   player.Bounds{Min: 17, Max: 36, Valid: true},
			Usage: player.Bounds{Min: 4, Max: 97, Valid: true},
		}

		Convey("When computing default criteria", func() {
			c := filter.Defaults(f, 20)

			Convey("Then age spans everything and usage starts at the floor", func() {
				So(*c.Age, ShouldResemble, filter.Range{Min: 17, Max: 36})
				So(*c.Usage, ShouldResemble, filter.Range{Min: 20, Max: 97})
				So(c.Teams, ShouldBeEmpty)
			})
		})

		Convey("When the usage floor exceeds the maximum", func() {
			c := filter.Defaults(f, 150)

			Convey("Then the observed minimum is used instead", func() {
				So(c.Usage.Min, ShouldEqual, 4.0)
			})
		})

		Convey("When facets are empty", func() {
			c := filter.Defaults(player.Facets{}, 20)

			Convey("Then no ranges are set", func() {
				So(c.Age, ShouldBeNil)
				So(c.Usage, ShouldBeNil)
			})
		})
	})

	Convey("Given criteria to clone", t, func() {
		c := filter.Criteria{Teams: []string{"A"}, Age: &filter.Range{Min: 1, Max: 2}}
		cp := c.Clone()
		cp.Teams[0] = "Z"
		cp.Age.Min = 9

		Convey("Then the original is unchanged", func() {
			So(c.Teams[0], ShouldEqual, "A")
			So(c.Age.Min, ShouldEqual, 1.0)
		})
	})
}
