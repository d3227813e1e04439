// Package chart renders the touches versus OBV rank scatter plot.
package chart

import (
	"cmp"
	"slices"

	"github.com/okian/touchboard/internal/domain/player"
)

// UnknownPosition groups records without a position.
const UnknownPosition = "Unknown"

// Point is one plotted player, with the fields shown in the tooltip.
type Point struct {
	Player       string                  `json:"player"`
	Team         player.Optional[string] `json:"team"`
	Position     string                  `json:"position"`
	Age          player.Optional[int]    `json:"age"`
	TouchesPer90 float64                 `json:"touches_per_90"`
	OBVRank      float64                 `json:"obv_rank"`
}

// Points maps records to plot points. Records missing either axis value are
// not plotted.
func Points(records []player.Record) []Point {
	out := make([]Point, 0, len(records))
	for _, r := range records {
		x, xok := r.TouchesPer90.Get()
		y, yok := r.OBVRank.Get()
		if !xok || !yok {
			continue
		}
		out = append(out, Point{
			Player:       r.Player,
			Team:         r.Team,
			Position:     r.Position.OrElse(UnknownPosition),
			Age:          r.Age,
			TouchesPer90: x,
			OBVRank:      y,
		})
	}
	return out
}

// group is one colored series of the scatter plot.
type group struct {
	name string
	xs   []float64
	ys   []float64
}

// byPosition splits points into one group per position, ordered by name.
func byPosition(points []Point) []group {
	idx := make(map[string]int)
	var groups []group
	for _, p := range points {
		i, ok := idx[p.Position]
		if !ok {
			i = len(groups)
			idx[p.Position] = i
			groups = append(groups, group{name: p.Position})
		}
		groups[i].xs = append(groups[i].xs, p.TouchesPer90)
		groups[i].ys = append(groups[i].ys, p.OBVRank)
	}
	slices.SortFunc(groups, func(a, b group) int { return cmp.Compare(a.name, b.name) })
	return groups
}
