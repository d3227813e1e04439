// Package player holds the player statistics model: records, the immutable
// dataset, and derived facets used to build filter controls.
package player

// Record is one player-competition observation.
type Record struct {
	Player      string           `json:"player"`
	Team        Optional[string] `json:"team"`
	Competition Optional[string] `json:"competition"`
	Position    Optional[string] `json:"position"`
	Age         Optional[int]    `json:"age"`

	// Usage is a percentage of team involvement.
	Usage        Optional[float64] `json:"usage"`
	TouchesPer90 Optional[float64] `json:"touches_per_90"`
	OBV          Optional[float64] `json:"obv"`

	// Ranks are on a 0-100 scale.
	OBVRank             Optional[float64] `json:"obv_rank"`
	PassOBVRank         Optional[float64] `json:"pass_obv_rank"`
	DribbleCarryOBVRank Optional[float64] `json:"dribble_carry_obv_rank"`
	ShotOBVRank         Optional[float64] `json:"shot_obv_rank"`
}

// Category names a text column that can be filtered by set membership.
type Category string

// Filterable text columns.
const (
	CategoryCompetition Category = "competition"
	CategoryPosition    Category = "position"
	CategoryTeam        Category = "team"
)

// Value returns the record's value for the category.
func (c Category) Value(r Record) Optional[string] {
	switch c {
	case CategoryCompetition:
		return r.Competition
	case CategoryPosition:
		return r.Position
	case CategoryTeam:
		return r.Team
	default:
		return None[string]()
	}
}
