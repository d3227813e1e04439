// Package filter narrows a player dataset by categorical and numeric criteria
// and aggregates the result.
package filter

import (
	"fmt"
	"math"
	"slices"

	"github.com/okian/touchboard/internal/domain/player"
)

// Range is an inclusive numeric interval. Min > Max matches nothing.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within the range, inclusive on both ends.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) validate(name string) error {
	for _, b := range []float64{r.Min, r.Max} {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return fmt.Errorf("%w: %s bound %v is not a finite number", ErrInvalidCriteria, name, b)
		}
	}
	return nil
}

// Criteria selects records. Empty sets and nil ranges impose no restriction.
type Criteria struct {
	Competitions []string `json:"competitions,omitempty"`
	Positions    []string `json:"positions,omitempty"`
	Teams        []string `json:"teams,omitempty"`
	Age          *Range   `json:"age,omitempty"`
	Usage        *Range   `json:"usage,omitempty"`
}

// Validate rejects non-finite range bounds. Inverted ranges are valid and
// simply match nothing.
func (c Criteria) Validate() error {
	if c.Age != nil {
		if err := c.Age.validate("age"); err != nil {
			return err
		}
	}
	if c.Usage != nil {
		if err := c.Usage.validate("usage"); err != nil {
			return err
		}
	}
	return nil
}

// Defaults returns the criteria the dashboard opens with: full age span and
// usage from usageMin up to the observed maximum.
func Defaults(f player.Facets, usageMin float64) Criteria {
	var c Criteria
	if f.Age.Valid {
		c.Age = &Range{Min: float64(f.Age.Min), Max: float64(f.Age.Max)}
	}
	if f.Usage.Valid {
		lo := math.Max(usageMin, float64(f.Usage.Min))
		hi := float64(f.Usage.Max)
		if lo > hi {
			lo = float64(f.Usage.Min)
		}
		c.Usage = &Range{Min: lo, Max: hi}
	}
	return c
}

// predicate reports whether a record passes one criterion.
type predicate func(player.Record) bool

func memberOf(c player.Category, values []string) predicate {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return func(r player.Record) bool {
		v, ok := c.Value(r).Get()
		if !ok {
			return false
		}
		_, hit := set[v]
		return hit
	}
}

func within(m player.Metric, rng Range) predicate {
	return func(r player.Record) bool {
		v, ok := m.Value(r)
		if !ok || math.IsNaN(v) {
			return false
		}
		return rng.Contains(v)
	}
}

// predicates returns the active predicates in application order.
func (c Criteria) predicates() []predicate {
	var ps []predicate
	if len(c.Competitions) > 0 {
		ps = append(ps, memberOf(player.CategoryCompetition, c.Competitions))
	}
	if len(c.Positions) > 0 {
		ps = append(ps, memberOf(player.CategoryPosition, c.Positions))
	}
	if len(c.Teams) > 0 {
		ps = append(ps, memberOf(player.CategoryTeam, c.Teams))
	}
	if c.Age != nil {
		ps = append(ps, within(player.MetricAge, *c.Age))
	}
	if c.Usage != nil {
		ps = append(ps, within(player.MetricUsage, *c.Usage))
	}
	return ps
}

// Clone returns a deep copy.
func (c Criteria) Clone() Criteria {
	out := Criteria{
		Competitions: slices.Clone(c.Competitions),
		Positions:    slices.Clone(c.Positions),
		Teams:        slices.Clone(c.Teams),
	}
	if c.Age != nil {
		a := *c.Age
		out.Age = &a
	}
	if c.Usage != nil {
		u := *c.Usage
		out.Usage = &u
	}
	return out
}
