package player

import (
	"iter"
	"math"
	"slices"
)

// Dataset is an ordered, immutable sequence of Records. It is built once
// and shared read-only, so it needs no locking.
type Dataset struct {
	records []Record
}

// NewDataset copies records into a new Dataset.
func NewDataset(records []Record) *Dataset {
	return &Dataset{records: slices.Clone(records)}
}

// Len returns the number of records. A nil Dataset is empty.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// At returns the i-th record by value.
func (d *Dataset) At(i int) Record {
	return d.records[i]
}

// All yields records in dataset order.
func (d *Dataset) All() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		if d == nil {
			return
		}
		for i, r := range d.records {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Records returns a copy of the records.
func (d *Dataset) Records() []Record {
	if d == nil {
		return nil
	}
	return slices.Clone(d.records)
}

// Bounds is the observed integer span of a numeric column.
// Valid is false when no record has a value.
type Bounds struct {
	Min   int  `json:"min"`
	Max   int  `json:"max"`
	Valid bool `json:"valid"`
}

// Facets are the selectable values for filter controls.
type Facets struct {
	Competitions []string `json:"competitions"`
	Positions    []string `json:"positions"`
	Teams        []string `json:"teams"`
	Age          Bounds   `json:"age"`
	Usage        Bounds   `json:"usage"`
}

// Facets computes distinct sorted categorical values and numeric bounds.
// Absent values are ignored. The minimum is floored and the maximum ceiled
// so a full-span range always covers every observed value.
func (d *Dataset) Facets() Facets {
	return Facets{
		Competitions: d.Distinct(CategoryCompetition),
		Positions:    d.Distinct(CategoryPosition),
		Teams:        d.Distinct(CategoryTeam),
		Age:          d.Bounds(MetricAge),
		Usage:        d.Bounds(MetricUsage),
	}
}

// Distinct returns the sorted distinct present values of a category.
func (d *Dataset) Distinct(c Category) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range d.All() {
		v, ok := c.Value(r).Get()
		if !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Bounds returns the integer span of a metric across present values,
// clamped to the int32 range.
func (d *Dataset) Bounds(m Metric) Bounds {
	var (
		b      Bounds
		lo, hi float64
	)
	for _, r := range d.All() {
		v, ok := m.Value(r)
		if !ok || math.IsNaN(v) {
			continue
		}
		if !b.Valid {
			lo, hi = v, v
			b.Valid = true
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if b.Valid {
		b.Min = int(clampInt32(math.Floor(lo)))
		b.Max = int(clampInt32(math.Ceil(hi)))
	}
	return b
}

// clampInt32 keeps v convertible to int on every platform.
func clampInt32(v float64) float64 {
	return math.Max(math.MinInt32, math.Min(math.MaxInt32, v))
}
