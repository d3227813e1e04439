package filter

import (
	"cmp"
	"math"
	"slices"

	"github.com/okian/touchboard/internal/domain/player"
)

// View is the subset of a dataset that satisfies a Criteria, in dataset order
// unless re-sorted.
type View struct {
	records []player.Record
}

// Len returns the number of records in the view.
func (v View) Len() int { return len(v.records) }

// Records returns a copy of the view's records.
func (v View) Records() []player.Record { return slices.Clone(v.records) }

// Sorted returns a copy of the view ordered by metric. Records missing the
// metric go last in either direction; ties keep their relative order.
func (v View) Sorted(m player.Metric, desc bool) View {
	out := slices.Clone(v.records)
	slices.SortStableFunc(out, func(a, b player.Record) int {
		av, aok := m.Value(a)
		bv, bok := m.Value(b)
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return 1
		case !bok:
			return -1
		}
		if desc {
			return cmp.Compare(bv, av)
		}
		return cmp.Compare(av, bv)
	})
	return View{records: out}
}

// Limit returns the first n records. n <= 0 keeps everything.
func (v View) Limit(n int) View {
	if n <= 0 || n >= len(v.records) {
		return v
	}
	return View{records: v.records[:n:n]}
}

// Summary aggregates a view. Means skip absent values and are absent when
// no record carries the metric.
type Summary struct {
	Count            int                      `json:"count"`
	MeanTouchesPer90 player.Optional[float64] `json:"mean_touches_per_90"`
	MeanOBV          player.Optional[float64] `json:"mean_obv"`
	MeanOBVRank      player.Optional[float64] `json:"mean_obv_rank"`
}

// Result is the pipeline output.
type Result struct {
	View    View    `json:"-"`
	Summary Summary `json:"summary"`
}

// Apply narrows ds by c and summarizes what remains. The only error is
// ErrInvalidCriteria; an empty or nil dataset yields an empty result.
func Apply(ds *player.Dataset, c Criteria) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}

	working := ds.Records()
	for _, keep := range c.predicates() {
		working = slices.DeleteFunc(working, func(r player.Record) bool { return !keep(r) })
		if len(working) == 0 {
			break
		}
	}
	if working == nil {
		working = []player.Record{}
	}

	view := View{records: working}
	return Result{View: view, Summary: Summarize(view)}, nil
}

// Summarize computes the count and means over a view.
func Summarize(v View) Summary {
	return Summary{
		Count:            v.Len(),
		MeanTouchesPer90: Mean(v, player.MetricTouchesPer90),
		MeanOBV:          Mean(v, player.MetricOBV),
		MeanOBVRank:      Mean(v, player.MetricOBVRank),
	}
}

// Mean is the arithmetic mean of m over records that have it.
func Mean(v View, m player.Metric) player.Optional[float64] {
	var (
		sum float64
		n   int
	)
	for _, r := range v.records {
		x, ok := m.Value(r)
		if !ok || math.IsNaN(x) {
			continue
		}
		sum += x
		n++
	}
	if n == 0 {
		return player.None[float64]()
	}
	return player.Some(sum / float64(n))
}
