package player

import (
	"fmt"
	"strings"
)

// Metric names a numeric column of a Record.
type Metric string

// Numeric columns.
const (
	MetricTouchesPer90        Metric = "touches_per_90"
	MetricOBV                 Metric = "obv"
	MetricOBVRank             Metric = "obv_rank"
	MetricPassOBVRank         Metric = "pass_obv_rank"
	MetricDribbleCarryOBVRank Metric = "dribble_carry_obv_rank"
	MetricShotOBVRank         Metric = "shot_obv_rank"
	MetricAge                 Metric = "age"
	MetricUsage               Metric = "usage"
)

// Metrics lists every numeric column in display order.
var Metrics = []Metric{
	MetricTouchesPer90,
	MetricOBV,
	MetricOBVRank,
	MetricPassOBVRank,
	MetricDribbleCarryOBVRank,
	MetricShotOBVRank,
	MetricAge,
	MetricUsage,
}

// ParseMetric resolves a metric name, case-insensitively.
func ParseMetric(s string) (Metric, error) {
	m := Metric(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Metrics {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}

// Value returns the metric's value for r.
func (m Metric) Value(r Record) (float64, bool) {
	switch m {
	case MetricTouchesPer90:
		return r.TouchesPer90.Get()
	case MetricOBV:
		return r.OBV.Get()
	case MetricOBVRank:
		return r.OBVRank.Get()
	case MetricPassOBVRank:
		return r.PassOBVRank.Get()
	case MetricDribbleCarryOBVRank:
		return r.DribbleCarryOBVRank.Get()
	case MetricShotOBVRank:
		return r.ShotOBVRank.Get()
	case MetricAge:
		age, ok := r.Age.Get()
		return float64(age), ok
	case MetricUsage:
		return r.Usage.Get()
	default:
		return 0, false
	}
}

// Label is the spreadsheet column heading for the metric.
func (m Metric) Label() string {
	switch m {
	case MetricTouchesPer90:
		return "Touches per 90"
	case MetricOBV:
		return "OBV"
	case MetricOBVRank:
		return "OBV Rank"
	case MetricPassOBVRank:
		return "Pass OBV Rank"
	case MetricDribbleCarryOBVRank:
		return "Dribble & Carry OBV Rank"
	case MetricShotOBVRank:
		return "Shot OBV Rank"
	case MetricAge:
		return "Age"
	case MetricUsage:
		return "Usage"
	default:
		return string(m)
	}
}
