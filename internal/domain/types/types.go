// Package types contains the request and response shapes shared by the
// service and its transports.
package types

import (
	"github.com/okian/touchboard/internal/domain/filter"
	"github.com/okian/touchboard/internal/domain/player"
)

// Query is one table request: criteria plus presentation.
type Query struct {
	Criteria filter.Criteria
	// Sort defaults to touches per 90.
	Sort player.Metric
	Desc bool
	// Limit <= 0 means the service cap.
	Limit int
}

// QueryResult is a filtered, ordered page of players.
type QueryResult struct {
	Players []player.Record `json:"players"`
	Summary filter.Summary  `json:"summary"`
	// Truncated reports that Limit cut the view short.
	Truncated bool `json:"truncated"`
}

// MetricInfo describes a sortable column.
type MetricInfo struct {
	Name  player.Metric `json:"name"`
	Label string        `json:"label"`
}

// Options is everything a client needs to draw the filter controls.
type Options struct {
	Facets        player.Facets   `json:"facets"`
	Defaults      filter.Criteria `json:"defaults"`
	Metrics       []MetricInfo    `json:"metrics"`
	MaxResultRows int             `json:"max_result_rows"`
}

// Metrics lists every numeric column with its display label.
func Metrics() []MetricInfo {
	out := make([]MetricInfo, 0, len(player.Metrics))
	for _, m := range player.Metrics {
		out = append(out, MetricInfo{Name: m, Label: m.Label()})
	}
	return out
}
