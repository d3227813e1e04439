package api

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/touchboard/internal/domain/filter"
	"github.com/okian/touchboard/internal/domain/player"
	"github.com/okian/touchboard/internal/domain/types"
)

// Query parameter names.
const (
	paramCompetition = "competition"
	paramPosition    = "position"
	paramTeam        = "team"
	paramAgeMin      = "age_min"
	paramAgeMax      = "age_max"
	paramUsageMin    = "usage_min"
	paramUsageMax    = "usage_max"
	paramSort        = "sort"
	paramOrder       = "order"
	paramLimit       = "limit"
)

// parseCriteria reads filter criteria from query parameters. Category
// parameters repeat; a range with only one bound is open on the other side.
func parseCriteria(q url.Values) (filter.Criteria, error) {
	c := filter.Criteria{
		Competitions: values(q, paramCompetition),
		Positions:    values(q, paramPosition),
		Teams:        values(q, paramTeam),
	}
	var err error
	if c.Age, err = parseRange(q, paramAgeMin, paramAgeMax); err != nil {
		return filter.Criteria{}, err
	}
	if c.Usage, err = parseRange(q, paramUsageMin, paramUsageMax); err != nil {
		return filter.Criteria{}, err
	}
	return c, nil
}

// parseQuery reads criteria plus sort, order and limit.
func parseQuery(q url.Values, maxLimit int) (types.Query, error) {
	c, err := parseCriteria(q)
	if err != nil {
		return types.Query{}, err
	}
	out := types.Query{Criteria: c, Sort: player.MetricTouchesPer90, Desc: true}

	if s := strings.TrimSpace(q.Get(paramSort)); s != "" {
		m, err := player.ParseMetric(s)
		if err != nil {
			return types.Query{}, fmt.Errorf("%w: %w", filter.ErrInvalidCriteria, err)
		}
		out.Sort = m
	}

	switch strings.ToLower(strings.TrimSpace(q.Get(paramOrder))) {
	case "", "desc":
	case "asc":
		out.Desc = false
	default:
		return types.Query{}, fmt.Errorf("%w: order must be asc or desc, got %q", filter.ErrInvalidCriteria, q.Get(paramOrder))
	}

	if s := strings.TrimSpace(q.Get(paramLimit)); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return types.Query{}, fmt.Errorf("%w: limit must be a positive integer, got %q", filter.ErrInvalidCriteria, s)
		}
		if n > maxLimit {
			return types.Query{}, fmt.Errorf("%w: limit %d exceeds %d", filter.ErrInvalidCriteria, n, maxLimit)
		}
		out.Limit = n
	}
	return out, nil
}

// values returns the non-blank, trimmed values of a repeated parameter.
func values(q url.Values, key string) []string {
	var out []string
	for _, v := range q[key] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseRange(q url.Values, minKey, maxKey string) (*filter.Range, error) {
	lo, hasLo, err := parseBound(q, minKey)
	if err != nil {
		return nil, err
	}
	hi, hasHi, err := parseBound(q, maxKey)
	if err != nil {
		return nil, err
	}
	if !hasLo && !hasHi {
		return nil, nil
	}
	if !hasLo {
		lo = -math.MaxFloat64
	}
	if !hasHi {
		hi = math.MaxFloat64
	}
	return &filter.Range{Min: lo, Max: hi}, nil
}

// parseBound accepts any float syntax; non-finite values are left for
// Criteria.Validate to reject.
func parseBound(q url.Values, key string) (float64, bool, error) {
	s := strings.TrimSpace(q.Get(key))
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %s=%q is not a number", filter.ErrInvalidCriteria, key, s)
	}
	return v, true, nil
}
