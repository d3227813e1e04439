// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/okian/touchboard/internal/adapters/chart"
	"github.com/okian/touchboard/internal/domain/filter"
	"github.com/okian/touchboard/internal/domain/player"
	"github.com/okian/touchboard/internal/domain/types"
	"github.com/okian/touchboard/pkg/logger"
	"github.com/okian/touchboard/pkg/metrics"
)

const (
	defaultUsageMin      = 20
	defaultMaxResultRows = 5000
)

// Service answers dashboard queries over a dataset loaded once at startup.
type Service struct {
	dataset *player.Dataset
	facets  player.Facets

	defaultUsageMin float64
	maxResultRows   int
	renderer        *chart.Renderer

	startedAt time.Time
	queries   atomic.Int64
	rejected  atomic.Int64
	charts    atomic.Int64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDefaultUsageMin sets the usage lower bound preselected by Defaults.
func WithDefaultUsageMin(v float64) Option {
	return func(s *Service) {
		s.defaultUsageMin = v
	}
}

// WithMaxResultRows caps the rows a single query returns.
func WithMaxResultRows(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxResultRows = n
		}
	}
}

// WithRenderer sets the chart renderer.
func WithRenderer(r *chart.Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.renderer = r
		}
	}
}

// New constructs a Service over ds. A nil dataset behaves as an empty one.
func New(ds *player.Dataset, opts ...Option) *Service {
	if ds == nil {
		ds = player.NewDataset(nil)
	}
	s := &Service{
		dataset:         ds,
		defaultUsageMin: defaultUsageMin,
		maxResultRows:   defaultMaxResultRows,
		startedAt:       time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.renderer == nil {
		s.renderer = chart.NewRenderer()
	}
	s.facets = ds.Facets()
	return s
}

// Dataset returns the dataset the service reads.
func (s *Service) Dataset() *player.Dataset { return s.dataset }

// Facets returns the filter options derived from the dataset.
func (s *Service) Facets() player.Facets { return s.facets }

// Defaults returns the criteria the dashboard starts with.
func (s *Service) Defaults() filter.Criteria {
	return filter.Defaults(s.facets, s.defaultUsageMin)
}

// Options returns the facets, defaults and sortable metrics for filter controls.
func (s *Service) Options() types.Options {
	return types.Options{
		Facets:        s.facets,
		Defaults:      s.Defaults(),
		Metrics:       types.Metrics(),
		MaxResultRows: s.maxResultRows,
	}
}

// MaxResultRows returns the per-query row cap.
func (s *Service) MaxResultRows() int { return s.maxResultRows }

// Query runs the pipeline and orders and limits the view.
func (s *Service) Query(ctx context.Context, q types.Query) (types.QueryResult, error) {
	if err := ctx.Err(); err != nil {
		return types.QueryResult{}, err
	}
	start := time.Now()

	res, err := s.apply(ctx, q.Criteria)
	if err != nil {
		return types.QueryResult{}, err
	}

	sortBy := q.Sort
	if sortBy == "" {
		sortBy = player.MetricTouchesPer90
	}
	limit := q.Limit
	if limit <= 0 || limit > s.maxResultRows {
		limit = s.maxResultRows
	}
	view := res.View.Sorted(sortBy, q.Desc)
	page := view.Limit(limit)

	latency := time.Since(start)
	s.queries.Add(1)
	metrics.RecordQuery(res.View.Len(), float64(latency.Microseconds())/1000)
	s.logger.Debug(ctx, "query served",
		logger.Int("matched", res.View.Len()),
		logger.Int("returned", page.Len()),
		logger.String("sort", string(sortBy)),
		logger.Duration("took", latency),
	)

	return types.QueryResult{
		Players:   page.Records(),
		Summary:   res.Summary,
		Truncated: page.Len() < view.Len(),
	}, nil
}

// Points returns scatter points for the records matching c.
func (s *Service) Points(ctx context.Context, c filter.Criteria) ([]chart.Point, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := s.apply(ctx, c)
	if err != nil {
		return nil, err
	}
	return chart.Points(res.View.Records()), nil
}

// RenderChart draws the scatter plot for the records matching c.
func (s *Service) RenderChart(ctx context.Context, w io.Writer, c filter.Criteria, format chart.Format) error {
	points, err := s.Points(ctx, c)
	if err != nil {
		return err
	}
	start := time.Now()
	err = s.renderer.Render(w, points, format)
	metrics.RecordChartRender(float64(time.Since(start).Microseconds())/1000, err)
	if err != nil {
		if !errors.Is(err, chart.ErrNoPoints) {
			s.logger.Error(ctx, "chart render failed", logger.Error(err))
		}
		return fmt.Errorf("render %s chart: %w", format, err)
	}
	s.charts.Add(1)
	return nil
}

func (s *Service) apply(ctx context.Context, c filter.Criteria) (filter.Result, error) {
	res, err := filter.Apply(s.dataset, c)
	if err != nil {
		s.rejected.Add(1)
		metrics.RecordInvalidCriteria()
		s.logger.Debug(ctx, "criteria rejected", logger.Error(err))
		return filter.Result{}, err
	}
	return res, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	return map[string]any{
		"datasetRows":     s.dataset.Len(),
		"competitions":    len(s.facets.Competitions),
		"teams":           len(s.facets.Teams),
		"positions":       len(s.facets.Positions),
		"queriesServed":   s.queries.Load(),
		"queriesRejected": s.rejected.Load(),
		"chartsRendered":  s.charts.Load(),
		"maxResultRows":   s.maxResultRows,
		"startedAt":       s.startedAt.UTC().Format(time.RFC3339),
		"uptimeSeconds":   int64(time.Since(s.startedAt).Seconds()),
	}
}
