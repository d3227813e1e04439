// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/okian/touchboard/internal/adapters/chart"
	"github.com/okian/touchboard/internal/domain/filter"
	"github.com/okian/touchboard/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Options() types.Options
	Query(ctx context.Context, q types.Query) (types.QueryResult, error)
	Points(ctx context.Context, c filter.Criteria) ([]chart.Point, error)
	RenderChart(ctx context.Context, w io.Writer, c filter.Criteria, format chart.Format) error
	MaxResultRows() int
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	optionsHandler   *OptionsHandler
	playersHandler   *PlayersHandler
	chartHandler     *ChartHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		optionsHandler:   NewOptionsHandler(deps),
		playersHandler:   NewPlayersHandler(deps, deps.MaxResultRows()),
		chartHandler:     NewChartHandler(deps),
		dashboardHandler: newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/options", MetricsMiddleware(s.optionsHandler.HandleGetOptions, "options"))
	mux.HandleFunc("/api/players", MetricsMiddleware(s.playersHandler.HandleGetPlayers, "players"))
	mux.HandleFunc("/api/chart", MetricsMiddleware(s.chartHandler.HandleGetPoints, "chart"))
	mux.HandleFunc("/api/chart.svg", MetricsMiddleware(s.chartHandler.HandleGetImage(chart.FormatSVG), "chart_svg"))
	mux.HandleFunc("/api/chart.png", MetricsMiddleware(s.chartHandler.HandleGetImage(chart.FormatPNG), "chart_png"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/{$}", s.dashboardHandler.HandleRoot)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps errors from the service layer to HTTP responses.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, filter.ErrInvalidCriteria):
		writeError(w, http.StatusBadRequest, "invalid_criteria", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, chart.ErrNoPoints):
		writeError(w, http.StatusNotFound, "no_points", WrapKind(op, ErrNotFound, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

// allowGet answers anything but GET and HEAD with 405.
func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	return false
}
