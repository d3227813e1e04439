package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/okian/touchboard/internal/adapters/chart"
	"github.com/okian/touchboard/internal/domain/filter"
)

// ChartDependencies defines the interface for scatter plot data.
type ChartDependencies interface {
	Points(ctx context.Context, c filter.Criteria) ([]chart.Point, error)
	RenderChart(ctx context.Context, w io.Writer, c filter.Criteria, format chart.Format) error
}

// ChartHandler handles scatter plot requests.
type ChartHandler struct {
	deps ChartDependencies
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(deps ChartDependencies) *ChartHandler {
	return &ChartHandler{deps: deps}
}

type pointsResponse struct {
	Points []chart.Point `json:"points"`
}

// HandleGetPoints handles GET /api/chart requests with the plot data as JSON.
func (h *ChartHandler) HandleGetPoints(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_chart_points"
	if !allowGet(w, r) {
		return
	}
	c, err := parseCriteria(r.URL.Query())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	points, err := h.deps.Points(r.Context(), c)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, pointsResponse{Points: points})
}

// HandleGetImage returns a handler that renders the plot in format.
func (h *ChartHandler) HandleGetImage(format chart.Format) http.HandlerFunc {
	op := "api.get_chart_" + string(format)
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowGet(w, r) {
			return
		}
		c, err := parseCriteria(r.URL.Query())
		if err != nil {
			writeServiceError(w, op, err)
			return
		}
		// Rendered into a buffer so failures still produce a JSON error.
		var buf bytes.Buffer
		if err := h.deps.RenderChart(r.Context(), &buf, c, format); err != nil {
			writeServiceError(w, op, err)
			return
		}
		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}
