package api

import (
	"net/http"
)

// dashboardHandler handles dashboard requests
type dashboardHandler struct{}

func newDashboardHandler() *dashboardHandler {
	return &dashboardHandler{}
}

// HandleDashboard handles GET /dashboard requests with the embedded page.
// The page drives the filter controls through /api/options, /api/players
// and /api/chart.svg.
func (h *dashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	http.ServeFileFS(w, r, dashboardFS, "dashboard.html")
}

// HandleRoot redirects / to the dashboard.
func (h *dashboardHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}
