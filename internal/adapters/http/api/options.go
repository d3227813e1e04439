package api

import (
	"net/http"

	"github.com/okian/touchboard/internal/domain/types"
)

// OptionsDependencies defines the interface for filter control data.
type OptionsDependencies interface {
	Options() types.Options
}

// OptionsHandler handles GET /api/options.
type OptionsHandler struct {
	deps OptionsDependencies
}

// NewOptionsHandler creates a new options handler.
func NewOptionsHandler(deps OptionsDependencies) *OptionsHandler {
	return &OptionsHandler{deps: deps}
}

// HandleGetOptions returns facets, default criteria and sortable metrics.
func (h *OptionsHandler) HandleGetOptions(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Options())
}
