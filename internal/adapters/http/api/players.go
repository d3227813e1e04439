package api

import (
	"context"
	"net/http"

	"github.com/okian/touchboard/internal/domain/types"
)

// PlayersDependencies defines the interface for table queries.
type PlayersDependencies interface {
	Query(ctx context.Context, q types.Query) (types.QueryResult, error)
}

// PlayersHandler handles player table requests.
type PlayersHandler struct {
	deps     PlayersDependencies
	maxLimit int
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayersDependencies, maxLimit int) *PlayersHandler {
	return &PlayersHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetPlayers handles GET /api/players requests.
func (h *PlayersHandler) HandleGetPlayers(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_players"
	if !allowGet(w, r) {
		return
	}
	q, err := parseQuery(r.URL.Query(), h.maxLimit)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	res, err := h.deps.Query(r.Context(), q)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
