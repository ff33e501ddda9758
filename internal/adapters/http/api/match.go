package api

import (
	"encoding/json"
	"net/http"

	"github.com/okian/tutormatch/internal/domain/model"
)

// MatchHandler handles match requests.
type MatchHandler struct {
	deps Dependencies
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(deps Dependencies) *MatchHandler {
	return &MatchHandler{deps: deps}
}

// HandleMatch handles POST /match requests. An empty topic or an empty
// requested-window set is a normal request that matches nothing, so it
// returns 200 with an empty list rather than an error.
func (h *MatchHandler) HandleMatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	entries, err := h.deps.Match(r.Context(), model.MatchRequest{
		Topic:              req.Topic,
		RequestedWindows:   req.RequestedWindows,
		PreferredLanguages: req.PreferredLanguages,
		Location:           req.Location,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
