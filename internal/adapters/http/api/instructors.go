package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/tutormatch/internal/adapters/repository"
	"github.com/okian/tutormatch/internal/domain/model"
)

// InstructorsHandler handles catalog registration and listing requests.
type InstructorsHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewInstructorsHandler creates a new instructors handler.
func NewInstructorsHandler(deps Dependencies, maxLimit int) *InstructorsHandler {
	return &InstructorsHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleInstructors dispatches POST (register) and GET (list) on /instructors.
func (h *InstructorsHandler) HandleInstructors(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleRegister(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	default:
		http.NotFound(w, r)
	}
}

// handleRegister handles POST /instructors requests. Registration is
// idempotent on event_id; updates flow through the queue so catalog changes
// are published as new immutable snapshots.
func (h *InstructorsHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req instructorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	if req.EventID == "" {
		req.EventID = uuid.NewString()
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	// Idempotency check - mark as seen first
	if h.deps.SeenAndRecord(r.Context(), req.EventID) {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", InstructorID: req.ID, Duplicate: true})
		return
	}

	update := model.CatalogUpdate{
		EventID: req.EventID,
		Instructor: model.Instructor{
			ID:           req.ID,
			Name:         req.Name,
			Expertise:    req.Expertise,
			Languages:    req.Languages,
			Availability: req.Availability,
			Location:     req.Location,
			Reputation: model.Reputation{
				Rating:            req.Rating,
				SessionsCompleted: req.SessionsCompleted,
			},
		},
	}

	if ok := h.deps.EnqueueUpdate(r.Context(), update); !ok {
		// Roll back the "seen" status since the enqueue failed
		h.deps.Unrecord(r.Context(), req.EventID)
		writeError(w, http.StatusTooManyRequests, "backpressure", ErrBackpressure)
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", InstructorID: req.ID, Duplicate: false})
}

// handleList handles GET /instructors?limit=N requests.
func (h *InstructorsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	limitStr := r.URL.Query().Get("limit")
	n, err := strconv.Atoi(limitStr)
	if err != nil || n < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", ErrBadRequest)
		return
	}
	records, err := h.deps.Instructors(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// HandleGetInstructor handles GET /instructors/{id} requests.
func (h *InstructorsHandler) HandleGetInstructor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/instructors/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	record, err := h.deps.Instructor(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}
