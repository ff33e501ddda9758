// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/tutormatch/internal/domain/dedupe"
	"github.com/okian/tutormatch/internal/domain/model"
	"github.com/okian/tutormatch/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	dedupe.Deduper

	// EnqueueUpdate pushes a catalog update for async ingestion.
	// Returns false on backpressure.
	EnqueueUpdate(ctx context.Context, u model.CatalogUpdate) bool

	// Match runs the engine against the current catalog snapshot.
	Match(ctx context.Context, req model.MatchRequest) ([]types.MatchEntry, error)

	// Read operations expose catalog data.
	Instructors(ctx context.Context, limit int) ([]types.InstructorRecord, error)
	Instructor(ctx context.Context, id string) (types.InstructorRecord, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	instructorsHandler *InstructorsHandler
	matchHandler       *MatchHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxCatalogLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		instructorsHandler: NewInstructorsHandler(deps, maxCatalogLimit),
		matchHandler:       NewMatchHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/instructors", MetricsMiddleware(s.instructorsHandler.HandleInstructors, "instructors"))
	mux.HandleFunc("/instructors/", MetricsMiddleware(s.instructorsHandler.HandleGetInstructor, "instructor"))
	mux.HandleFunc("/match", MetricsMiddleware(s.matchHandler.HandleMatch, "match"))
}

// instructorRequest mirrors the wire schema for POST /instructors.
type instructorRequest struct {
	EventID           string   `json:"event_id"`
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Expertise         []string `json:"expertise"`
	Languages         []string `json:"languages"`
	Availability      []string `json:"availability"`
	Location          string   `json:"location"`
	Rating            float64  `json:"rating"`
	SessionsCompleted int      `json:"sessions_completed"`
}

func (r instructorRequest) validate() error {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return errors.New("missing name")
	case len(r.Expertise) == 0:
		return errors.New("missing expertise")
	}
	return nil
}

// matchRequest mirrors the wire schema for POST /match.
type matchRequest struct {
	Topic              string   `json:"topic"`
	RequestedWindows   []string `json:"requested_windows"`
	PreferredLanguages []string `json:"preferred_languages"`
	Location           string   `json:"location"`
}

type ackResponse struct {
	Status       string `json:"status"`
	InstructorID string `json:"instructor_id,omitempty"`
	Duplicate    bool   `json:"duplicate"`
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
