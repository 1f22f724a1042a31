// Package api exposes HTTP handlers for the tracker service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sonikk666/fitness-tracker-module/internal/auth"
	"github.com/sonikk666/fitness-tracker-module/internal/domain"
	"github.com/sonikk666/fitness-tracker-module/internal/observability"
	"github.com/sonikk666/fitness-tracker-module/internal/persistence"
	"github.com/sonikk666/fitness-tracker-module/internal/training"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/sessions", h.sessions)
	mux.HandleFunc("/v1/sessions/summary", h.sessionSummary)
	mux.HandleFunc("/v1/sessions/", h.sessionByID)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) sessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.recordSession(w, r)
	case http.MethodGet:
		h.listSessions(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) sessionByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/sessions/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing session id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getSession(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) recordSession(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeSessionsWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope sessions:write required")
		return
	}

	var req RecordSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	aggregate, replay, err := h.service.RecordSession(r.Context(), domain.RecordSessionInput{
		TenantID:       claims.TenantID,
		UserID:         req.UserID,
		WorkoutCode:    req.WorkoutType,
		Readings:       req.Readings,
		Source:         req.Source,
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
	})
	if err != nil {
		if errors.Is(err, training.ErrInvalidPackage) {
			observability.RecordInvalidPackage("api")
			writeError(w, http.StatusBadRequest, "invalid_package", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	status := http.StatusCreated
	if replay {
		status = http.StatusOK
	}
	writeJSON(w, status, RecordSessionResponse{
		Session: toSessionView(*aggregate),
		Replay:  replay,
	})
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request, id string) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeSessionsRead) && !claims.HasScope(auth.ScopeSessionsWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope sessions:read required")
		return
	}

	aggregate, err := h.service.GetSession(r.Context(), claims.TenantID, id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toSessionView(*aggregate))
}

func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeSessionsRead) && !claims.HasScope(auth.ScopeSessionsWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope sessions:read required")
		return
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "missing user_id parameter")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	cursor, err := persistence.DecodeCursor(r.URL.Query().Get("cursor"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", "invalid cursor")
		return
	}

	aggregates, next, err := h.service.ListSessionsByUser(r.Context(), claims.TenantID, userID, cursor, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	items := make([]SessionView, 0, len(aggregates))
	for _, agg := range aggregates {
		items = append(items, toSessionView(agg))
	}

	writeJSON(w, http.StatusOK, ListSessionsResponse{
		Items:      items,
		NextCursor: persistence.EncodeCursor(next),
	})
}

func (h *Handler) sessionSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeSessionsRead) && !claims.HasScope(auth.ScopeSessionsWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope sessions:read required")
		return
	}

	userID := r.URL.Query().Get("user_id")
	if strings.TrimSpace(userID) == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "missing user_id parameter")
		return
	}

	windowHours := 0
	if raw := r.URL.Query().Get("window_hours"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			windowHours = parsed
		}
	}

	window := time.Duration(windowHours) * time.Hour
	summary, err := h.service.GetSessionSummary(r.Context(), claims.TenantID, userID, window)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, SessionSummaryResponse{
		Total:           summary.Total,
		PerKind:         summary.PerKind,
		TotalDistanceKm: summary.TotalDistanceKm,
		TotalCalories:   summary.TotalCalories,
		AverageSpeedKmh: summary.AverageSpeedKmh,
		LastSessionAt:   summary.LastSessionAt,
		WindowSeconds:   int64(window / time.Second),
	})
}

// RecordSessionRequest is the payload for POST /v1/sessions.
type RecordSessionRequest struct {
	UserID      string    `json:"user_id"`
	WorkoutType string    `json:"workout_type"`
	Readings    []float64 `json:"readings"`
	Source      string    `json:"source"`
}

// Validate ensures request correctness. Code/readings consistency is left to
// the dispatcher, which reports it as one invalid_package error.
func (r RecordSessionRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return errors.New("user_id is required")
	}
	if strings.TrimSpace(r.WorkoutType) == "" {
		return errors.New("workout_type is required")
	}
	if len(r.Readings) == 0 {
		return errors.New("readings are required")
	}
	return nil
}

// RecordSessionResponse describes the response body for record.
type RecordSessionResponse struct {
	Session SessionView `json:"session"`
	Replay  bool        `json:"idempotent_replay"`
}

// SessionView exposes full details about a computed session.
type SessionView struct {
	SessionID     string    `json:"session_id"`
	TenantID      string    `json:"tenant_id"`
	UserID        string    `json:"user_id"`
	WorkoutType   string    `json:"workout_type"`
	Kind          string    `json:"kind"`
	Readings      []float64 `json:"readings"`
	DurationHours float64   `json:"duration_hours"`
	DistanceKm    float64   `json:"distance_km"`
	MeanSpeedKmh  float64   `json:"mean_speed_kmh"`
	Calories      float64   `json:"calories"`
	Message       string    `json:"message"`
	Source        string    `json:"source"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListSessionsResponse packages list results.
type ListSessionsResponse struct {
	Items      []SessionView `json:"items"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// SessionSummaryResponse describes aggregate stats for a user's sessions.
type SessionSummaryResponse struct {
	Total           int            `json:"total"`
	PerKind         map[string]int `json:"per_kind"`
	TotalDistanceKm float64        `json:"total_distance_km"`
	TotalCalories   float64        `json:"total_calories"`
	AverageSpeedKmh float64        `json:"average_speed_kmh"`
	LastSessionAt   *time.Time     `json:"last_session_at,omitempty"`
	WindowSeconds   int64          `json:"window_seconds"`
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, map[string]string{
		"type":   code,
		"detail": detail,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toSessionView(agg domain.SessionAggregate) SessionView {
	return SessionView{
		SessionID:     agg.ID,
		TenantID:      agg.TenantID,
		UserID:        agg.UserID,
		WorkoutType:   agg.WorkoutCode,
		Kind:          agg.Kind,
		Readings:      agg.Readings,
		DurationHours: agg.DurationHours,
		DistanceKm:    agg.DistanceKm,
		MeanSpeedKmh:  agg.MeanSpeedKmh,
		Calories:      agg.Calories,
		Message:       agg.Message,
		Source:        agg.Source,
		CreatedAt:     agg.CreatedAt,
	}
}
