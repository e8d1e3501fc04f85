package handler

import (
	"log/slog"
	"net/http"

	"rpgmanager/internal/domain/services"
	"rpgmanager/internal/httputil"
)

// SessionHandler handles play session HTTP requests
type SessionHandler struct {
	sessionService services.SessionService
	logger         *slog.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService services.SessionService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		logger:         logger,
	}
}

type updateSessionBody struct {
	Title      *string                 `json:"title"`
	Date       *string                 `json:"date"`
	Notes      *string                 `json:"notes"`
	ScenarioID httputil.OptionalString `json:"scenario_id"`
}

// ListSessions retrieves a campaign's sessions, latest first
// GET /api/campaigns/{id}/sessions
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	campaignID, ok := pathValue(w, r, "id")
	if !ok {
		return
	}

	sessions, err := h.sessionService.ListSessions(r.Context(), actor, campaignID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, sessions)
}

// CreateSession logs a session in a campaign
// POST /api/campaigns/{id}/sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	campaignID, ok := pathValue(w, r, "id")
	if !ok {
		return
	}

	var req services.CreateSessionRequest
	if !parseBody(w, r, &req) {
		return
	}
	req.CampaignID = campaignID

	session, err := h.sessionService.CreateSession(r.Context(), actor, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, session)
}

// GetSession retrieves a session
// GET /api/sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathValue(w, r, "id")
	if !ok {
		return
	}

	session, err := h.sessionService.GetSession(r.Context(), actor, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, session)
}

// UpdateSession updates a session
// PATCH /api/sessions/{id}
func (h *SessionHandler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathValue(w, r, "id")
	if !ok {
		return
	}

	var body updateSessionBody
	if !parseBody(w, r, &body) {
		return
	}

	session, err := h.sessionService.UpdateSession(r.Context(), actor, id, &services.UpdateSessionRequest{
		Title:      body.Title,
		Date:       body.Date,
		Notes:      body.Notes,
		ScenarioID: body.ScenarioID.Domain(),
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, session)
}

// DeleteSession deletes a session
// DELETE /api/sessions/{id}
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathValue(w, r, "id")
	if !ok {
		return
	}

	if err := h.sessionService.DeleteSession(r.Context(), actor, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
