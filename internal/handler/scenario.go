package handler

import (
	"log/slog"
	"net/http"

	"rpgmanager/internal/content"
	"rpgmanager/internal/domain/services"
	"rpgmanager/internal/httputil"
)

// ScenarioHandler handles scenario HTTP requests
type ScenarioHandler struct {
	scenarioService services.ScenarioService
	logger          *slog.Logger
}

// NewScenarioHandler creates a new scenario handler
func NewScenarioHandler(scenarioService services.ScenarioService, logger *slog.Logger) *ScenarioHandler {
	return &ScenarioHandler{
		scenarioService: scenarioService,
		logger:          logger,
	}
}

type editBody struct {
	Commands []content.Command `json:"commands"`
}

// ListScenarios retrieves a campaign's scenarios
// GET /api/campaigns/{id}/scenarios
func (h *ScenarioHandler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	campaignID, ok := pathValue(w, r, "id")
	if !ok {
		return
	}

	scenarios, err := h.scenarioService.ListScenarios(r.Context(), actor, campaignID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, scenarios)
}

// ListAllScenarios retrieves every scenario the caller can import from
// GET /api/scenarios
func (h *ScenarioHandler) ListAllScenarios(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	scenarios, err := h.scenarioService.ListAllScenarios(r.Context(), actor)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, scenarios)
}

// CreateScenario creates a scenario in a campaign
// POST /api/campaigns/{id}/scenarios
func (h *ScenarioHandler) CreateScenario(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	campaignID, ok := pathValue(w, r, "id")
	if !ok {
		return
	}

	var req services.CreateScenarioRequest
	if !parseBody(w, r, &req) {
		return
	}
	req.CampaignID = campaignID

	scenario, err := h.scenarioService.CreateScenario(r.Context(), actor, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, scenario)
}

// GetScenario retrieves a scenario with its content document
// GET /api/scenarios/{id}
func (h *ScenarioHandler) GetScenario(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathValue(w, r, "id")
	if !ok {
		return
	}

	scenario, err := h.scenarioService.GetScenario(r.Context(), actor, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, scenario)
}

// UpdateScenario updates a scenario; content replaces the whole document
// PATCH /api/scenarios/{id}
func (h *ScenarioHandler) UpdateScenario(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathValue(w, r, "id")
	if !ok {
		return
	}

	var req services.UpdateScenarioRequest
	if !parseBody(w, r, &req) {
		return
	}

	scenario, err := h.scenarioService.UpdateScenario(r.Context(), actor, id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, scenario)
}

// DeleteScenario deletes a scenario
// DELETE /api/scenarios/{id}
func (h *ScenarioHandler) DeleteScenario(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathValue(w, r, "id")
	if !ok {
		return
	}

	if err := h.scenarioService.DeleteScenario(r.Context(), actor, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// EditContent applies a batch of content commands and saves once
// POST /api/scenarios/{id}/edits
func (h *ScenarioHandler) EditContent(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathValue(w, r, "id")
	if !ok {
		return
	}

	var body editBody
	if !parseBody(w, r, &body) {
		return
	}

	result, err := h.scenarioService.EditContent(r.Context(), actor, id, body.Commands)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}
