package handler

import (
	"log/slog"
	"net/http"

	"rpgmanager/internal/domain/services"
	"rpgmanager/internal/httputil"
)

// CampaignHandler handles campaign HTTP requests
type CampaignHandler struct {
	campaignService services.CampaignService
	scenarioService services.ScenarioService
	logger          *slog.Logger
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(campaignService services.CampaignService, scenarioService services.ScenarioService, logger *slog.Logger) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
		scenarioService: scenarioService,
		logger:          logger,
	}
}

// updateCampaignBody is the PATCH body; absent fields are left alone
type updateCampaignBody struct {
	Title       *string                 `json:"title"`
	Description *string                 `json:"description"`
	ImageURL    httputil.OptionalString `json:"image_url"`
}

type importBody struct {
	ScenarioIDs []string `json:"scenario_ids"`
}

// ListCampaigns retrieves campaigns the caller owns or belongs to
// GET /api/campaigns
func (h *CampaignHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	campaigns, err := h.campaignService.ListCampaigns(r.Context(), actor)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, campaigns)
}

// CreateCampaign creates a campaign, invites its members and clones the
// selected scenarios
// POST /api/campaigns
func (h *CampaignHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req services.CreateCampaignRequest
	if !parseBody(w, r, &req) {
		return
	}

	result, err := h.campaignService.CreateCampaign(r.Context(), actor, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, result)
}

// GetCampaign retrieves a campaign
// GET /api/campaigns/{id}
func (h *CampaignHandler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathValue(w, r, "id")
	if !ok {
		return
	}

	campaign, err := h.campaignService.GetCampaign(r.Context(), actor, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, campaign)
}

// UpdateCampaign updates a campaign
// PATCH /api/campaigns/{id}
func (h *CampaignHandler) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathValue(w, r, "id")
	if !ok {
		return
	}

	var body updateCampaignBody
	if !parseBody(w, r, &body) {
		return
	}

	campaign, err := h.campaignService.UpdateCampaign(r.Context(), actor, id, &services.UpdateCampaignRequest{
		Title:       body.Title,
		Description: body.Description,
		ImageURL:    body.ImageURL.Domain(),
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, campaign)
}

// DeleteCampaign deletes a campaign and everything in it
// DELETE /api/campaigns/{id}
func (h *CampaignHandler) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathValue(w, r, "id")
	if !ok {
		return
	}

	if err := h.campaignService.DeleteCampaign(r.Context(), actor, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ImportScenarios clones scenarios from other campaigns into this one
// POST /api/campaigns/{id}/import
func (h *CampaignHandler) ImportScenarios(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathValue(w, r, "id")
	if !ok {
		return
	}

	var body importBody
	if !parseBody(w, r, &body) {
		return
	}

	result, err := h.scenarioService.ImportScenarios(r.Context(), actor, id, body.ScenarioIDs)
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Info("scenario import completed",
		"campaign_id", id,
		"cloned", result.Summary.Cloned,
		"failed", result.Summary.Failed,
	)

	httputil.RespondJSON(w, http.StatusOK, result)
}
