package handler

import (
	"log/slog"
	"net/http"

	"rpgmanager/internal/domain/models"
	"rpgmanager/internal/domain/services"
	"rpgmanager/internal/httputil"
)

// NPCHandler handles NPC HTTP requests
type NPCHandler struct {
	npcService services.NPCService
	logger     *slog.Logger
}

// NewNPCHandler creates a new NPC handler
func NewNPCHandler(npcService services.NPCService, logger *slog.Logger) *NPCHandler {
	return &NPCHandler{
		npcService: npcService,
		logger:     logger,
	}
}

type updateNPCBody struct {
	Name        *string                 `json:"name"`
	Description *string                 `json:"description"`
	ImageURL    httputil.OptionalString `json:"image_url"`
	Traits      *[]models.Trait         `json:"traits"`
}

// ListNPCs retrieves a campaign's NPCs
// GET /api/campaigns/{id}/npcs
func (h *NPCHandler) ListNPCs(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	campaignID, ok := pathValue(w, r, "id")
	if !ok {
		return
	}

	npcs, err := h.npcService.ListNPCs(r.Context(), actor, campaignID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, npcs)
}

// CreateNPC creates an NPC in a campaign
// POST /api/campaigns/{id}/npcs
func (h *NPCHandler) CreateNPC(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	campaignID, ok := pathValue(w, r, "id")
	if !ok {
		return
	}

	var req services.CreateNPCRequest
	if !parseBody(w, r, &req) {
		return
	}
	req.CampaignID = campaignID

	npc, err := h.npcService.CreateNPC(r.Context(), actor, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, npc)
}

// GetNPC retrieves an NPC
// GET /api/npcs/{id}
func (h *NPCHandler) GetNPC(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathValue(w, r, "id")
	if !ok {
		return
	}

	npc, err := h.npcService.GetNPC(r.Context(), actor, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, npc)
}

// UpdateNPC updates an NPC
// PATCH /api/npcs/{id}
func (h *NPCHandler) UpdateNPC(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathValue(w, r, "id")
	if !ok {
		return
	}

	var body updateNPCBody
	if !parseBody(w, r, &body) {
		return
	}

	npc, err := h.npcService.UpdateNPC(r.Context(), actor, id, &services.UpdateNPCRequest{
		Name:        body.Name,
		Description: body.Description,
		ImageURL:    body.ImageURL.Domain(),
		Traits:      body.Traits,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, npc)
}

// DeleteNPC deletes an NPC
// DELETE /api/npcs/{id}
func (h *NPCHandler) DeleteNPC(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathValue(w, r, "id")
	if !ok {
		return
	}

	if err := h.npcService.DeleteNPC(r.Context(), actor, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
