package handler

import (
	"log/slog"
	"net/http"

	"rpgmanager/internal/domain/models"
	"rpgmanager/internal/domain/services"
	"rpgmanager/internal/httputil"
)

// MemberHandler handles campaign roster and invitation HTTP requests
type MemberHandler struct {
	membershipService services.MembershipService
	logger            *slog.Logger
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(membershipService services.MembershipService, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{
		membershipService: membershipService,
		logger:            logger,
	}
}

type addMemberBody struct {
	Email string            `json:"email"`
	Role  models.MemberRole `json:"role"`
	// FromDirectory adds an existing user picked from the user directory.
	FromDirectory bool `json:"from_directory"`
}

type updateMemberBody struct {
	Role models.MemberRole `json:"role"`
}

// AddMember adds a member and sends the invitation
// POST /api/campaigns/{id}/members
func (h *MemberHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathValue(w, r, "id")
	if !ok {
		return
	}

	var body addMemberBody
	if !parseBody(w, r, &body) {
		return
	}

	var result *services.MemberResult
	var err error
	if body.FromDirectory {
		result, err = h.membershipService.AddExistingUser(r.Context(), actor, id, body.Email)
	} else {
		result, err = h.membershipService.AddMember(r.Context(), actor, id, &services.AddMemberRequest{
			Email: body.Email,
			Role:  body.Role,
		})
	}
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, result)
}

// UpdateMember changes a member's role
// PATCH /api/campaigns/{id}/members/{email}
func (h *MemberHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathValue(w, r, "id")
	if !ok {
		return
	}
	email, ok := pathValue(w, r, "email")
	if !ok {
		return
	}

	var body updateMemberBody
	if !parseBody(w, r, &body) {
		return
	}

	campaign, err := h.membershipService.UpdateMemberRole(r.Context(), actor, id, email, body.Role)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, campaign)
}

// RemoveMember removes a member from the roster
// DELETE /api/campaigns/{id}/members/{email}
func (h *MemberHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathValue(w, r, "id")
	if !ok {
		return
	}
	email, ok := pathValue(w, r, "email")
	if !ok {
		return
	}

	campaign, err := h.membershipService.RemoveMember(r.Context(), actor, id, email)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, campaign)
}

// ResendInvitation sends a member's invitation again
// POST /api/campaigns/{id}/members/{email}/resend
func (h *MemberHandler) ResendInvitation(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathValue(w, r, "id")
	if !ok {
		return
	}
	email, ok := pathValue(w, r, "email")
	if !ok {
		return
	}

	outcome, err := h.membershipService.ResendInvitation(r.Context(), actor, id, email)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, outcome)
}

// AcceptInvitation activates the caller's membership after a magic-link sign-in
// POST /api/invitations/accept
func (h *MemberHandler) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	claims := httputil.GetClaims(r)
	if claims == nil {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	result, err := h.membershipService.AcceptInvitation(r.Context(), claims)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}
