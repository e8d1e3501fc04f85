package handler

import (
	"log/slog"
	"net/http"

	"rpgmanager/internal/domain/services"
	"rpgmanager/internal/httputil"
)

// DirectoryHandler serves the user directory
type DirectoryHandler struct {
	directoryService services.DirectoryService
	logger           *slog.Logger
}

// NewDirectoryHandler creates a new directory handler
func NewDirectoryHandler(directoryService services.DirectoryService, logger *slog.Logger) *DirectoryHandler {
	return &DirectoryHandler{
		directoryService: directoryService,
		logger:           logger,
	}
}

// ListUsers lists users that can be added to a campaign
// GET /api/users
func (h *DirectoryHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.directoryService.ListUsers(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, users)
}
