package handler

import (
	"log/slog"
	"net/http"

	"rpgmanager/internal/domain/services"
	"rpgmanager/internal/httputil"
)

// AuthHandler fronts the hosted auth provider for password sign-in
type AuthHandler struct {
	authService services.AuthService
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService services.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// SignUp registers a new account
// POST /api/auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req services.SignUpRequest
	if !parseBody(w, r, &req) {
		return
	}

	session, err := h.authService.SignUp(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, session)
}

// Login exchanges email and password for a session
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.SignInRequest
	if !parseBody(w, r, &req) {
		return
	}

	session, err := h.authService.SignIn(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, session)
}

// Logout revokes the caller's session
// POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := httputil.GetBearerToken(r)
	if token == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	if err := h.authService.SignOut(r.Context(), token); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Me returns the user behind the bearer token
// GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	token := httputil.GetBearerToken(r)
	if token == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	user, err := h.authService.GetUser(r.Context(), token)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, user)
}
