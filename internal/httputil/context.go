package httputil

import (
	"context"
	"net/http"
	"strings"

	"rpgmanager/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const (
	claimsKey contextKey = "claims"
)

// WithClaims adds verified JWT claims to the request context
func WithClaims(r *http.Request, claims *models.SupabaseClaims) *http.Request {
	ctx := context.WithValue(r.Context(), claimsKey, claims)
	return r.WithContext(ctx)
}

// GetClaims retrieves the verified claims, or nil on unauthenticated routes
func GetClaims(r *http.Request) *models.SupabaseClaims {
	claims, _ := r.Context().Value(claimsKey).(*models.SupabaseClaims)
	return claims
}

// GetUserID retrieves the caller's user id, returns empty string if not found
func GetUserID(r *http.Request) string {
	if claims := GetClaims(r); claims != nil {
		return claims.GetUserID()
	}
	return ""
}

// GetActor returns the caller as seen by services. ok is false when the
// request carries no verified identity.
func GetActor(r *http.Request) (models.Actor, bool) {
	claims := GetClaims(r)
	if claims == nil {
		return models.Actor{}, false
	}
	return claims.Actor(), true
}

// GetBearerToken extracts the token from an "Authorization: Bearer" header
func GetBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
