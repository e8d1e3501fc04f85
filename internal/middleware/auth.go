package middleware

import (
	"errors"
	"net/http"

	"rpgmanager/internal/auth"
	"rpgmanager/internal/domain"
	"rpgmanager/internal/httputil"
)

// AuthMiddleware verifies the bearer token and stores its claims in the
// request context. Requests without a valid token get a 401 problem response.
func AuthMiddleware(verifier auth.JWTVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := httputil.GetBearerToken(r)
			if token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				detail := "invalid token"
				if !errors.Is(err, domain.ErrUnauthorized) {
					detail = "token verification failed"
				}
				httputil.RespondError(w, http.StatusUnauthorized, detail)
				return
			}

			next.ServeHTTP(w, httputil.WithClaims(r, claims))
		})
	}
}
