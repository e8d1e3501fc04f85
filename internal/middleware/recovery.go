package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"rpgmanager/internal/httputil"
	"rpgmanager/internal/metrics"
)

// Recovery turns a handler panic into a 500 problem response. Panics with
// http.ErrAbortHandler are re-raised so net/http can drop the connection.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}

				metrics.PanicsRecoveredTotal.Inc()
				logger.ErrorContext(r.Context(), "handler panicked",
					"panic", v,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
			}()

			next.ServeHTTP(w, r)
		})
	}
}
