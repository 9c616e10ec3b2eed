package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/frahmantamala/budget-tracker/internal"
	pkglogger "github.com/frahmantamala/budget-tracker/pkg/logger"
)

// Recovery converts panics into the shared error envelope with a logged
// stack trace. The panic value stays in the logs, never in the body.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log := pkglogger.FromOr(r.Context(), logger)
					log.Error("panic recovered",
						"error", rec,
						"method", r.Method,
						"url", r.URL.String(),
						"stack", string(debug.Stack()))

					appErr := internal.NewInternalError("internal server error", fmt.Errorf("panic: %v", rec))
					status, body := appErr.ToHTTPResponse()
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(status)
					_ = json.NewEncoder(w).Encode(body)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
