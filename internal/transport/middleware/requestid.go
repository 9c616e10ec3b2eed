package middleware

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/frahmantamala/budget-tracker/pkg/logger"
)

// RequestID accepts or mints an X-Trace-ID and stores a trace-scoped
// copy of base in the request context, where Logging and Recovery pick
// it up.
func RequestID(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get("X-Trace-ID")
			if traceID == "" {
				traceID = uuid.NewString()
			}

			ctx := logger.Inject(r.Context(), base.With("traceID", traceID))

			// propagate back to response
			w.Header().Set("X-Trace-ID", traceID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
