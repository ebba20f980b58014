package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/gatekeeper/core/logger"
	"github.com/dmitrymomot/gatekeeper/core/response"
)

// Readiness answers "READY" when every check passes and 503 otherwise.
// Check errors are logged, never returned to the caller.
func Readiness(log *slog.Logger, checks ...func(context.Context) error) http.Handler {
	if log == nil {
		log = logger.Discard()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
				response.Render(w, r, response.NoStore(response.StringWithStatus(
					response.ErrServiceUnavailable.Message, http.StatusServiceUnavailable)))
				return
			}
		}
		response.Render(w, r, response.NoStore(response.String("READY")))
	})
}
