package health

import (
	"net/http"

	"github.com/dmitrymomot/gatekeeper/core/response"
)

// Liveness always answers "ALIVE". It checks no dependency.
func Liveness() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.Render(w, r, response.String("ALIVE"))
	})
}
