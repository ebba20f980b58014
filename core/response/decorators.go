package response

import (
	"net/http"

	"github.com/dmitrymomot/gatekeeper/core/handler"
)

var noStoreHeaders = map[string]string{
	"Cache-Control": "no-store, no-cache, must-revalidate",
	"Pragma":        "no-cache",
	"Expires":       "0",
}

// WithHeaders sets headers before resp renders. Nil resp stays nil.
func WithHeaders(resp handler.Response, headers map[string]string) handler.Response {
	if resp == nil || len(headers) == 0 {
		return resp
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		h := w.Header()
		for k, v := range headers {
			h.Set(k, v)
		}
		return resp(w, r)
	}
}

// NoStore marks resp as uncacheable. Every security outcome carries it since
// it reflects per-session state.
func NoStore(resp handler.Response) handler.Response {
	return WithHeaders(resp, noStoreHeaders)
}
