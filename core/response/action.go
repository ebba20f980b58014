package response

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/gatekeeper/core/action"
	"github.com/dmitrymomot/gatekeeper/core/handler"
)

// FromAction renders a security outcome. A zero action renders nothing and
// returns nil, leaving the response to the next handler.
func FromAction(a action.Action) handler.Response {
	if a.IsZero() {
		return nil
	}

	var resp handler.Response
	switch {
	case a.IsRedirect():
		resp = RedirectWithStatus(a.Location, a.Status)
	case a.IsContent():
		resp = BytesWithStatus([]byte(a.Content), a.ContentType, a.Status)
	case a.Status >= http.StatusBadRequest:
		resp = denial(a.Status)
	default:
		resp = Status(a.Status)
	}

	return NoStore(WithHeaders(resp, a.Headers))
}

func denial(status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		httpErr := ErrorForStatus(status)
		if wantsJSON(r) {
			return JSONWithStatus(httpErr, status)(w, r)
		}
		return StringWithStatus(httpErr.Message, status)(w, r)
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
