package response

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/gatekeeper/core/handler"
)

// JSONWithStatus encodes v as the response body. Status 0 becomes 200, or 204
// when v is nil. Bodiless statuses skip encoding entirely.
func JSONWithStatus(v any, status int) handler.Response {
	return func(w http.ResponseWriter, _ *http.Request) error {
		if status == 0 {
			status = http.StatusOK
			if v == nil {
				status = http.StatusNoContent
			}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		if status == http.StatusNoContent || status == http.StatusNotModified {
			return nil
		}
		return json.NewEncoder(w).Encode(v)
	}
}
