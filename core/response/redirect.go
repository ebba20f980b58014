package response

import (
	"net/http"

	"github.com/dmitrymomot/gatekeeper/core/handler"
)

const (
	// HeaderHXRequest is sent by HTMX with every request it issues.
	HeaderHXRequest = "HX-Request"
	// HeaderHXLocation tells HTMX to navigate to a URL.
	HeaderHXLocation = "HX-Location"
)

// Redirect creates a 302 Found response.
func Redirect(url string) handler.Response {
	return RedirectWithStatus(url, http.StatusFound)
}

// RedirectSeeOther creates a 303 See Other response, used after a POST.
func RedirectSeeOther(url string) handler.Response {
	return RedirectWithStatus(url, http.StatusSeeOther)
}

// RedirectWithStatus creates a redirect with a custom status code.
// Non-3xx codes fall back to 302. HTMX requests get 200 with HX-Location.
func RedirectWithStatus(url string, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if r.Header.Get(HeaderHXRequest) == "true" {
			w.Header().Set(HeaderHXLocation, url)
			w.WriteHeader(http.StatusOK)
			return nil
		}

		if status < 300 || status >= 400 {
			status = http.StatusFound
		}
		http.Redirect(w, r, url, status)
		return nil
	}
}
