package action

import (
	"maps"
	"net/http"
)

// Action is an HTTP outcome: a status code with an optional redirect target
// or body.
type Action struct {
	Status      int
	Location    string
	Content     string
	ContentType string
	Headers     map[string]string
}

// OK is a plain 200 response.
func OK() Action {
	return Action{Status: http.StatusOK}
}

// NoContent is a 204 response.
func NoContent() Action {
	return Action{Status: http.StatusNoContent}
}

// BadRequest is a 400 response.
func BadRequest() Action {
	return Action{Status: http.StatusBadRequest}
}

// Unauthorized is a 401 response.
func Unauthorized() Action {
	return Action{Status: http.StatusUnauthorized}
}

// Forbidden is a 403 response.
func Forbidden() Action {
	return Action{Status: http.StatusForbidden}
}

// Found is a 302 redirect.
func Found(location string) Action {
	return Action{Status: http.StatusFound, Location: location}
}

// SeeOther is a 303 redirect, used after form posts.
func SeeOther(location string) Action {
	return Action{Status: http.StatusSeeOther, Location: location}
}

// Content is a 200 HTML page rendered in place of a redirect.
func Content(html string) Action {
	return Action{Status: http.StatusOK, Content: html, ContentType: "text/html; charset=utf-8"}
}

// Status is an empty response with the given code.
func Status(code int) Action {
	return Action{Status: code}
}

// WithHeader returns a copy of a with an extra response header.
func (a Action) WithHeader(name, value string) Action {
	h := maps.Clone(a.Headers)
	if h == nil {
		h = make(map[string]string, 1)
	}
	h[name] = value
	a.Headers = h
	return a
}

// IsZero reports whether a carries no outcome.
func (a Action) IsZero() bool {
	return a.Status == 0
}

// IsRedirect reports whether a is a 3xx with a target.
func (a Action) IsRedirect() bool {
	return a.Status >= 300 && a.Status < 400 && a.Location != ""
}

// IsContent reports whether a carries a body to render.
func (a Action) IsContent() bool {
	return a.Content != ""
}

// String returns the status text, with the redirect target when present.
func (a Action) String() string {
	text := http.StatusText(a.Status)
	if a.IsRedirect() {
		return text + " -> " + a.Location
	}
	return text
}
