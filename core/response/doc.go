// Package response renders HTTP responses for security outcomes.
//
// Every helper returns a handler.Response, a function that writes headers,
// status and body. FromAction is the adapter between security decisions and
// net/http: it turns an action.Action into a Response.
//
//	resp := response.FromAction(result.Action)
//	response.Render(w, r, resp)
//
// # Errors
//
// HTTPError carries a status, a machine-readable code and a message.
// ErrorHandler writes errors as plain text and JSONErrorHandler as JSON. Both
// accept any error: an HTTPError is used as is, an error with a StatusCode()
// method picks the matching HTTPError, anything else becomes a 500.
//
// Denials rendered by FromAction follow the request's Accept header: JSON
// clients get an HTTPError body, others plain text.
//
// # Redirects
//
// Redirects for HTMX requests (HX-Request: true) are sent as 200 with an
// HX-Location header so the client navigates instead of swapping the login
// page into the current view.
//
// # Caching
//
// Responses built by FromAction carry no-store cache headers. Authentication
// outcomes depend on per-user state and must not be cached by proxies.
package response
