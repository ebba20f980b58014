// Package action describes the HTTP outcome of a security decision without
// rendering it.
//
// Security logic and clients return an Action; an adapter turns it into a
// response (see core/response.FromAction). Keeping the two apart lets the
// decision code run without an http.ResponseWriter.
//
//	a := action.Found("https://idp.example.com/login?callback=...")
//	a.IsRedirect()   // true
//	a.Status         // 302
//
//	action.Unauthorized().WithHeader("WWW-Authenticate", `Basic realm="api"`)
//	action.Content("<form>...</form>") // login page rendered in place
package action
