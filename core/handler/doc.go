// Package handler defines the request context every security component works
// against, plus the render function type used to produce HTTP responses.
//
// Security logic never touches *http.Request directly. It reads parameters,
// headers and cookies, keeps request-scoped attributes, and queues response
// cookies and headers through the Context interface. HTTPContext is the
// net/http implementation:
//
//	ctx := handler.NewHTTPContext(w, r)
//	token, ok := ctx.Header("Authorization")
//	ctx.SetAttribute("requestScoped", value)
//	ctx.SetCookie(&http.Cookie{Name: "sid", Value: id})
//
// # Cookie Jar
//
// Cookies queued with SetCookie are visible to later Cookie and Cookies calls
// on the same context, before the response reaches the client. A cookie
// queued with a negative MaxAge reads as absent. This lets several store
// operations within one request observe each other's writes.
//
// # Responses
//
// Response renders an HTTP response and reports rendering errors:
//
//	type Response func(w http.ResponseWriter, r *http.Request) error
//
// ErrorHandler turns errors returned by a Response, or configuration errors
// raised while handling a request, into an HTTP reply.
package handler
