package handler

import (
	"context"
	"net/http"
)

// Context defines the contract for request contexts used by security logic.
type Context interface {
	context.Context

	// Method returns the HTTP method.
	Method() string
	// Path returns the request path.
	Path() string
	// FullURL returns the absolute URL the client requested.
	FullURL() string
	// Param returns a query or form parameter.
	Param(name string) (string, bool)
	// Header returns a request header.
	Header(name string) (string, bool)
	// Cookie returns a cookie value, taking queued response cookies into account.
	Cookie(name string) (string, bool)
	// Cookies returns all visible cookies, taking queued response cookies into account.
	Cookies() []*http.Cookie

	// Attribute returns a request-scoped attribute.
	Attribute(key string) (any, bool)
	// SetAttribute stores a request-scoped attribute.
	SetAttribute(key string, val any)
	// RemoveAttribute deletes a request-scoped attribute.
	RemoveAttribute(key string)

	// SetCookie queues a response cookie.
	SetCookie(c *http.Cookie)
	// SetHeader sets a response header.
	SetHeader(name, value string)
}
