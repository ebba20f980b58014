package cookie

import "net/http"

// Options holds the attributes shared by every cookie a store writes.
type Options struct {
	Path     string
	Domain   string
	MaxAge   int
	Secure   bool
	HttpOnly bool
	SameSite http.SameSite
}

// Option overrides one attribute for a single cookie.
type Option func(*Options)

func WithPath(path string) Option         { return func(o *Options) { o.Path = path } }
func WithDomain(domain string) Option     { return func(o *Options) { o.Domain = domain } }
func WithSecure(secure bool) Option       { return func(o *Options) { o.Secure = secure } }
func WithHTTPOnly(httpOnly bool) Option   { return func(o *Options) { o.HttpOnly = httpOnly } }
func WithSameSite(s http.SameSite) Option { return func(o *Options) { o.SameSite = s } }

// WithMaxAge sets max-age in seconds. Negative deletes the cookie, zero makes
// it a browser-session cookie.
func WithMaxAge(seconds int) Option { return func(o *Options) { o.MaxAge = seconds } }

// Apply returns base with opts applied; base is not modified.
func Apply(base Options, opts ...Option) Options {
	for _, opt := range opts {
		opt(&base)
	}
	return base
}
