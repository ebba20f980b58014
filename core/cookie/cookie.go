package cookie

import (
	"net/http"
	"time"
)

// MaxCookieSize is the maximum size for a cookie (4KB).
const MaxCookieSize = 4096

// Build creates a cookie from defaults with opts applied.
func Build(name, value string, defaults Options, opts ...Option) *http.Cookie {
	o := Apply(defaults, opts...)
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     o.Path,
		Domain:   o.Domain,
		MaxAge:   o.MaxAge,
		Secure:   o.Secure,
		HttpOnly: o.HttpOnly,
		SameSite: o.SameSite,
	}
}

// Expired creates a cookie that deletes name on the client.
func Expired(name string, defaults Options) *http.Cookie {
	c := Build(name, "", defaults, WithMaxAge(-1))
	c.Expires = time.Unix(0, 0)
	return c
}

// Size returns the length of the Set-Cookie header value for c.
func Size(c *http.Cookie) int {
	return len(c.String())
}

// Validate reports whether c can be written.
func Validate(c *http.Cookie) error {
	if c.Name == "" {
		return ErrEmptyName
	}
	return c.Valid()
}
