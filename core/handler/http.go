package handler

import (
	"net/http"
	"slices"
	"strings"
	"time"
)

// HTTPContext implements Context on top of net/http.
// It is bound to a single request and must not be shared across goroutines.
type HTTPContext struct {
	w       http.ResponseWriter
	r       *http.Request
	attrs   map[string]any
	pending map[string]*http.Cookie
	order   []string
	parsed  bool
}

// NewHTTPContext wraps a response writer and request.
func NewHTTPContext(w http.ResponseWriter, r *http.Request) *HTTPContext {
	return &HTTPContext{
		w:       w,
		r:       r,
		attrs:   make(map[string]any),
		pending: make(map[string]*http.Cookie),
	}
}

// Request returns the underlying request.
func (c *HTTPContext) Request() *http.Request {
	return c.r
}

// ResponseWriter returns the underlying response writer.
func (c *HTTPContext) ResponseWriter() http.ResponseWriter {
	return c.w
}

// Deadline returns the time when work done on behalf of this context should be canceled.
func (c *HTTPContext) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

// Done returns a channel that's closed when work done on behalf of this context should be canceled.
func (c *HTTPContext) Done() <-chan struct{} {
	return c.r.Context().Done()
}

// Err returns a non-nil error value after Done is closed.
func (c *HTTPContext) Err() error {
	return c.r.Context().Err()
}

// Value returns the value associated with this context for key.
func (c *HTTPContext) Value(key any) any {
	return c.r.Context().Value(key)
}

// Method returns the HTTP method.
func (c *HTTPContext) Method() string {
	return c.r.Method
}

// Path returns the request path.
func (c *HTTPContext) Path() string {
	return c.r.URL.Path
}

// FullURL reconstructs the absolute request URL, honoring X-Forwarded-Proto.
func (c *HTTPContext) FullURL() string {
	scheme := "http"
	if c.r.TLS != nil {
		scheme = "https"
	}
	if proto := c.r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	return scheme + "://" + c.r.Host + c.r.URL.RequestURI()
}

// Param returns a query or form parameter.
func (c *HTTPContext) Param(name string) (string, bool) {
	if !c.parsed {
		// Malformed bodies leave r.Form with whatever parsed cleanly.
		_ = c.r.ParseForm()
		c.parsed = true
	}
	values, ok := c.r.Form[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Header returns a request header.
func (c *HTTPContext) Header(name string) (string, bool) {
	values := c.r.Header.Values(name)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Cookie returns a cookie value.
func (c *HTTPContext) Cookie(name string) (string, bool) {
	if pc, ok := c.pending[name]; ok {
		if pc.MaxAge < 0 {
			return "", false
		}
		return pc.Value, true
	}
	rc, err := c.r.Cookie(name)
	if err != nil {
		return "", false
	}
	return rc.Value, true
}

// Cookies returns request cookies overlaid with queued response cookies.
func (c *HTTPContext) Cookies() []*http.Cookie {
	out := make([]*http.Cookie, 0, len(c.r.Cookies())+len(c.pending))
	for _, rc := range c.r.Cookies() {
		if _, ok := c.pending[rc.Name]; ok {
			continue
		}
		out = append(out, rc)
	}
	for _, name := range c.order {
		if pc := c.pending[name]; pc.MaxAge >= 0 {
			out = append(out, pc)
		}
	}
	return out
}

// Attribute returns a request-scoped attribute.
func (c *HTTPContext) Attribute(key string) (any, bool) {
	v, ok := c.attrs[key]
	return v, ok
}

// SetAttribute stores a request-scoped attribute.
func (c *HTTPContext) SetAttribute(key string, val any) {
	c.attrs[key] = val
}

// RemoveAttribute deletes a request-scoped attribute.
func (c *HTTPContext) RemoveAttribute(key string) {
	delete(c.attrs, key)
}

// SetCookie queues a response cookie, replacing any cookie with the same
// name queued earlier in this request.
func (c *HTTPContext) SetCookie(cookie *http.Cookie) {
	if _, ok := c.pending[cookie.Name]; ok {
		c.dropSetCookie(cookie.Name)
	} else {
		c.order = append(c.order, cookie.Name)
	}
	c.pending[cookie.Name] = cookie
	http.SetCookie(c.w, cookie)
}

// SetHeader sets a response header.
func (c *HTTPContext) SetHeader(name, value string) {
	c.w.Header().Set(name, value)
}

func (c *HTTPContext) dropSetCookie(name string) {
	h := c.w.Header()
	prefix := name + "="
	h["Set-Cookie"] = slices.DeleteFunc(h["Set-Cookie"], func(line string) bool {
		return strings.HasPrefix(line, prefix)
	})
}
