package sessionstore

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrymomot/gatekeeper/core/cookie"
	"github.com/dmitrymomot/gatekeeper/core/handler"
	"github.com/dmitrymomot/gatekeeper/core/logger"
	"github.com/dmitrymomot/gatekeeper/core/serializer"
)

// CookieSessionID is the identifier reported by CookieStore. Cookie sessions
// have a single slot per client, so there is nothing to identify.
const CookieSessionID = "cookie-session"

// CookieStore keeps the session record in client cookies, one cookie named
// <prefix><key> per record key.
type CookieStore struct {
	codec *serializer.Codec
	opts  options
}

var _ Store = (*CookieStore)(nil)

// NewCookieStore creates a cookie-backed store. The codec should carry an
// encrypter; without one, session contents are readable by the client.
func NewCookieStore(codec *serializer.Codec, opts ...Option) (*CookieStore, error) {
	if codec == nil {
		return nil, ErrMissingCodec
	}

	o := defaultOptions(DefaultCookiePrefix)
	for _, opt := range opts {
		opt(&o)
	}

	return &CookieStore{codec: codec, opts: o}, nil
}

// SessionID always returns CookieSessionID.
func (s *CookieStore) SessionID(handler.Context, bool) (string, bool, error) {
	return CookieSessionID, true, nil
}

// Get decodes the cookie for key. Cookies that fail to decode read as absent.
func (s *CookieStore) Get(ctx handler.Context, key string) (any, bool) {
	raw, ok := ctx.Cookie(s.cookieName(key))
	if !ok || raw == "" {
		return nil, false
	}

	v, err := s.decode(raw)
	if err != nil {
		s.opts.logger.DebugContext(ctx, "ignoring unreadable session cookie",
			logger.Key(key),
			logger.Error(err),
		)
		return nil, false
	}
	if v == nil {
		return nil, false
	}
	return v, true
}

// Set writes value to the cookie for key. A nil value expires the cookie.
// Values whose cookie would exceed the size limit are not written.
func (s *CookieStore) Set(ctx handler.Context, key string, value any) error {
	name := s.cookieName(key)
	if value == nil {
		if _, ok := ctx.Cookie(name); ok {
			ctx.SetCookie(cookie.Expired(name, s.opts.cookie))
		}
		return nil
	}

	c, err := s.build(name, stripSensitive(value))
	if err != nil {
		return err
	}

	if size := cookie.Size(c); size > s.opts.maxSize {
		s.opts.logger.WarnContext(ctx, "session value too large for cookie",
			logger.Key(key),
			logger.Size(size),
		)
		return LimitError{Key: key, Size: size, Max: s.opts.maxSize}
	}

	ctx.SetCookie(c)
	return nil
}

// Destroy expires every cookie carrying the store prefix.
func (s *CookieStore) Destroy(ctx handler.Context) (bool, error) {
	destroyed := false
	for _, c := range s.owned(ctx) {
		ctx.SetCookie(cookie.Expired(c.Name, s.opts.cookie))
		destroyed = true
	}
	return destroyed, nil
}

// Renew re-encrypts every session cookie, refreshing its attributes.
// Unreadable cookies are expired. It reports whether any value was carried over.
func (s *CookieStore) Renew(ctx handler.Context) (bool, error) {
	renewed := false
	for _, c := range s.owned(ctx) {
		v, err := s.decode(c.Value)
		if err != nil || v == nil {
			ctx.SetCookie(cookie.Expired(c.Name, s.opts.cookie))
			continue
		}

		fresh, err := s.build(c.Name, v)
		if err != nil {
			return renewed, err
		}
		ctx.SetCookie(fresh)
		renewed = true
	}
	return renewed, nil
}

func (s *CookieStore) cookieName(key string) string {
	return s.opts.prefix + key
}

func (s *CookieStore) owned(ctx handler.Context) []*http.Cookie {
	var out []*http.Cookie
	for _, c := range ctx.Cookies() {
		if strings.HasPrefix(c.Name, s.opts.prefix) {
			out = append(out, c)
		}
	}
	return out
}

func (s *CookieStore) build(name string, value any) (*http.Cookie, error) {
	data, err := s.codec.Encode(value)
	if err != nil {
		return nil, fmt.Errorf("encode session cookie %q: %w", name, err)
	}
	return cookie.Build(name, base64.RawURLEncoding.EncodeToString(data), s.opts.cookie), nil
}

func (s *CookieStore) decode(raw string) (any, error) {
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", serializer.ErrCorrupt, err)
	}
	return s.codec.Decode(data)
}
