package sessionstore

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/gatekeeper/core/cookie"
	"github.com/dmitrymomot/gatekeeper/core/logger"
)

const (
	// DefaultCookieName is the session identifier cookie used by CacheStore.
	DefaultCookieName = "GATEKEEPERSESSIONID"
	// DefaultCachePrefix prefixes CacheStore keys.
	DefaultCachePrefix = "gatekeeper"
	// DefaultCookiePrefix prefixes CookieStore cookie names.
	DefaultCookiePrefix = "gk_"
	// DefaultTTL is the CacheStore record lifetime.
	DefaultTTL = 30 * time.Minute
)

type options struct {
	prefix     string
	cookieName string
	ttl        time.Duration
	maxSize    int
	cookie     cookie.Options
	logger     *slog.Logger
}

func defaultOptions(prefix string) options {
	return options{
		prefix:     prefix,
		cookieName: DefaultCookieName,
		ttl:        DefaultTTL,
		maxSize:    cookie.MaxCookieSize,
		cookie:     cookie.DefaultConfig().Options(),
		logger:     logger.Discard(),
	}
}

// Option configures a store.
type Option func(*options)

// WithPrefix sets the cache key prefix (CacheStore) or cookie name prefix (CookieStore).
func WithPrefix(prefix string) Option {
	return func(o *options) {
		if prefix != "" {
			o.prefix = prefix
		}
	}
}

// WithCookieName sets the CacheStore session identifier cookie name.
func WithCookieName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.cookieName = name
		}
	}
}

// WithTTL sets the CacheStore record lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

// WithMaxSize sets the CookieStore per-cookie size ceiling.
func WithMaxSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.maxSize = size
		}
	}
}

// WithCookieOptions sets the attributes of cookies written by the store.
func WithCookieOptions(opts cookie.Options) Option {
	return func(o *options) {
		o.cookie = opts
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
