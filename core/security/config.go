package security

import (
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/gatekeeper/core/authz"
	"github.com/dmitrymomot/gatekeeper/core/client"
	"github.com/dmitrymomot/gatekeeper/core/logger"
	"github.com/dmitrymomot/gatekeeper/core/sessionstore"
)

// DefaultLogoutURLPattern accepts relative paths only, so logout cannot be
// used as an open redirect. The character after the leading slash must be
// printable and neither kind of slash.
const DefaultLogoutURLPattern = `^/([^/\\\x00-\x20\x7f]|$)`

// Config holds the collaborators shared by the security, callback and logout
// logics. It is read-only after construction and safe to share.
type Config struct {
	Clients     *client.Registry
	Authorizers *authz.Registry
	// Store persists profiles between requests. It may be nil when only
	// direct clients are used without SaveProfileInSession.
	Store sessionstore.Store
	// MultiProfile keeps one profile per client instead of a single one.
	MultiProfile bool
	// SaveProfileInSession stores profiles authenticated by direct clients.
	SaveProfileInSession bool
}

// Settings is the environment-driven part of the configuration.
type Settings struct {
	MultiProfile         bool   `env:"SECURITY_MULTI_PROFILE" envDefault:"false"`
	SaveProfileInSession bool   `env:"SECURITY_SAVE_PROFILE_IN_SESSION" envDefault:"false"`
	CallbackURL          string `env:"SECURITY_CALLBACK_URL" envDefault:"/callback"`
	DefaultURL           string `env:"SECURITY_DEFAULT_URL" envDefault:"/"`
	LogoutURLPattern     string `env:"SECURITY_LOGOUT_URL_PATTERN" envDefault:"^/([^/\\\\\\x00-\\x20\\x7f]|$)"`
	RenewSession         bool   `env:"SECURITY_RENEW_SESSION" envDefault:"true"`
	DestroySession       bool   `env:"SECURITY_DESTROY_SESSION" envDefault:"true"`
}

// DefaultSettings mirrors the envDefault tags.
func DefaultSettings() Settings {
	return Settings{
		CallbackURL:      "/callback",
		DefaultURL:       "/",
		LogoutURLPattern: DefaultLogoutURLPattern,
		RenewSession:     true,
		DestroySession:   true,
	}
}

func (c Config) validate() (Config, error) {
	if c.Clients == nil {
		return c, fmt.Errorf("%w: client registry", ErrMissingConfig)
	}
	if c.Authorizers == nil {
		reg, err := authz.NewRegistry()
		if err != nil {
			return c, err
		}
		c.Authorizers = reg
	}
	return c, nil
}

func (c Config) requireStore() error {
	if c.Store == nil {
		return fmt.Errorf("%w: session store", ErrMissingConfig)
	}
	return nil
}

type options struct {
	logger   *slog.Logger
	observer Observer
}

// Option configures a logic.
type Option func(*options)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver sets the decision observer.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: logger.Discard(), observer: noopObserver{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func pick(override *bool, def bool) bool {
	if override != nil {
		return *override
	}
	return def
}

// Bool returns a pointer to v, for the optional flags of Params.
func Bool(v bool) *bool {
	return &v
}
