package simple

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/gatekeeper/core/authz"
	"github.com/dmitrymomot/gatekeeper/core/cache"
	"github.com/dmitrymomot/gatekeeper/core/client"
	"github.com/dmitrymomot/gatekeeper/core/client/basic"
	"github.com/dmitrymomot/gatekeeper/core/client/bearer"
	"github.com/dmitrymomot/gatekeeper/core/client/form"
	"github.com/dmitrymomot/gatekeeper/core/config"
	"github.com/dmitrymomot/gatekeeper/core/encrypter"
	"github.com/dmitrymomot/gatekeeper/core/logger"
	"github.com/dmitrymomot/gatekeeper/core/security"
	"github.com/dmitrymomot/gatekeeper/core/serializer"
	"github.com/dmitrymomot/gatekeeper/core/server"
	"github.com/dmitrymomot/gatekeeper/core/sessionstore"
	"github.com/dmitrymomot/gatekeeper/integration/database/redis"
	"github.com/dmitrymomot/gatekeeper/integration/metrics/prometheus"
)

// AuthorizerAdmin names the rule guarding /admin.
const AuthorizerAdmin = "admin"

type App struct {
	config   *Config
	logger   *slog.Logger
	users    map[string]basic.User
	metrics  *prom.Registry
	redis    *goredis.Client
	store    sessionstore.Store
	bearer   *bearer.Client
	clients  *client.Registry
	logic    *security.Logic
	callback *security.CallbackLogic
	logout   *security.LogoutLogic
	server   *server.Server
	handler  http.Handler
}

type AppOption func(*App) error

// NewApp wires the application. Without WithConfig the configuration is read
// from the environment.
func NewApp(ctx context.Context, opts ...AppOption) (*App, error) {
	app := &App{}
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.config == nil {
		var cfg Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		app.config = &cfg
	}
	if app.logger == nil {
		lopts := []logger.Option{logger.WithLevel(logger.ParseLevel(app.config.LogLevel))}
		if app.config.Env == "production" {
			lopts = append(lopts, logger.WithJSONFormatter())
		}
		app.logger = logger.New(lopts...)
	}
	if app.metrics == nil {
		app.metrics = prom.NewRegistry()
	}

	if err := app.buildStore(ctx); err != nil {
		return nil, err
	}
	if err := app.buildSecurity(); err != nil {
		app.Close()
		return nil, err
	}
	app.handler = app.routes()

	s, err := server.NewFromConfig(app.config.Server, server.WithLogger(app.logger))
	if err != nil {
		app.Close()
		return nil, err
	}
	app.server = s
	return app, nil
}

func WithConfig(cfg Config) AppOption {
	return func(app *App) error {
		app.config = &cfg
		return nil
	}
}

func WithLogger(l *slog.Logger) AppOption {
	return func(app *App) error {
		if l == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = l
		return nil
	}
}

// WithUsers replaces the configured admin account with users.
func WithUsers(users map[string]basic.User) AppOption {
	return func(app *App) error {
		if len(users) == 0 {
			return errors.New("users cannot be empty")
		}
		app.users = users
		return nil
	}
}

func WithMetricsRegistry(reg *prom.Registry) AppOption {
	return func(app *App) error {
		if reg == nil {
			return errors.New("metrics registry cannot be nil")
		}
		app.metrics = reg
		return nil
	}
}

func (app *App) buildStore(ctx context.Context) error {
	cfg := app.config

	enc, err := encrypter.NewFromSecret(cfg.SessionSecret, []byte(cfg.AppName+" session"))
	if err != nil {
		return err
	}
	z, err := serializer.NewZstd(0)
	if err != nil {
		return err
	}
	codec := serializer.NewCodec(serializer.New(), z, enc)

	opts := []sessionstore.Option{
		sessionstore.WithCookieOptions(cfg.Cookie.Options()),
		sessionstore.WithLogger(app.logger),
	}
	if cfg.SessionTTL > 0 {
		opts = append(opts, sessionstore.WithTTL(cfg.SessionTTL))
	}
	if cfg.Cookie.MaxSize > 0 {
		opts = append(opts, sessionstore.WithMaxSize(cfg.Cookie.MaxSize))
	}

	switch cfg.SessionBackend {
	case BackendMemory, "":
		app.store, err = sessionstore.NewCacheStore(cache.NewMemoryStore(max(cfg.SessionCapacity, 1)), codec, opts...)
	case BackendRedis:
		app.redis, err = redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		app.store, err = sessionstore.NewCacheStore(redis.NewStore(app.redis), codec, opts...)
	case BackendCookie:
		app.store, err = sessionstore.NewCookieStore(codec, opts...)
	default:
		return fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
	return err
}

func (app *App) buildSecurity() error {
	cfg := app.config

	users := app.users
	if users == nil {
		users = map[string]basic.User{}
		if cfg.AdminPasswordHash != "" {
			users[cfg.AdminUsername] = basic.User{
				PasswordHash: []byte(cfg.AdminPasswordHash),
				Roles:        []string{AuthorizerAdmin},
			}
		}
	}
	auth := basic.NewStaticAuthenticator(users)

	bc, err := bearer.New(cfg.Bearer)
	if err != nil {
		return err
	}
	app.bearer = bc

	fc := form.New(cfg.Form, auth)
	clients, err := client.NewRegistry(
		client.WithClients(fc, bc, basic.New(auth)),
		client.WithDefaultClients(fc.Name()),
		client.WithCallbackURL(cfg.Security.CallbackURL),
	)
	if err != nil {
		return err
	}
	app.clients = clients

	authorizers, err := authz.NewRegistry(
		authz.WithAuthorizer(AuthorizerAdmin, authz.RequireAnyRole(AuthorizerAdmin)),
	)
	if err != nil {
		return err
	}

	observer, err := prometheus.NewFromConfig(app.metrics, cfg.Metrics)
	if err != nil {
		return err
	}

	secCfg := security.Config{
		Clients:              clients,
		Authorizers:          authorizers,
		Store:                app.store,
		MultiProfile:         cfg.Security.MultiProfile,
		SaveProfileInSession: cfg.Security.SaveProfileInSession,
	}
	opts := []security.Option{security.WithLogger(app.logger), security.WithObserver(observer)}

	if app.logic, err = security.New(secCfg, opts...); err != nil {
		return err
	}
	if app.callback, err = security.NewCallback(secCfg, opts...); err != nil {
		return err
	}
	if app.logout, err = security.NewLogout(secCfg, opts...); err != nil {
		return err
	}
	return nil
}

// Handler returns the root handler.
func (app *App) Handler() http.Handler {
	return app.handler
}

// Run serves until ctx is canceled.
func (app *App) Run(ctx context.Context) error {
	defer app.Close()
	return app.server.Run(ctx, app.handler)
}

// Close releases backend connections.
func (app *App) Close() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Warn("failed to close redis", logger.Error(err))
		}
		app.redis = nil
	}
}

func (app *App) checks() []func(context.Context) error {
	if app.redis == nil {
		return nil
	}
	return []func(context.Context) error{redis.Healthcheck(app.redis)}
}

func (app *App) metricsHandler() http.Handler {
	return promhttp.HandlerFor(app.metrics, promhttp.HandlerOpts{})
}
