package security

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/gatekeeper/core/action"
	"github.com/dmitrymomot/gatekeeper/core/authz"
	"github.com/dmitrymomot/gatekeeper/core/client"
	"github.com/dmitrymomot/gatekeeper/core/handler"
	"github.com/dmitrymomot/gatekeeper/core/logger"
	"github.com/dmitrymomot/gatekeeper/core/profile"
	"github.com/dmitrymomot/gatekeeper/core/sessionstore"
)

// Params are the per-route inputs of Logic.Perform.
type Params struct {
	// Clients is a comma-separated list of client names. Empty means the
	// registry defaults.
	Clients string
	// Authorizers is a comma-separated list of rule names. Empty means
	// isAuthenticated.
	Authorizers string
	// Matchers can exempt requests from security.
	Matchers []Matcher
	// MultiProfile overrides Config.MultiProfile.
	MultiProfile *bool
	// SaveProfileInSession overrides Config.SaveProfileInSession.
	SaveProfileInSession *bool
}

// Logic decides whether a request may reach a protected resource.
type Logic struct {
	cfg      Config
	finder   *client.Finder
	checker  *authz.Checker
	logger   *slog.Logger
	observer Observer
}

// New creates the security logic.
func New(cfg Config, opts ...Option) (*Logic, error) {
	cfg, err := cfg.validate()
	if err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	log := o.logger.With(logger.Component("security"))

	return &Logic{
		cfg:      cfg,
		finder:   client.NewFinder(cfg.Clients, client.WithFinderLogger(log)),
		checker:  authz.NewChecker(cfg.Authorizers),
		logger:   log,
		observer: o.observer,
	}, nil
}

// Config returns the shared configuration.
func (l *Logic) Config() Config {
	return l.cfg
}

// Perform runs the decision for ctx. The returned error is always a
// configuration error; per-request failures are expressed through the
// Result state and action.
func (l *Logic) Perform(ctx handler.Context, params Params) (Result, error) {
	start := time.Now()

	for _, m := range params.Matchers {
		if !m.Matches(ctx) {
			l.logger.DebugContext(ctx, "security skipped", logger.Path(ctx.Path()))
			return l.finish(ctx, start, Result{State: StateGrant}, nil), nil
		}
	}

	clients, err := l.finder.Find(ctx, params.Clients)
	if err != nil {
		return Result{}, err
	}
	rules, err := l.checker.Resolve(params.Authorizers)
	if err != nil {
		return Result{}, err
	}

	multi := pick(params.MultiProfile, l.cfg.MultiProfile)
	saveInSession := pick(params.SaveProfileInSession, l.cfg.SaveProfileInSession)
	direct, indirect, err := split(clients)
	if err != nil {
		return Result{}, err
	}
	readSession := len(indirect) > 0 || saveInSession
	if readSession {
		if err := l.cfg.requireStore(); err != nil {
			return Result{}, err
		}
	}

	pm := NewProfileManager(ctx, l.cfg.Store)
	profiles := pm.Profiles(readSession)
	authenticatedBy := ""

	if profiles.Len() == 0 && len(direct) > 0 {
		for _, c := range direct {
			res := c.Authenticate(ctx)

			if p, ok := res.Profile(); ok {
				if err := pm.Save(saveInSession, p, multi); err != nil {
					l.logger.WarnContext(ctx, "failed to save profile in session",
						logger.Client(c.Name()),
						logger.Error(err),
					)
				}
				profiles = pm.Profiles(false)
				authenticatedBy = c.Name()
				l.logger.DebugContext(ctx, "authenticated",
					logger.Client(c.Name()),
					logger.ProfileID(p.ID),
				)
				break
			}

			if a, ok := res.Action(); ok {
				return l.finish(ctx, start, Result{State: stateOf(a), Action: a, Client: c.Name()}, nil), nil
			}

			if err := res.Err(); !client.IsCredentialError(err) {
				l.logger.ErrorContext(ctx, "client failed",
					logger.Client(c.Name()),
					logger.Error(err),
				)
				return l.finish(ctx, start, Result{
					State:  StateUnauthorized,
					Action: action.Unauthorized(),
					Client: c.Name(),
				}, err), nil
			}
			l.logger.DebugContext(ctx, "no valid credentials",
				logger.Client(c.Name()),
				logger.Error(res.Err()),
			)
		}
	}

	if profiles.Len() > 0 {
		list := profiles.Values()
		if authenticatedBy == "" {
			authenticatedBy = list[0].ClientName
		}
		ok, err := authz.AllOf(rules...).IsAuthorized(ctx, list)
		if err != nil {
			l.logger.ErrorContext(ctx, "authorizer failed", logger.Error(err))
		}
		if err != nil || !ok {
			return l.finish(ctx, start, Result{
				State:    StateForbidden,
				Action:   action.Forbidden(),
				Profiles: list,
				Client:   authenticatedBy,
			}, err), nil
		}
		return l.finish(ctx, start, Result{State: StateGrant, Profiles: list, Client: authenticatedBy}, nil), nil
	}

	if len(indirect) > 0 {
		return l.redirect(ctx, start, indirect[0]), nil
	}

	return l.finish(ctx, start, Result{State: StateUnauthorized, Action: challenge(direct)}, nil), nil
}

// redirect starts the login flow of c, remembering the requested URL.
// Scripts get a 401 since they cannot follow the login page.
func (l *Logic) redirect(ctx handler.Context, start time.Time, c client.Indirect) Result {
	if isAJAX(ctx) {
		return l.finish(ctx, start, Result{State: StateUnauthorized, Action: action.Unauthorized(), Client: c.Name()}, nil)
	}

	if err := l.cfg.Store.Set(ctx, sessionstore.RequestedURLKey, ctx.FullURL()); err != nil {
		l.logger.WarnContext(ctx, "failed to save requested URL", logger.Error(err))
	}

	a, err := c.Redirect(ctx, l.cfg.Clients.CallbackURL(c.Name()))
	if err != nil {
		l.logger.ErrorContext(ctx, "client failed to build redirect",
			logger.Client(c.Name()),
			logger.Error(err),
		)
		return l.finish(ctx, start, Result{State: StateUnauthorized, Action: action.Unauthorized(), Client: c.Name()}, err)
	}
	return l.finish(ctx, start, Result{State: StateRedirect, Action: a, Client: c.Name()}, nil)
}

func (l *Logic) finish(ctx handler.Context, start time.Time, r Result, err error) Result {
	l.observer.Observe(ctx, Decision{
		Flow:     FlowSecurity,
		State:    r.State,
		Client:   r.Client,
		Duration: time.Since(start),
		Err:      err,
	})
	l.logger.DebugContext(ctx, "security decision",
		logger.State(string(r.State)),
		logger.Client(r.Client),
		logger.Method(ctx.Method()),
		logger.Path(ctx.Path()),
	)
	return r
}

// split separates clients by kind. A client whose kind does not match the
// interface it implements is a configuration error.
func split(clients []client.Client) ([]client.Direct, []client.Indirect, error) {
	var (
		direct   []client.Direct
		indirect []client.Indirect
	)
	for _, c := range clients {
		switch c.Kind() {
		case client.KindDirect:
			d, ok := c.(client.Direct)
			if !ok {
				return nil, nil, fmt.Errorf("%w: client %s cannot authenticate directly", ErrMissingConfig, c.Name())
			}
			direct = append(direct, d)
		case client.KindIndirect:
			i, ok := c.(client.Indirect)
			if !ok {
				return nil, nil, fmt.Errorf("%w: client %s cannot redirect", ErrMissingConfig, c.Name())
			}
			indirect = append(indirect, i)
		default:
			return nil, nil, fmt.Errorf("%w: client %s has unknown kind", ErrMissingConfig, c.Name())
		}
	}
	return direct, indirect, nil
}

// challenge builds a 401 advertising the scheme of the first direct client
// that has one.
func challenge(direct []client.Direct) action.Action {
	a := action.Unauthorized()
	for _, c := range direct {
		if ch, ok := c.(client.Challenger); ok {
			return a.WithHeader("WWW-Authenticate", ch.Challenge())
		}
	}
	return a
}

// Profiles returns the profiles attached to ctx by a logic run.
func Profiles(ctx handler.Context) []*profile.Profile {
	if v, ok := ctx.Attribute(ProfilesAttribute); ok {
		if pm, ok := v.(*profile.Map); ok {
			return pm.Values()
		}
	}
	return nil
}
