package security

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/gatekeeper/core/action"
	"github.com/dmitrymomot/gatekeeper/core/client"
	"github.com/dmitrymomot/gatekeeper/core/handler"
	"github.com/dmitrymomot/gatekeeper/core/logger"
	"github.com/dmitrymomot/gatekeeper/core/sessionstore"
)

// CallbackParams are the inputs of CallbackLogic.Perform.
type CallbackParams struct {
	// DefaultClient handles callbacks that do not name a client.
	DefaultClient string
	// DefaultURL is the landing page when no requested URL was saved.
	DefaultURL string
	// RenewSession rotates the session identifier after login. Defaults to true.
	RenewSession *bool
	// MultiProfile overrides Config.MultiProfile.
	MultiProfile *bool
}

// CallbackLogic completes indirect login flows.
type CallbackLogic struct {
	cfg      Config
	logger   *slog.Logger
	observer Observer
}

// NewCallback creates the callback logic. It needs a session store.
func NewCallback(cfg Config, opts ...Option) (*CallbackLogic, error) {
	cfg, err := cfg.validate()
	if err != nil {
		return nil, err
	}
	if err := cfg.requireStore(); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	return &CallbackLogic{
		cfg:      cfg,
		logger:   o.logger.With(logger.Component("callback")),
		observer: o.observer,
	}, nil
}

// Perform validates the callback and redirects to the originally requested
// URL. Failed credentials send the user back to the login flow.
func (l *CallbackLogic) Perform(ctx handler.Context, params CallbackParams) (Result, error) {
	start := time.Now()

	c, res, err := l.resolve(ctx, params.DefaultClient)
	if err != nil {
		return Result{}, err
	}
	if c == nil {
		return l.finish(ctx, start, res, nil), nil
	}
	callbackURL := l.cfg.Clients.CallbackURL(c.Name())

	out := c.Callback(ctx)
	if a, ok := out.Action(); ok {
		return l.finish(ctx, start, Result{State: stateOf(a), Action: a, Client: c.Name()}, nil), nil
	}

	p, ok := out.Profile()
	if !ok {
		return l.failure(ctx, start, c, callbackURL, out.Err()), nil
	}

	pm := NewProfileManager(ctx, l.cfg.Store)
	if err := pm.Save(true, p, pick(params.MultiProfile, l.cfg.MultiProfile)); err != nil {
		l.logger.ErrorContext(ctx, "failed to save profile", logger.Client(c.Name()), logger.Error(err))
		return l.finish(ctx, start, Result{State: StateUnauthorized, Action: action.Unauthorized(), Client: c.Name()}, err), nil
	}

	if pick(params.RenewSession, true) {
		if _, err := l.cfg.Store.Renew(ctx); err != nil {
			// A session that cannot be rotated must not carry the new login.
			l.logger.ErrorContext(ctx, "failed to renew session", logger.Client(c.Name()), logger.Error(err))
			if rmErr := pm.Remove(true); rmErr != nil {
				l.logger.ErrorContext(ctx, "failed to remove profiles after renew failure",
					logger.Client(c.Name()),
					logger.Error(rmErr),
				)
				err = errors.Join(err, rmErr)
			}
			return l.finish(ctx, start, Result{State: StateUnauthorized, Action: action.Unauthorized(), Client: c.Name()}, err), nil
		}
	}

	target := params.DefaultURL
	if v, ok := l.cfg.Store.Get(ctx, sessionstore.RequestedURLKey); ok {
		if s, ok := v.(string); ok && s != "" {
			target = s
		}
		if err := l.cfg.Store.Set(ctx, sessionstore.RequestedURLKey, nil); err != nil {
			l.logger.WarnContext(ctx, "failed to clear requested URL", logger.Error(err))
		}
	}
	if target == "" {
		target = "/"
	}

	l.logger.InfoContext(ctx, "login completed", logger.Client(c.Name()), logger.ProfileID(p.ID))
	return l.finish(ctx, start, Result{
		State:    StateRedirect,
		Action:   action.SeeOther(target),
		Profiles: pm.Profiles(false).Values(),
		Client:   c.Name(),
	}, nil), nil
}

// resolve picks the callback client. A client named by the request that does
// not exist or is not indirect yields a 400 result; a bad default is a
// configuration error.
func (l *CallbackLogic) resolve(ctx handler.Context, defaultClient string) (client.Indirect, Result, error) {
	name, fromRequest := ctx.Param(client.ClientNameParam)
	if !fromRequest || name == "" {
		name, fromRequest = defaultClient, false
	}
	if name == "" {
		return nil, Result{}, fmt.Errorf("%w: callback client", ErrMissingConfig)
	}

	c, err := l.cfg.Clients.Find(name)
	if err == nil {
		if ic, ok := c.(client.Indirect); ok && c.Kind() == client.KindIndirect {
			return ic, Result{}, nil
		}
		err = fmt.Errorf("%w: %s", client.ErrNotIndirect, name)
	}
	if !fromRequest {
		return nil, Result{}, err
	}

	// The name is caller-controlled, so it stays out of the result and metrics.
	l.logger.WarnContext(ctx, "callback for unusable client", logger.Client(name), logger.Error(err))
	return nil, Result{State: StateBadRequest, Action: action.BadRequest()}, nil
}

func (l *CallbackLogic) failure(ctx handler.Context, start time.Time, c client.Indirect, callbackURL string, err error) Result {
	if !client.IsCredentialError(err) {
		l.logger.ErrorContext(ctx, "client failed", logger.Client(c.Name()), logger.Error(err))
		return l.finish(ctx, start, Result{State: StateUnauthorized, Action: action.Unauthorized(), Client: c.Name()}, err)
	}

	l.logger.DebugContext(ctx, "login rejected", logger.Client(c.Name()), logger.Error(err))

	var (
		a    action.Action
		rerr error
	)
	if fr, ok := c.(client.FailureResponder); ok {
		a, rerr = fr.Failure(ctx, callbackURL, err)
	} else {
		a, rerr = c.Redirect(ctx, callbackURL)
	}
	if rerr != nil || a.IsZero() {
		return l.finish(ctx, start, Result{State: StateUnauthorized, Action: action.Unauthorized(), Client: c.Name()}, rerr)
	}
	return l.finish(ctx, start, Result{State: stateOf(a), Action: a, Client: c.Name()}, nil)
}

func (l *CallbackLogic) finish(ctx handler.Context, start time.Time, r Result, err error) Result {
	l.observer.Observe(ctx, Decision{
		Flow:     FlowCallback,
		State:    r.State,
		Client:   r.Client,
		Duration: time.Since(start),
		Err:      err,
	})
	return r
}
