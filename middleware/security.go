package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/gatekeeper/core/handler"
	"github.com/dmitrymomot/gatekeeper/core/logger"
	"github.com/dmitrymomot/gatekeeper/core/profile"
	"github.com/dmitrymomot/gatekeeper/core/response"
	"github.com/dmitrymomot/gatekeeper/core/security"
)

type profilesContextKey struct{}

type options struct {
	logger       *slog.Logger
	errorHandler handler.ErrorHandler
}

// Option configures the security handlers.
type Option func(*options)

// WithLogger sets the logger for configuration failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithErrorHandler sets the handler for configuration and render failures.
// The default replies 500 without details.
func WithErrorHandler(h handler.ErrorHandler) Option {
	return func(o *options) {
		if h != nil {
			o.errorHandler = h
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: logger.Discard(), errorHandler: response.ErrorHandler}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Security protects next. Granted requests reach next with their profiles in
// the request context; every other outcome is rendered here.
func Security(logic *security.Logic, params security.Params, opts ...Option) func(http.Handler) http.Handler {
	o := buildOptions(opts)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := logic.Perform(handler.NewHTTPContext(w, r), params)
			if err != nil {
				o.fail(w, r, err)
				return
			}
			if !res.Granted() {
				response.Render(w, r, response.FromAction(res.Action), o.errorHandler)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithProfiles(r.Context(), res.Profiles)))
		})
	}
}

// Callback serves the login callback endpoint.
func Callback(logic *security.CallbackLogic, params security.CallbackParams, opts ...Option) http.Handler {
	o := buildOptions(opts)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, err := logic.Perform(handler.NewHTTPContext(w, r), params)
		if err != nil {
			o.fail(w, r, err)
			return
		}
		response.Render(w, r, response.FromAction(res.Action), o.errorHandler)
	})
}

// Logout serves the logout endpoint.
func Logout(logic *security.LogoutLogic, params security.LogoutParams, opts ...Option) http.Handler {
	o := buildOptions(opts)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, err := logic.Perform(handler.NewHTTPContext(w, r), params)
		if err != nil {
			o.fail(w, r, err)
			return
		}
		response.Render(w, r, response.FromAction(res.Action), o.errorHandler)
	})
}

func (o options) fail(w http.ResponseWriter, r *http.Request, err error) {
	o.logger.ErrorContext(r.Context(), "security misconfigured",
		logger.Method(r.Method),
		logger.Path(r.URL.Path),
		logger.Error(err),
	)
	o.errorHandler(w, r, err)
}

// WithProfiles returns a copy of ctx carrying profiles.
func WithProfiles(ctx context.Context, profiles []*profile.Profile) context.Context {
	return context.WithValue(ctx, profilesContextKey{}, profiles)
}

// Profiles returns the profiles granted to r by Security.
func Profiles(r *http.Request) []*profile.Profile {
	p, _ := r.Context().Value(profilesContextKey{}).([]*profile.Profile)
	return p
}

// Profile returns the first granted profile.
func Profile(r *http.Request) (*profile.Profile, bool) {
	p := Profiles(r)
	if len(p) == 0 {
		return nil, false
	}
	return p[0], true
}
