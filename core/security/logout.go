package security

import (
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/dmitrymomot/gatekeeper/core/action"
	"github.com/dmitrymomot/gatekeeper/core/handler"
	"github.com/dmitrymomot/gatekeeper/core/logger"
)

// LogoutURLParam is the request parameter naming the post-logout page.
const LogoutURLParam = "url"

// LogoutParams are the inputs of LogoutLogic.Perform.
type LogoutParams struct {
	// DefaultURL is the landing page when the request names none or an
	// unacceptable one. Empty means a plain 200.
	DefaultURL string
	// URLPattern restricts the url parameter. Empty means DefaultLogoutURLPattern.
	URLPattern string
	// DestroySession removes the whole session, not just its profiles.
	DestroySession bool
}

// LogoutLogic signs the user out.
type LogoutLogic struct {
	cfg      Config
	logger   *slog.Logger
	observer Observer
}

// NewLogout creates the logout logic.
func NewLogout(cfg Config, opts ...Option) (*LogoutLogic, error) {
	cfg, err := cfg.validate()
	if err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	return &LogoutLogic{
		cfg:      cfg,
		logger:   o.logger.With(logger.Component("logout")),
		observer: o.observer,
	}, nil
}

// Perform removes the profiles of the request and session and redirects.
func (l *LogoutLogic) Perform(ctx handler.Context, params LogoutParams) (Result, error) {
	start := time.Now()

	pattern := params.URLPattern
	if pattern == "" {
		pattern = DefaultLogoutURLPattern
	}
	allowed, err := regexp.Compile(pattern)
	if err != nil {
		return Result{}, fmt.Errorf("%w: logout URL: %w", ErrInvalidPattern, err)
	}

	pm := NewProfileManager(ctx, l.cfg.Store)
	var who string
	if p, ok := pm.Get(l.cfg.Store != nil); ok {
		who = p.ClientName
		l.logger.InfoContext(ctx, "logout", logger.Client(p.ClientName), logger.ProfileID(p.ID))
	}

	var failure error
	if err := pm.Remove(true); err != nil {
		l.logger.WarnContext(ctx, "failed to remove profiles from session", logger.Error(err))
		failure = err
	}
	if params.DestroySession && l.cfg.Store != nil {
		if _, err := l.cfg.Store.Destroy(ctx); err != nil {
			l.logger.WarnContext(ctx, "failed to destroy session", logger.Error(err))
			failure = err
		}
	}

	a := action.OK()
	if target, ok := ctx.Param(LogoutURLParam); ok && safeRedirect(target, allowed) {
		a = action.SeeOther(target)
	} else if params.DefaultURL != "" {
		a = action.SeeOther(params.DefaultURL)
	}

	state := StateRedirect
	if !a.IsRedirect() {
		state = StateGrant
	}
	r := Result{State: state, Action: a, Client: who}
	l.observer.Observe(ctx, Decision{
		Flow:     FlowLogout,
		State:    r.State,
		Client:   who,
		Duration: time.Since(start),
		Err:      failure,
	})
	return r, nil
}

// safeRedirect reports whether target may be used as a Location. Browsers drop
// tabs and newlines and treat backslashes as slashes, so such targets are
// refused before the pattern sees them.
func safeRedirect(target string, allowed *regexp.Regexp) bool {
	if target == "" || strings.ContainsRune(target, '\\') {
		return false
	}
	if strings.ContainsFunc(target, func(r rune) bool { return unicode.IsControl(r) || unicode.IsSpace(r) }) {
		return false
	}
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	switch {
	case u.Scheme == "" && u.Host != "":
		return false
	case u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https":
		return false
	}
	return allowed.MatchString(target)
}
