package client

import (
	"github.com/dmitrymomot/gatekeeper/core/action"
	"github.com/dmitrymomot/gatekeeper/core/profile"
)

// Result is the outcome of a client call: exactly one of a profile, an
// action the client needs rendered, or an error.
type Result struct {
	profile *profile.Profile
	action  action.Action
	err     error
}

// Ok is a successful authentication.
func Ok(p *profile.Profile) Result {
	if p == nil {
		return Failed(ErrInvalidCredentials)
	}
	return Result{profile: p}
}

// NeedsAction asks the caller to render a instead of continuing.
func NeedsAction(a action.Action) Result {
	return Result{action: a}
}

// Failed is an unsuccessful authentication.
func Failed(err error) Result {
	if err == nil {
		err = ErrInvalidCredentials
	}
	return Result{err: err}
}

// NoCredentials is Failed(ErrNoCredentials).
func NoCredentials() Result {
	return Result{err: ErrNoCredentials}
}

// Profile returns the authenticated profile.
func (r Result) Profile() (*profile.Profile, bool) {
	return r.profile, r.profile != nil
}

// Action returns the action the client needs rendered.
func (r Result) Action() (action.Action, bool) {
	return r.action, !r.action.IsZero()
}

// Err returns the failure, or nil.
func (r Result) Err() error {
	return r.err
}

// IsOk reports whether the result holds a profile.
func (r Result) IsOk() bool {
	return r.profile != nil
}
