package security

import (
	"github.com/dmitrymomot/gatekeeper/core/action"
	"github.com/dmitrymomot/gatekeeper/core/profile"
)

// State is the terminal state of a security decision.
type State string

const (
	// StateGrant lets the request through.
	StateGrant State = "grant"
	// StateUnauthorized denies a request without valid credentials.
	StateUnauthorized State = "unauthorized"
	// StateForbidden denies an authenticated request failing authorization.
	StateForbidden State = "forbidden"
	// StateRedirect sends the user into, or out of, a login flow.
	StateRedirect State = "redirect"
	// StateBadRequest rejects a malformed callback.
	StateBadRequest State = "bad_request"
)

// Result is the outcome of a logic run.
type Result struct {
	State State
	// Action is the response to render. It is zero when the request should
	// continue to the protected resource.
	Action action.Action
	// Profiles are the authenticated profiles of the request, in order.
	Profiles []*profile.Profile
	// Client names the client that authenticated the request or started
	// the login flow.
	Client string
}

// Granted reports whether the request may proceed.
func (r Result) Granted() bool {
	return r.State == StateGrant
}

func stateOf(a action.Action) State {
	switch {
	case a.IsRedirect() || a.IsContent():
		return StateRedirect
	case a.Status == 401:
		return StateUnauthorized
	case a.Status == 403:
		return StateForbidden
	case a.Status >= 400:
		return StateBadRequest
	default:
		return StateGrant
	}
}
