package client

import (
	"github.com/dmitrymomot/gatekeeper/core/action"
	"github.com/dmitrymomot/gatekeeper/core/handler"
)

// Kind tells how a client obtains credentials.
type Kind int

const (
	// KindDirect clients read credentials from every request.
	KindDirect Kind = iota + 1
	// KindIndirect clients redirect to a login flow and validate a callback.
	KindIndirect
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindDirect:
		return "direct"
	case KindIndirect:
		return "indirect"
	default:
		return "unknown"
	}
}

// Client is a named authentication strategy. Implementations are read-only
// configuration and safe for concurrent use.
type Client interface {
	Name() string
	Kind() Kind
}

// Direct authenticates from credentials carried by the request itself.
// Authenticate may block on I/O; it should honor ctx cancellation.
type Direct interface {
	Client
	Authenticate(ctx handler.Context) Result
}

// Indirect authenticates through a redirect round trip.
type Indirect interface {
	Client
	// Redirect builds the response that starts the login flow. The flow must
	// come back to callbackURL.
	Redirect(ctx handler.Context, callbackURL string) (action.Action, error)
	// Callback validates the credentials the login flow returned.
	Callback(ctx handler.Context) Result
}

// Challenger is implemented by direct clients that advertise a
// WWW-Authenticate challenge on 401 responses.
type Challenger interface {
	Challenge() string
}

// FailureResponder is implemented by indirect clients that answer a failed
// callback with their own response, such as the login page with an error.
// Clients without it restart the flow through Redirect.
type FailureResponder interface {
	Failure(ctx handler.Context, callbackURL string, err error) (action.Action, error)
}
