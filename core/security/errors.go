package security

import (
	"errors"

	"github.com/dmitrymomot/gatekeeper/core/authz"
	"github.com/dmitrymomot/gatekeeper/core/client"
)

var (
	// ErrMissingConfig is returned when a required collaborator is absent.
	ErrMissingConfig = errors.New("security: missing configuration")
	// ErrInvalidPattern is returned for logout URL patterns that do not compile
	// and for malformed path matchers.
	ErrInvalidPattern = errors.New("security: invalid pattern")
)

// IsConfigError reports whether err is a deployment mistake rather than a
// per-request failure. Such errors are returned before any session state is
// touched.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrMissingConfig) ||
		errors.Is(err, ErrInvalidPattern) ||
		errors.Is(err, client.ErrClientNotFound) ||
		errors.Is(err, client.ErrNotIndirect) ||
		errors.Is(err, authz.ErrAuthorizerNotFound)
}
