package client

import "errors"

var (
	// ErrClientNotFound is returned when a name does not match a registered client.
	ErrClientNotFound = errors.New("client: not found")
	// ErrDuplicateClient is returned when two clients share a name.
	ErrDuplicateClient = errors.New("client: duplicate name")
	// ErrEmptyName is returned for clients without a name.
	ErrEmptyName = errors.New("client: empty name")
	// ErrMissingCallbackURL is returned when indirect clients are registered without a callback URL.
	ErrMissingCallbackURL = errors.New("client: callback URL is required for indirect clients")
	// ErrNotIndirect is returned when a callback targets a direct client.
	ErrNotIndirect = errors.New("client: not an indirect client")

	// ErrNoCredentials means the request carries no credentials for the client.
	ErrNoCredentials = errors.New("client: no credentials")
	// ErrInvalidCredentials means the credentials were present but rejected.
	ErrInvalidCredentials = errors.New("client: invalid credentials")
)

// IsCredentialError reports whether err is a missing or rejected credential,
// as opposed to a client malfunction.
func IsCredentialError(err error) bool {
	return errors.Is(err, ErrNoCredentials) || errors.Is(err, ErrInvalidCredentials)
}
