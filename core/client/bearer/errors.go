package bearer

import "errors"

var (
	// ErrSecretTooShort is returned for signing secrets under MinSecretLength bytes.
	ErrSecretTooShort = errors.New("bearer: secret too short")
	// ErrMissingSubject is returned for tokens without a sub claim.
	ErrMissingSubject = errors.New("bearer: token has no subject")
)
