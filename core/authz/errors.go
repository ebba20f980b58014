package authz

import "errors"

var (
	// ErrAuthorizerNotFound is returned for rule names missing from the registry.
	ErrAuthorizerNotFound = errors.New("authz: authorizer not found")
	// ErrDuplicateAuthorizer is returned when a name is registered twice.
	ErrDuplicateAuthorizer = errors.New("authz: duplicate authorizer")
	// ErrInvalidAuthorizer is returned for empty names or nil rules.
	ErrInvalidAuthorizer = errors.New("authz: invalid authorizer")
)
