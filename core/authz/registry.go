package authz

import (
	"fmt"
	"strings"
)

// Built-in rule names.
const (
	NameIsAuthenticated      = "isAuthenticated"
	NameIsAnonymous          = "isAnonymous"
	NameIsRemembered         = "isRemembered"
	NameIsFullyAuthenticated = "isFullyAuthenticated"
	NameNone                 = "none"
)

// Registry maps rule names to authorizers. It is immutable after NewRegistry
// and names are matched case-insensitively.
type Registry struct {
	rules map[string]Authorizer
}

type entry struct {
	name string
	rule Authorizer
}

// RegistryOption configures a Registry.
type RegistryOption func(*[]entry)

// WithAuthorizer registers rule under name.
func WithAuthorizer(name string, rule Authorizer) RegistryOption {
	return func(e *[]entry) {
		*e = append(*e, entry{name: name, rule: rule})
	}
}

// NewRegistry creates a registry holding the built-in rules plus the given ones.
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	entries := []entry{
		{NameIsAuthenticated, IsAuthenticated()},
		{NameIsAnonymous, IsAnonymous()},
		{NameIsRemembered, IsRemembered()},
		{NameIsFullyAuthenticated, IsFullyAuthenticated()},
	}
	for _, opt := range opts {
		opt(&entries)
	}

	r := &Registry{rules: make(map[string]Authorizer, len(entries))}
	for _, e := range entries {
		name := strings.TrimSpace(e.name)
		if name == "" || e.rule == nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAuthorizer, e.name)
		}
		key := strings.ToLower(name)
		if _, ok := r.rules[key]; ok || key == strings.ToLower(NameNone) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAuthorizer, name)
		}
		r.rules[key] = e.rule
	}
	return r, nil
}

// Get returns the rule registered under name.
func (r *Registry) Get(name string) (Authorizer, error) {
	rule, ok := r.rules[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAuthorizerNotFound, name)
	}
	return rule, nil
}
