package authz

import (
	"strings"

	"github.com/dmitrymomot/gatekeeper/core/handler"
	"github.com/dmitrymomot/gatekeeper/core/profile"
)

// Checker evaluates comma-separated rule lists against a registry.
type Checker struct {
	registry *Registry
}

// NewChecker creates a checker over registry.
func NewChecker(registry *Registry) *Checker {
	return &Checker{registry: registry}
}

// Resolve returns the rules named by names. An empty list resolves to
// isAuthenticated and a list containing "none" to no rules at all.
func (c *Checker) Resolve(names string) ([]Authorizer, error) {
	var list []string
	for part := range strings.SplitSeq(names, ",") {
		if part = strings.TrimSpace(part); part != "" {
			list = append(list, part)
		}
	}
	if len(list) == 0 {
		list = []string{NameIsAuthenticated}
	}

	rules := make([]Authorizer, 0, len(list))
	skip := false
	for _, name := range list {
		if strings.EqualFold(name, NameNone) {
			skip = true
			continue
		}
		rule, err := c.registry.Get(name)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	if skip {
		return nil, nil
	}
	return rules, nil
}

// Check reports whether profiles pass every rule in names.
func (c *Checker) Check(ctx handler.Context, names string, profiles []*profile.Profile) (bool, error) {
	rules, err := c.Resolve(names)
	if err != nil {
		return false, err
	}
	return AllOf(rules...).IsAuthorized(ctx, profiles)
}
