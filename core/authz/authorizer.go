package authz

import (
	"github.com/dmitrymomot/gatekeeper/core/handler"
	"github.com/dmitrymomot/gatekeeper/core/profile"
)

// Authorizer decides whether the profiles of a request may proceed.
type Authorizer interface {
	IsAuthorized(ctx handler.Context, profiles []*profile.Profile) (bool, error)
}

// Func adapts a function to Authorizer.
type Func func(ctx handler.Context, profiles []*profile.Profile) (bool, error)

// IsAuthorized calls f.
func (f Func) IsAuthorized(ctx handler.Context, profiles []*profile.Profile) (bool, error) {
	return f(ctx, profiles)
}

// Profiles builds an Authorizer from a predicate that must hold for at least
// one profile.
func Profiles(pred func(*profile.Profile) bool) Authorizer {
	return Func(func(_ handler.Context, profiles []*profile.Profile) (bool, error) {
		for _, p := range profiles {
			if p != nil && pred(p) {
				return true, nil
			}
		}
		return false, nil
	})
}

// IsAuthenticated passes when at least one profile is present.
func IsAuthenticated() Authorizer {
	return Profiles(func(*profile.Profile) bool { return true })
}

// IsAnonymous passes when no profile is present.
func IsAnonymous() Authorizer {
	return Not(IsAuthenticated())
}

// IsRemembered passes when a profile was restored from a remember-me login.
func IsRemembered() Authorizer {
	return Profiles(func(p *profile.Profile) bool { return p.RememberMe })
}

// IsFullyAuthenticated passes when a profile authenticated in this session
// rather than through remember-me.
func IsFullyAuthenticated() Authorizer {
	return Profiles(func(p *profile.Profile) bool { return !p.RememberMe })
}

// RequireAnyRole passes when a profile has at least one of roles.
func RequireAnyRole(roles ...string) Authorizer {
	return Profiles(func(p *profile.Profile) bool {
		for _, r := range roles {
			if p.HasRole(r) {
				return true
			}
		}
		return false
	})
}

// RequireAllRoles passes when a single profile has every one of roles.
func RequireAllRoles(roles ...string) Authorizer {
	return Profiles(func(p *profile.Profile) bool {
		for _, r := range roles {
			if !p.HasRole(r) {
				return false
			}
		}
		return true
	})
}

// RequireAnyPermission passes when a profile has at least one of perms.
func RequireAnyPermission(perms ...string) Authorizer {
	return Profiles(func(p *profile.Profile) bool {
		for _, perm := range perms {
			if p.HasPermission(perm) {
				return true
			}
		}
		return false
	})
}

// RequireAllPermissions passes when a single profile has every one of perms.
func RequireAllPermissions(perms ...string) Authorizer {
	return Profiles(func(p *profile.Profile) bool {
		for _, perm := range perms {
			if !p.HasPermission(perm) {
				return false
			}
		}
		return true
	})
}

// AllOf passes when every rule passes. It stops at the first failure.
func AllOf(rules ...Authorizer) Authorizer {
	return Func(func(ctx handler.Context, profiles []*profile.Profile) (bool, error) {
		for _, r := range rules {
			ok, err := r.IsAuthorized(ctx, profiles)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	})
}

// AnyOf passes when at least one rule passes. It stops at the first success.
func AnyOf(rules ...Authorizer) Authorizer {
	return Func(func(ctx handler.Context, profiles []*profile.Profile) (bool, error) {
		for _, r := range rules {
			ok, err := r.IsAuthorized(ctx, profiles)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	})
}

// Not inverts rule. Errors are passed through and never read as a pass.
func Not(rule Authorizer) Authorizer {
	return Func(func(ctx handler.Context, profiles []*profile.Profile) (bool, error) {
		ok, err := rule.IsAuthorized(ctx, profiles)
		if err != nil {
			return false, err
		}
		return !ok, nil
	})
}
