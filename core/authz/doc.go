// Package authz evaluates authorization rules against authenticated profiles.
//
// An Authorizer is a predicate over the profiles of a request. Built-in rules
// cover authentication state, roles and permissions, and can be composed:
//
//	editors := authz.AnyOf(authz.RequireAnyRole("admin"), authz.RequireAllPermissions("articles:write"))
//	reg, err := authz.NewRegistry(authz.WithAuthorizer("editors", editors))
//	ok, err := authz.NewChecker(reg).Check(ctx, "isAuthenticated,editors", profiles)
//
// Role and permission rules pass when at least one profile satisfies them.
//
// The registry always contains isAuthenticated, isAnonymous, isRemembered,
// isFullyAuthenticated and none. An empty rule list means isAuthenticated;
// "none" disables authorization for the route.
package authz
