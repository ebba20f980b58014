package authz_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gatekeeper/core/authz"
	"github.com/dmitrymomot/gatekeeper/core/handler"
	"github.com/dmitrymomot/gatekeeper/core/profile"
)

func newContext() handler.Context {
	return handler.NewHTTPContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func user(id string, roles []string, perms ...string) *profile.Profile {
	p := profile.New(id, "Test")
	p.AddRoles(roles...)
	p.AddPermissions(perms...)
	return p
}

func TestBuiltIns(t *testing.T) {
	t.Parallel()

	admin := user("1", []string{"admin", "editor"}, "articles:read", "articles:write")
	viewer := user("2", []string{"viewer"}, "articles:read")
	remembered := user("3", nil)
	remembered.RememberMe = true

	tests := []struct {
		name     string
		rule     authz.Authorizer
		profiles []*profile.Profile
		want     bool
	}{
		{"authenticated", authz.IsAuthenticated(), []*profile.Profile{viewer}, true},
		{"authenticated empty", authz.IsAuthenticated(), nil, false},
		{"anonymous", authz.IsAnonymous(), nil, true},
		{"anonymous with profile", authz.IsAnonymous(), []*profile.Profile{viewer}, false},
		{"remembered", authz.IsRemembered(), []*profile.Profile{remembered}, true},
		{"fully authenticated", authz.IsFullyAuthenticated(), []*profile.Profile{remembered}, false},
		{"any role", authz.RequireAnyRole("admin", "owner"), []*profile.Profile{admin}, true},
		{"any role missing", authz.RequireAnyRole("admin"), []*profile.Profile{viewer}, false},
		{"any role across profiles", authz.RequireAnyRole("admin"), []*profile.Profile{viewer, admin}, true},
		{"all roles", authz.RequireAllRoles("admin", "editor"), []*profile.Profile{admin}, true},
		{"all roles split across profiles", authz.RequireAllRoles("admin", "viewer"), []*profile.Profile{admin, viewer}, false},
		{"any permission", authz.RequireAnyPermission("articles:write"), []*profile.Profile{viewer}, false},
		{"all permissions", authz.RequireAllPermissions("articles:read", "articles:write"), []*profile.Profile{admin}, true},
		{"roles without profiles", authz.RequireAnyRole("admin"), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ok, err := tt.rule.IsAuthorized(newContext(), tt.profiles)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestComposition(t *testing.T) {
	t.Parallel()

	admin := []*profile.Profile{user("1", []string{"admin"})}
	ctx := newContext()

	ok, err := authz.AllOf(authz.IsAuthenticated(), authz.RequireAnyRole("admin")).IsAuthorized(ctx, admin)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = authz.AllOf(authz.IsAuthenticated(), authz.RequireAnyRole("owner")).IsAuthorized(ctx, admin)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = authz.AnyOf(authz.RequireAnyRole("owner"), authz.RequireAnyRole("admin")).IsAuthorized(ctx, admin)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = authz.Not(authz.RequireAnyRole("admin")).IsAuthorized(ctx, admin)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = authz.AllOf().IsAuthorized(ctx, nil)
	require.NoError(t, err)
	assert.True(t, ok, "empty conjunction passes")
}

func TestErrorsNeverPass(t *testing.T) {
	t.Parallel()

	boom := errors.New("policy service down")
	failing := authz.Func(func(handler.Context, []*profile.Profile) (bool, error) { return true, boom })
	ctx := newContext()

	for name, rule := range map[string]authz.Authorizer{
		"all": authz.AllOf(failing),
		"any": authz.AnyOf(failing),
		"not": authz.Not(failing),
	} {
		ok, err := rule.IsAuthorized(ctx, nil)
		assert.ErrorIs(t, err, boom, name)
		assert.False(t, ok, name)
	}
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	_, err := authz.NewRegistry(authz.WithAuthorizer("isauthenticated", authz.IsAnonymous()))
	assert.ErrorIs(t, err, authz.ErrDuplicateAuthorizer)

	_, err = authz.NewRegistry(authz.WithAuthorizer("none", authz.IsAnonymous()))
	assert.ErrorIs(t, err, authz.ErrDuplicateAuthorizer)

	_, err = authz.NewRegistry(authz.WithAuthorizer("", authz.IsAnonymous()))
	assert.ErrorIs(t, err, authz.ErrInvalidAuthorizer)

	_, err = authz.NewRegistry(authz.WithAuthorizer("admin", nil))
	assert.ErrorIs(t, err, authz.ErrInvalidAuthorizer)

	reg, err := authz.NewRegistry(authz.WithAuthorizer("admin", authz.RequireAnyRole("admin")))
	require.NoError(t, err)

	_, err = reg.Get("ADMIN")
	assert.NoError(t, err)
	_, err = reg.Get("missing")
	assert.ErrorIs(t, err, authz.ErrAuthorizerNotFound)
}

func TestChecker(t *testing.T) {
	t.Parallel()

	reg, err := authz.NewRegistry(authz.WithAuthorizer("admin", authz.RequireAnyRole("admin")))
	require.NoError(t, err)
	checker := authz.NewChecker(reg)

	admin := []*profile.Profile{user("1", []string{"admin"})}
	viewer := []*profile.Profile{user("2", []string{"viewer"})}

	tests := []struct {
		name     string
		names    string
		profiles []*profile.Profile
		want     bool
		err      error
	}{
		{"default is authenticated", "", viewer, true, nil},
		{"default denies anonymous", " ", nil, false, nil},
		{"all must pass", "isAuthenticated, admin", viewer, false, nil},
		{"all pass", "isAuthenticated,admin", admin, true, nil},
		{"none skips", "none", nil, true, nil},
		{"unknown", "admin,superuser", admin, false, authz.ErrAuthorizerNotFound},
		{"unknown with none", "none,superuser", admin, false, authz.ErrAuthorizerNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ok, err := checker.Check(newContext(), tt.names, tt.profiles)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}
