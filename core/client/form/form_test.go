package form_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gatekeeper/core/client"
	"github.com/dmitrymomot/gatekeeper/core/client/basic"
	"github.com/dmitrymomot/gatekeeper/core/client/form"
	"github.com/dmitrymomot/gatekeeper/core/handler"
)

const callback = "https://app.example.com/callback?client_name=FormClient"

func authenticator(t *testing.T) basic.Authenticator {
	t.Helper()
	hash, err := basic.HashPassword("correct horse")
	require.NoError(t, err)
	return basic.NewStaticAuthenticator(map[string]basic.User{
		"alice": {PasswordHash: hash, Roles: []string{"user"}},
	})
}

func get(target string) handler.Context {
	return handler.NewHTTPContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
}

func post(values url.Values) handler.Context {
	req := httptest.NewRequest(http.MethodPost, "/callback?client_name=FormClient", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return handler.NewHTTPContext(httptest.NewRecorder(), req)
}

func TestRedirect_ExternalLoginPage(t *testing.T) {
	t.Parallel()

	c := form.New(form.Config{LoginURL: "https://app.example.com/login?lang=en"}, authenticator(t))
	assert.Equal(t, form.DefaultName, c.Name())
	assert.Equal(t, client.KindIndirect, c.Kind())

	a, err := c.Redirect(get("/private"), callback)
	require.NoError(t, err)
	require.True(t, a.IsRedirect())

	u, err := url.Parse(a.Location)
	require.NoError(t, err)
	assert.Equal(t, "/login", u.Path)
	assert.Equal(t, "en", u.Query().Get("lang"))
	assert.Equal(t, callback, u.Query().Get(form.CallbackParam))
	assert.Empty(t, u.Query().Get(form.ErrorParam))

	a, err = c.Redirect(get("/callback?error=invalid"), callback)
	require.NoError(t, err)
	u, err = url.Parse(a.Location)
	require.NoError(t, err)
	assert.Equal(t, "invalid", u.Query().Get(form.ErrorParam))
}

func TestRedirect_BuiltInPage(t *testing.T) {
	t.Parallel()

	c := form.New(form.Config{UsernameParam: "login"}, authenticator(t))

	a, err := c.Redirect(get("/private"), callback)
	require.NoError(t, err)
	require.True(t, a.IsContent())
	assert.False(t, a.IsRedirect())
	assert.Contains(t, a.Content, `action="https://app.example.com/callback?client_name=FormClient"`)
	assert.Contains(t, a.Content, `name="login"`)
	assert.NotContains(t, a.Content, "Invalid username")

	a, err = c.Redirect(get("/private?error=1"), callback)
	require.NoError(t, err)
	assert.Contains(t, a.Content, "Invalid username")
}

func TestCallback(t *testing.T) {
	t.Parallel()

	c := form.New(form.DefaultConfig(), authenticator(t))

	res := c.Callback(post(url.Values{"username": {"alice"}, "password": {"correct horse"}}))
	p, ok := res.Profile()
	require.True(t, ok)
	assert.Equal(t, "alice", p.ID)
	assert.Equal(t, form.DefaultName, p.ClientName)
	assert.True(t, p.HasRole("user"))

	res = c.Callback(post(url.Values{"username": {"alice"}, "password": {"wrong"}}))
	assert.ErrorIs(t, res.Err(), client.ErrInvalidCredentials)

	res = c.Callback(post(url.Values{"username": {"alice"}}))
	assert.ErrorIs(t, res.Err(), client.ErrNoCredentials)
}

func TestFailure(t *testing.T) {
	t.Parallel()

	external := form.New(form.Config{LoginURL: "/login"}, authenticator(t))
	a, err := external.Failure(get("/callback"), callback, client.ErrInvalidCredentials)
	require.NoError(t, err)
	u, err := url.Parse(a.Location)
	require.NoError(t, err)
	assert.Equal(t, "invalid_credentials", u.Query().Get(form.ErrorParam))

	a, err = external.Failure(get("/callback"), callback, client.ErrNoCredentials)
	require.NoError(t, err)
	u, err = url.Parse(a.Location)
	require.NoError(t, err)
	assert.Equal(t, "missing_credentials", u.Query().Get(form.ErrorParam))

	builtIn := form.New(form.DefaultConfig(), authenticator(t))
	a, err = builtIn.Failure(get("/callback"), callback, client.ErrInvalidCredentials)
	require.NoError(t, err)
	assert.Contains(t, a.Content, "Invalid username")
}
