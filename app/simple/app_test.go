package simple_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/gatekeeper/app/simple"
	"github.com/dmitrymomot/gatekeeper/core/client/basic"
	"github.com/dmitrymomot/gatekeeper/core/client/bearer"
	"github.com/dmitrymomot/gatekeeper/core/client/form"
	"github.com/dmitrymomot/gatekeeper/core/cookie"
	"github.com/dmitrymomot/gatekeeper/core/logger"
	"github.com/dmitrymomot/gatekeeper/core/security"
	"github.com/dmitrymomot/gatekeeper/core/server"
	"github.com/dmitrymomot/gatekeeper/integration/database/redis"
	"github.com/dmitrymomot/gatekeeper/integration/metrics/prometheus"
)

func testConfig(backend string) simple.Config {
	bc := bearer.DefaultConfig()
	bc.Secret = "bearer-secret-bearer-secret-0123"

	srv := server.DefaultConfig()
	srv.Addr = "127.0.0.1:0"

	return simple.Config{
		Server:          srv,
		Cookie:          cookie.DefaultConfig(),
		Redis:           redis.DefaultConfig(),
		Security:        security.DefaultSettings(),
		Bearer:          bc,
		Form:            form.DefaultConfig(),
		Metrics:         prometheus.DefaultConfig(),
		AppName:         "simple-test",
		Env:             "test",
		LogLevel:        "error",
		SessionBackend:  backend,
		SessionSecret:   "session-secret-session-secret-01",
		SessionCapacity: 64,
	}
}

func newServer(t *testing.T, cfg simple.Config) *httptest.Server {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	app, err := simple.NewApp(context.Background(),
		simple.WithConfig(cfg),
		simple.WithLogger(logger.Discard()),
		simple.WithUsers(map[string]basic.User{
			"alice": {PasswordHash: hash, Roles: []string{simple.AuthorizerAdmin}},
		}),
	)
	require.NoError(t, err)
	t.Cleanup(app.Close)

	srv := httptest.NewServer(app.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func browser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar:           jar,
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}
}

func read(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestLoginFlow(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)

	for _, backend := range []string{simple.BackendMemory, simple.BackendRedis, simple.BackendCookie} {
		t.Run(backend, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig(backend)
			cfg.Redis.ConnectionURL = "redis://" + mr.Addr() + "/0"
			srv := newServer(t, cfg)
			c := browser(t)

			resp, err := c.Get(srv.URL + "/admin")
			require.NoError(t, err)
			page := read(t, resp)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, page, `name="password"`)
			assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

			resp, err = c.PostForm(srv.URL+"/callback?client_name="+form.DefaultName, url.Values{
				"username": {"alice"},
				"password": {"s3cret"},
			})
			require.NoError(t, err)
			read(t, resp)
			require.Equal(t, http.StatusSeeOther, resp.StatusCode)
			assert.Equal(t, srv.URL+"/admin", resp.Header.Get("Location"))

			resp, err = c.Get(srv.URL + "/admin")
			require.NoError(t, err)
			assert.Contains(t, read(t, resp), "Welcome, alice.")
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			resp, err = c.PostForm(srv.URL+"/logout", nil)
			require.NoError(t, err)
			read(t, resp)
			assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

			resp, err = c.Get(srv.URL + "/admin")
			require.NoError(t, err)
			assert.Contains(t, read(t, resp), `name="password"`)
		})
	}
}

func TestTokenExchange(t *testing.T) {
	t.Parallel()

	srv := newServer(t, testConfig(simple.BackendMemory))
	c := browser(t)

	resp, err := c.PostForm(srv.URL+"/callback?client_name="+form.DefaultName, url.Values{
		"username": {"alice"},
		"password": {"s3cret"},
	})
	require.NoError(t, err)
	read(t, resp)

	resp, err = c.Post(srv.URL+"/api/token", "application/x-www-form-urlencoded", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal([]byte(read(t, resp)), &tok))
	assert.Equal(t, "Bearer", tok.TokenType)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me map[string]any
	require.NoError(t, json.Unmarshal([]byte(read(t, resp)), &me))
	assert.Equal(t, "alice", me["id"])
	assert.Equal(t, bearer.DefaultName, me["client"])
}

func TestBasicAPI(t *testing.T) {
	t.Parallel()

	srv := newServer(t, testConfig(simple.BackendMemory))

	resp, err := http.Get(srv.URL + "/api/me")
	require.NoError(t, err)
	read(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("WWW-Authenticate"))

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/me", nil)
	require.NoError(t, err)
	req.SetBasicAuth("alice", "s3cret")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, read(t, resp), `"client":"BasicClient"`)
}

func TestOperationalEndpoints(t *testing.T) {
	t.Parallel()

	srv := newServer(t, testConfig(simple.BackendMemory))

	resp, err := http.Get(srv.URL + "/api/me")
	require.NoError(t, err)
	read(t, resp)

	resp, err = http.Get(srv.URL + "/health/live")
	require.NoError(t, err)
	assert.Equal(t, "ALIVE", read(t, resp))

	resp, err = http.Get(srv.URL + "/health/ready")
	require.NoError(t, err)
	assert.Equal(t, "READY", read(t, resp))

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	assert.Contains(t, read(t, resp), `gatekeeper_security_decisions_total{client="",flow="security",state="unauthorized"} 1`)
}

func TestJunkCallbackClientsShareOneSeries(t *testing.T) {
	t.Parallel()

	srv := newServer(t, testConfig(simple.BackendMemory))

	for i := range 50 {
		resp, err := http.Get(fmt.Sprintf("%s/callback?client_name=junk%d", srv.URL, i))
		require.NoError(t, err)
		read(t, resp)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	metrics := read(t, resp)

	var series []string
	for line := range strings.SplitSeq(metrics, "\n") {
		if strings.HasPrefix(line, "gatekeeper_security_decisions_total{") && strings.Contains(line, `flow="callback"`) {
			series = append(series, line)
		}
	}
	assert.Equal(t, []string{`gatekeeper_security_decisions_total{client="",flow="callback",state="bad_request"} 50`}, series)
	assert.NotContains(t, metrics, "junk")
}

func TestNewAppErrors(t *testing.T) {
	t.Parallel()

	cfg := testConfig("nope")
	_, err := simple.NewApp(context.Background(), simple.WithConfig(cfg), simple.WithLogger(logger.Discard()))
	require.Error(t, err)

	cfg = testConfig(simple.BackendMemory)
	cfg.SessionSecret = "short"
	_, err = simple.NewApp(context.Background(), simple.WithConfig(cfg), simple.WithLogger(logger.Discard()))
	require.Error(t, err)
}
