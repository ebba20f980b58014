package security_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/gatekeeper/core/authz"
	"github.com/dmitrymomot/gatekeeper/core/cache"
	"github.com/dmitrymomot/gatekeeper/core/client"
	"github.com/dmitrymomot/gatekeeper/core/client/basic"
	"github.com/dmitrymomot/gatekeeper/core/client/bearer"
	"github.com/dmitrymomot/gatekeeper/core/client/form"
	"github.com/dmitrymomot/gatekeeper/core/encrypter"
	"github.com/dmitrymomot/gatekeeper/core/handler"
	"github.com/dmitrymomot/gatekeeper/core/profile"
	"github.com/dmitrymomot/gatekeeper/core/security"
	"github.com/dmitrymomot/gatekeeper/core/serializer"
	"github.com/dmitrymomot/gatekeeper/core/sessionstore"
)

const secret = "0123456789abcdef0123456789abcdef"

// browser carries cookies between requests.
type browser struct {
	jar []*http.Cookie
}

type request struct {
	method  string
	target  string
	form    url.Values
	headers map[string]string
}

func (b *browser) do(t *testing.T, r request) (*handler.HTTPContext, *httptest.ResponseRecorder) {
	t.Helper()
	if r.method == "" {
		r.method = http.MethodGet
	}
	var req *http.Request
	if r.form != nil {
		req = httptest.NewRequest(r.method, r.target, strings.NewReader(r.form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(r.method, r.target, nil)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	for _, c := range b.jar {
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}
	rec := httptest.NewRecorder()
	return handler.NewHTTPContext(rec, req), rec
}

func (b *browser) receive(rec *httptest.ResponseRecorder) {
	for _, c := range rec.Result().Cookies() {
		b.jar = slices.DeleteFunc(b.jar, func(old *http.Cookie) bool { return old.Name == c.Name })
		if c.MaxAge >= 0 {
			b.jar = append(b.jar, c)
		}
	}
}

func (b *browser) cookie(name string) string {
	for _, c := range b.jar {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

type recorder struct {
	mu        sync.Mutex
	decisions []security.Decision
}

func (r *recorder) Observe(_ context.Context, d security.Decision) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decisions = append(r.decisions, d)
}

func (r *recorder) last() security.Decision {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.decisions[len(r.decisions)-1]
}

// failingClient is a direct client whose backend is down.
type failingClient struct{}

func (failingClient) Name() string      { return "Broken" }
func (failingClient) Kind() client.Kind { return client.KindDirect }
func (failingClient) Authenticate(handler.Context) client.Result {
	return client.Failed(errors.New("identity provider unreachable"))
}

type fixture struct {
	cfg      security.Config
	bearer   *bearer.Client
	store    *sessionstore.CacheStore
	observer *recorder
}

func users(t *testing.T) basic.Authenticator {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	return basic.NewStaticAuthenticator(map[string]basic.User{
		"alice": {PasswordHash: hash, Roles: []string{"admin"}},
		"bob":   {PasswordHash: hash, Roles: []string{"user"}},
	})
}

func newFixture(t *testing.T, mutate ...func(*security.Config)) *fixture {
	t.Helper()

	auth := users(t)
	bc, err := bearer.New(bearer.Config{Name: "BearerClient", Secret: secret})
	require.NoError(t, err)

	formA := form.New(form.Config{Name: "FormClient", LoginURL: "/login"}, auth)
	formB := form.New(form.Config{Name: "OtherForm", LoginURL: "/other-login"}, auth)

	clients, err := client.NewRegistry(
		client.WithClients(formA, formB, bc, basic.New(auth), failingClient{}),
		client.WithDefaultClients("FormClient"),
		client.WithCallbackURL("/callback"),
	)
	require.NoError(t, err)

	authorizers, err := authz.NewRegistry(
		authz.WithAuthorizer("admin", authz.RequireAnyRole("admin")),
		authz.WithAuthorizer("broken", authz.Func(func(handler.Context, []*profile.Profile) (bool, error) {
			return false, errors.New("policy service down")
		})),
	)
	require.NoError(t, err)

	enc, err := encrypter.NewRandom()
	require.NoError(t, err)
	z, err := serializer.NewZstd(0)
	require.NoError(t, err)
	store, err := sessionstore.NewCacheStore(
		cache.NewMemoryStore(128),
		serializer.NewCodec(serializer.New(), z, enc),
		sessionstore.WithPrefix("test"),
	)
	require.NoError(t, err)

	cfg := security.Config{Clients: clients, Authorizers: authorizers, Store: store}
	for _, m := range mutate {
		m(&cfg)
	}
	return &fixture{cfg: cfg, bearer: bc, store: store, observer: &recorder{}}
}

func (f *fixture) logic(t *testing.T) *security.Logic {
	t.Helper()
	l, err := security.New(f.cfg, security.WithObserver(f.observer))
	require.NoError(t, err)
	return l
}

func (f *fixture) callback(t *testing.T) *security.CallbackLogic {
	t.Helper()
	l, err := security.NewCallback(f.cfg, security.WithObserver(f.observer))
	require.NoError(t, err)
	return l
}

func (f *fixture) logout(t *testing.T) *security.LogoutLogic {
	t.Helper()
	l, err := security.NewLogout(f.cfg, security.WithObserver(f.observer))
	require.NoError(t, err)
	return l
}

// login runs a full form login for user through client name.
func (f *fixture) login(t *testing.T, b *browser, name, user string) security.Result {
	t.Helper()
	ctx, rec := b.do(t, request{
		method: http.MethodPost,
		target: "https://example.com" + client.CallbackURL("/callback", name),
		form:   url.Values{"username": {user}, "password": {"s3cret"}},
	})
	res, err := f.callback(t).Perform(ctx, security.CallbackParams{DefaultURL: "/home"})
	require.NoError(t, err)
	b.receive(rec)
	return res
}
