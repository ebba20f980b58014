package sessionstore_test

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gatekeeper/core/encrypter"
	"github.com/dmitrymomot/gatekeeper/core/handler"
	"github.com/dmitrymomot/gatekeeper/core/profile"
	"github.com/dmitrymomot/gatekeeper/core/serializer"
)

// browser carries cookies between requests the way a user agent would.
type browser struct {
	jar []*http.Cookie
}

func (b *browser) request(t *testing.T) (*handler.HTTPContext, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "https://example.com/app", nil)
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

func (b *browser) cookie(name string) (*http.Cookie, bool) {
	for _, c := range b.jar {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

func newCodec(t *testing.T) *serializer.Codec {
	t.Helper()
	enc, err := encrypter.NewRandom()
	require.NoError(t, err)
	z, err := serializer.NewZstd(0)
	require.NoError(t, err)
	return serializer.NewCodec(serializer.New(), z, enc)
}

func profileWithSecret() *profile.Profile {
	p := profile.New("user-1", "FormClient")
	p.AddRoles("admin")
	p.SetAttribute("email", "user@example.com")
	p.SetSensitive("password", "hunter2")
	return p
}

func randomText(t *testing.T, n int) string {
	t.Helper()
	b := make([]byte, n/2)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return hex.EncodeToString(b)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Bool(1), args.Error(2)
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *mockCache) Remove(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
