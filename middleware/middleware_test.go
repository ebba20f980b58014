package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gatekeeper/middleware"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	var seen string
	h := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.GetRequestID(r.Context())
		require.True(t, ok)
		seen = id
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDUseExisting(t *testing.T) {
	t.Parallel()

	h := middleware.RequestIDWithConfig(middleware.RequestIDConfig{UseExisting: true})(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	h := middleware.RequestID()(middleware.LoggingWithConfig(middleware.LoggingConfig{
		Logger:     log,
		LogHeaders: true,
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("nope"))
	})))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Basic c2VjcmV0")
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"status_code":403`)
	assert.Contains(t, out, `"path":"/admin"`)
	assert.Contains(t, out, `"request_id"`)
	assert.Contains(t, out, "[REDACTED]")
	assert.NotContains(t, out, "c2VjcmV0")
}

func TestLoggingSkip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := middleware.LoggingWithConfig(middleware.LoggingConfig{
		Logger: slog.New(slog.NewTextHandler(&buf, nil)),
		Skip:   func(r *http.Request) bool { return r.URL.Path == "/health" },
	})(http.NotFoundHandler())

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Empty(t, buf.String())
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	t.Run("balanced", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		middleware.SecurityHeaders()(http.NotFoundHandler()).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "SAMEORIGIN", rec.Header().Get("X-Frame-Options"))
		assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
	})

	t.Run("development drops HSTS", func(t *testing.T) {
		t.Parallel()
		cfg := middleware.StrictSecurity
		cfg.IsDevelopment = true
		cfg.CustomHeaders = map[string]string{"X-Frame-Options": "SAMEORIGIN"}

		rec := httptest.NewRecorder()
		middleware.SecurityHeadersWithConfig(cfg)(http.NotFoundHandler()).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
		assert.Equal(t, "SAMEORIGIN", rec.Header().Get("X-Frame-Options"))
	})
}
