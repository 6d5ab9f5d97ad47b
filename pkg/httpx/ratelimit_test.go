package httpx_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/foodspot/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestIPKeyExtractor(t *testing.T) {
	t.Run("remote addr", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		require.Equal(t, "192.168.1.1", httpx.IPKeyExtractor(req))
	})

	t.Run("prefers X-Forwarded-For", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req.Header.Set("X-Forwarded-For", "203.0.113.1, 192.168.1.1")
		require.Equal(t, "203.0.113.1", httpx.IPKeyExtractor(req))
	})

	t.Run("falls back to X-Real-IP", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Real-IP", "203.0.113.2")
		require.Equal(t, "203.0.113.2", httpx.IPKeyExtractor(req))
	})
}

func TestJSONFieldKeyExtractorRestoresBody(t *testing.T) {
	body := `{"email":" Bao@Example.com ","password":"pw"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))

	require.Equal(t, "bao@example.com", httpx.JSONFieldKeyExtractor("email")(req))

	// The handler still sees the full body
	rest, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	require.Equal(t, body, string(rest))
}

func TestJSONFieldKeyExtractorIgnoresBadBodies(t *testing.T) {
	for _, body := range []string{"", "not json", `{"email":42}`} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		require.Empty(t, httpx.JSONFieldKeyExtractor("email")(req), body)
	}
}

func TestCompositeKeyExtractor(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@x.com"}`))
	req.RemoteAddr = "10.0.0.1:1"

	key := httpx.CompositeKeyExtractor(":", httpx.IPKeyExtractor, httpx.JSONFieldKeyExtractor("email"))(req)
	require.Equal(t, "10.0.0.1:a@x.com", key)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.RemoteAddr = "10.0.0.1:1"
	key = httpx.CompositeKeyExtractor(":", httpx.IPKeyExtractor, httpx.JSONFieldKeyExtractor("email"))(req)
	require.Equal(t, "10.0.0.1", key)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitBlocksAfterBurst(t *testing.T) {
	h := httpx.RateLimit(httpx.RateLimitConfig{
		RequestsPerWindow: 3,
		Window:            time.Hour,
		Burst:             3,
	}, httpx.IPKeyExtractor)(okHandler())

	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:1"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.1:1"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
	require.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
	require.Contains(t, rec.Body.String(), "rate_limit_exceeded")

	// Separate bucket per key
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.2:1"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitSkipsEmptyKey(t *testing.T) {
	h := httpx.RateLimit(httpx.PerMinute(1, 1), func(*http.Request) string { return "" })(okHandler())

	for range 5 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}
