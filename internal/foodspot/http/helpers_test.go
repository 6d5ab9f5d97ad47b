package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	api "github.com/aussiebroadwan/foodspot/internal/foodspot/http"
	"github.com/aussiebroadwan/foodspot/internal/foodspot/media"
	"github.com/aussiebroadwan/foodspot/internal/foodspot/service"
	"github.com/aussiebroadwan/foodspot/internal/foodspot/store/drivers/sqlite"
	"github.com/aussiebroadwan/foodspot/pkg/cryptox"
	"github.com/aussiebroadwan/foodspot/pkg/foodsdk"
	"github.com/aussiebroadwan/foodspot/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// testClock is a settable time source shared by the server under test.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testEnv struct {
	clock  *testClock
	store  *sqlite.Store
	server *httptest.Server
}

type envOption func(*api.Router, *api.Sessions)

func withRevocationCheck(r *api.Router, s *api.Sessions) {
	s.Revocations = r.Revocations
}

func withRateLimit(cfg api.Options) envOption {
	return func(r *api.Router, _ *api.Sessions) {
		r.Options.RateLimitEnabled = true
		r.Options.LoginLimit = cfg.LoginLimit
		r.Options.RegisterLimit = cfg.RegisterLimit
	}
}

func withUploadLimit(n int64) envOption {
	return func(r *api.Router, _ *api.Sessions) { r.Options.UploadMaxBytes = n }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	clock := &testClock{now: testNow}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "foodspot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	keys, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Issuer:   "foodspot",
		Audience: []string{"foodspot-web"},
	}, testNow)
	require.NoError(t, err)

	images, err := media.NewFSStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	hasher := cryptox.NewPasswordHasher(nil)
	sessions := &api.Sessions{
		Codec: &service.SessionCodec{
			Keys:     keys,
			Issuer:   "foodspot",
			Audience: "foodspot-web",
			Now:      clock.Now,
		},
		Now: clock.Now,
	}

	r := api.NewRouter(sessions, keys, "test", st, logger)
	r.Options.RateLimitEnabled = false
	r.Verifier = &service.CredentialVerifier{Store: st, Hasher: hasher}
	r.Registration = &service.RegistrationService{Store: st, Hasher: hasher, Now: clock.Now}
	r.Profiles = &service.ProfileService{Store: st, Now: clock.Now}
	r.Foods = &service.FoodService{Store: st, Now: clock.Now}
	r.Engagement = &service.EngagementService{Store: st, Now: clock.Now}
	r.Revocations = &service.RevocationService{Store: st, Now: clock.Now}
	r.Images = images
	r.Files = images.Handler()

	for _, opt := range opts {
		opt(r, sessions)
	}
	r.ApplyRoutes()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{clock: clock, store: st, server: srv}
}

// client returns an SDK client with its own cookie jar.
func (e *testEnv) client() *foodsdk.Client {
	c := foodsdk.NewClient(e.server.URL)
	c.Now = e.clock.Now
	return c
}

func (e *testEnv) registerUser(t *testing.T, name, email, password string) *foodsdk.User {
	t.Helper()
	u, err := e.client().RegisterUser(context.Background(), foodsdk.RegisterUserRequest{
		Name: name, Email: email, Password: password,
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) registerBusiness(t *testing.T, name, email, password, address string) *foodsdk.Business {
	t.Helper()
	b, err := e.client().RegisterBusiness(context.Background(), foodsdk.RegisterBusinessRequest{
		Name: name, Email: email, Password: password, Address: address,
	})
	require.NoError(t, err)
	return b
}

// login returns a signed-in client.
func (e *testEnv) login(t *testing.T, email, password string) *foodsdk.Client {
	t.Helper()
	c := e.client()
	_, err := c.Login(context.Background(), foodsdk.LoginRequest{Email: email, Password: password})
	require.NoError(t, err)
	return c
}

// do sends a raw JSON request with an optional session cookie.
func (e *testEnv) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *http.Response {
	t.Helper()

	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, e.server.URL+path, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// loginCookie logs in with a raw request and returns the session cookie.
func (e *testEnv) loginCookie(t *testing.T, email, password string) *http.Cookie {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/auth/login", foodsdk.LoginRequest{Email: email, Password: password}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	c := sessionCookie(resp)
	require.NotNil(t, c)
	return c
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == api.SessionCookieName {
			return c
		}
	}
	return nil
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func requireAPIError(t *testing.T, err error, status int, code string) *foodsdk.APIError {
	t.Helper()
	var apiErr *foodsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
	return apiErr
}

func readAll(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return b
}
