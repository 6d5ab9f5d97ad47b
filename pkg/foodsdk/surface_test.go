package foodsdk_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/foodspot/pkg/foodsdk"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// fakeServer signs in "biz@x.com" as a business and anyone else as a user.
type fakeServer struct {
	*httptest.Server
	logouts atomic.Int32
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	fs := &fakeServer{}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req foodsdk.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "pw" {
			writeJSON(w, http.StatusUnauthorized, foodsdk.ErrorResponse{Error: foodsdk.ErrorCodeInvalidCredentials})
			return
		}
		role := foodsdk.RoleUser
		if req.Email == "biz@x.com" {
			role = foodsdk.RoleBusiness
		}
		http.SetCookie(w, &http.Cookie{Name: "foodspot.session-token", Value: role, Path: "/"})
		writeJSON(w, http.StatusOK, foodsdk.SessionResponse{
			Identity:  foodsdk.Identity{ID: "id-" + role, Name: "N", Email: req.Email, Role: role},
			ExpiresAt: testNow.Add(30 * 24 * time.Hour),
		})
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		fs.logouts.Add(1)
		http.SetCookie(w, &http.Cookie{Name: "foodspot.session-token", Path: "/", MaxAge: -1})
		writeJSON(w, http.StatusOK, foodsdk.LogoutResponse{LoggedOut: true})
	})
	mux.HandleFunc("GET /api/auth/session", func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("foodspot.session-token")
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, foodsdk.ErrorResponse{Error: foodsdk.ErrorCodeUnauthenticated})
			return
		}
		writeJSON(w, http.StatusOK, foodsdk.SessionResponse{
			Identity:  foodsdk.Identity{ID: "id-" + c.Value, Role: c.Value},
			ExpiresAt: testNow.Add(30 * 24 * time.Hour),
		})
	})
	mux.HandleFunc("POST /api/foods", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, foodsdk.ErrorResponse{Error: foodsdk.ErrorCodeUnauthenticated})
	})

	fs.Server = httptest.NewServer(mux)
	t.Cleanup(fs.Close)
	return fs
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func newClient(t *testing.T, srv *fakeServer) (*foodsdk.Client, *[]foodsdk.State) {
	t.Helper()
	c := foodsdk.NewClient(srv.URL)
	c.Now = func() time.Time { return testNow }
	var seen []foodsdk.State
	c.OnStateChange = func(_, to foodsdk.State) { seen = append(seen, to) }
	return c, &seen
}

func TestEnterSurfaceWithMatchingRole(t *testing.T) {
	srv := newFakeServer(t)
	c, _ := newClient(t, srv)
	ctx := context.Background()

	_, err := c.EnterSurface(ctx, foodsdk.SurfaceConsumer)
	require.ErrorIs(t, err, foodsdk.ErrNoSession)

	_, err = c.Login(ctx, foodsdk.LoginRequest{Email: "ana@x.com", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, foodsdk.StateAuthenticatedUser, c.State())

	id, err := c.EnterSurface(ctx, foodsdk.SurfaceConsumer)
	require.NoError(t, err)
	require.Equal(t, foodsdk.RoleUser, id.Role)
	require.Zero(t, srv.logouts.Load())
}

func TestEnterSurfaceWithWrongRoleSignsOut(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		surface   foodsdk.Surface
		required  string
		loginPath string
		signedIn  foodsdk.State
	}{
		{"user in business console", "ana@x.com", foodsdk.SurfaceBusinessConsole, foodsdk.RoleBusiness, "/business/login", foodsdk.StateAuthenticatedUser},
		{"business in consumer app", "biz@x.com", foodsdk.SurfaceConsumer, foodsdk.RoleUser, "/login", foodsdk.StateAuthenticatedBusiness},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := newFakeServer(t)
			c, seen := newClient(t, srv)
			ctx := context.Background()

			_, err := c.Login(ctx, foodsdk.LoginRequest{Email: tc.email, Password: "pw"})
			require.NoError(t, err)

			_, err = c.EnterSurface(ctx, tc.surface)
			var mismatch *foodsdk.RoleMismatchError
			require.ErrorAs(t, err, &mismatch)
			require.Equal(t, tc.required, mismatch.Required)
			require.Equal(t, tc.loginPath, mismatch.LoginPath)
			require.Contains(t, mismatch.Error(), tc.loginPath)

			require.Equal(t, foodsdk.StateUnauthenticated, c.State())
			require.Nil(t, c.Identity())
			require.EqualValues(t, 1, srv.logouts.Load())
			require.Equal(t, []foodsdk.State{
				tc.signedIn,
				foodsdk.StateRoleMismatch,
				foodsdk.StateUnauthenticated,
			}, *seen)

			// The cookie is gone too.
			_, err = c.Session(ctx)
			require.ErrorIs(t, err, foodsdk.ErrNoSession)
		})
	}
}

func TestExpiredSessionIsDroppedLocally(t *testing.T) {
	srv := newFakeServer(t)
	c, _ := newClient(t, srv)
	ctx := context.Background()

	_, err := c.Login(ctx, foodsdk.LoginRequest{Email: "ana@x.com", Password: "pw"})
	require.NoError(t, err)

	c.Now = func() time.Time { return testNow.Add(30 * 24 * time.Hour) }
	_, err = c.EnterSurface(ctx, foodsdk.SurfaceConsumer)
	require.ErrorIs(t, err, foodsdk.ErrNoSession)
	require.Equal(t, foodsdk.StateUnauthenticated, c.State())
}

func TestUnauthorizedResponseSignsOut(t *testing.T) {
	srv := newFakeServer(t)
	c, _ := newClient(t, srv)
	ctx := context.Background()

	_, err := c.Login(ctx, foodsdk.LoginRequest{Email: "biz@x.com", Password: "pw"})
	require.NoError(t, err)

	_, err = c.CreateFood(ctx, foodsdk.FoodRequest{Name: "Pho", Price: 100})
	require.True(t, foodsdk.IsCode(err, foodsdk.ErrorCodeUnauthenticated))
	require.Equal(t, foodsdk.StateUnauthenticated, c.State())

	_, err = c.CreateFood(ctx, foodsdk.FoodRequest{Name: "Pho", Price: 100})
	require.ErrorIs(t, err, foodsdk.ErrNoSession)
}

func TestLoginFailureKeepsClientSignedOut(t *testing.T) {
	srv := newFakeServer(t)
	c, _ := newClient(t, srv)

	_, err := c.Login(context.Background(), foodsdk.LoginRequest{Email: "ana@x.com", Password: "bad"})
	var apiErr *foodsdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, foodsdk.StateUnauthenticated, c.State())

	_, err = c.Login(context.Background(), foodsdk.LoginRequest{Email: "ana"})
	var verr *foodsdk.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestLogoutWithoutServerStillSignsOut(t *testing.T) {
	srv := newFakeServer(t)
	c, _ := newClient(t, srv)
	ctx := context.Background()

	_, err := c.Login(ctx, foodsdk.LoginRequest{Email: "ana@x.com", Password: "pw"})
	require.NoError(t, err)

	srv.Close()
	require.Error(t, c.Logout(ctx))
	require.Equal(t, foodsdk.StateUnauthenticated, c.State())
}
