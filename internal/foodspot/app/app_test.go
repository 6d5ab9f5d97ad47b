package app

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/foodspot/pkg/foodsdk"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, dir string) *Application {
	t.Helper()
	t.Setenv("DB_DSN", "file:"+filepath.Join(dir, "foodspot.db"))
	t.Setenv("UPLOAD_DIR", filepath.Join(dir, "uploads"))
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("JWT_KEY_MODE", "persistent")
	t.Setenv("MASTER_KEY", base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{3}, 32)))

	app, err := New(LoadConfig())
	require.NoError(t, err)
	return app
}

func TestApplicationServesAPI(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	t.Cleanup(func() { _ = app.db.Close() })

	srv := httptest.NewServer(app.Handler())
	t.Cleanup(srv.Close)

	ctx := context.Background()
	c := foodsdk.NewClient(srv.URL)

	ready, err := c.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)

	_, err = c.RegisterUser(ctx, foodsdk.RegisterUserRequest{Name: "Ana", Email: "ana@x.com", Password: "pw"})
	require.NoError(t, err)
	sess, err := c.Login(ctx, foodsdk.LoginRequest{Email: "ana@x.com", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, foodsdk.RoleUser, sess.Role)
}

func TestPersistentKeysSurviveRestart(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first := newTestApp(t, dir)
	srv := httptest.NewServer(first.Handler())
	c := foodsdk.NewClient(srv.URL)
	_, err := c.RegisterUser(ctx, foodsdk.RegisterUserRequest{Name: "Ana", Email: "ana@x.com", Password: "pw"})
	require.NoError(t, err)
	_, err = c.Login(ctx, foodsdk.LoginRequest{Email: "ana@x.com", Password: "pw"})
	require.NoError(t, err)
	srv.Close()
	require.NoError(t, first.db.Close())

	second := newTestApp(t, dir)
	t.Cleanup(func() { _ = second.db.Close() })
	srv = httptest.NewServer(second.Handler())
	t.Cleanup(srv.Close)

	// Same cookie jar, new process.
	c.BaseURL = srv.URL
	sess, err := c.Session(ctx)
	require.NoError(t, err)
	require.Equal(t, "ana@x.com", sess.Email)
}
