package http_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.client()

	live, err := c.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)
	require.Nil(t, live.Checks)

	ready, err := c.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.Signer)
}

func TestReadinessReportsClosedDatabase(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.store.Close())

	resp := env.do(t, http.MethodGet, "/readyz", nil, nil)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	require.Equal(t, "degraded", body["status"])
}
