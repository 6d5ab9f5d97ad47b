package http_test

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/aussiebroadwan/foodspot/pkg/foodsdk"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func pngOfSize(n int) []byte {
	b := make([]byte, n)
	copy(b, pngHeader)
	return b
}

func TestUploadRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.registerBusiness(t, "Pho Co", "pho@x.com", "pw", "Sydney")
	c := env.login(t, "pho@x.com", "pw")

	img := pngOfSize(256)
	out, err := c.Upload(ctx, "dish.png", bytes.NewReader(img))
	require.NoError(t, err)
	require.Regexp(t, `^/uploads/\d+-dish\.png$`, out.URL)

	resp, err := env.server.Client().Get(env.server.URL + out.URL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	require.Equal(t, img, readAll(t, resp))

	require.NoError(t, c.DeleteUpload(ctx, out.URL))
	err = c.DeleteUpload(ctx, out.URL)
	requireAPIError(t, err, http.StatusNotFound, foodsdk.ErrorCodeNotFound)

	resp, err = env.server.Client().Get(env.server.URL + out.URL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUploadRejections(t *testing.T) {
	env := newTestEnv(t, withUploadLimit(1024))
	ctx := context.Background()
	env.registerUser(t, "Ana", "ana@x.com", "pw")
	c := env.login(t, "ana@x.com", "pw")

	_, err := c.Upload(ctx, "notes.txt", strings.NewReader("just some text, not an image"))
	requireAPIError(t, err, http.StatusUnsupportedMediaType, foodsdk.ErrorCodeInvalidRequest)

	_, err = c.Upload(ctx, "huge.png", bytes.NewReader(pngOfSize(2048)))
	requireAPIError(t, err, http.StatusRequestEntityTooLarge, foodsdk.ErrorCodeInvalidRequest)

	_, err = c.Upload(ctx, "fits.png", bytes.NewReader(pngOfSize(1024)))
	require.NoError(t, err)

	for _, bad := range []string{"/uploads/../foodspot.db", "/elsewhere/x.png", "/uploads/"} {
		err = c.DeleteUpload(ctx, bad)
		requireAPIError(t, err, http.StatusBadRequest, foodsdk.ErrorCodeInvalidRequest)
	}
}

func TestUploadRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/upload", nil, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = env.do(t, http.MethodDelete, "/api/upload?url=/uploads/x.png", nil, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUploadsHaveNoDirectoryListing(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.server.Client().Get(env.server.URL + "/uploads/")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
