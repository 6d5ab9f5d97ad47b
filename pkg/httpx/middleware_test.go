package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/foodspot/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mw("outer"), mw("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestTimeoutSetsDeadline(t *testing.T) {
	var deadline time.Time
	h := httpx.Timeout(time.Second)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		deadline, _ = r.Context().Deadline()
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.WithinDuration(t, time.Now().Add(time.Second), deadline, time.Second)
}

func TestRecover(t *testing.T) {
	h := httpx.Recover()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "server_error")
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Email string `json:"email"`
	}

	cases := []struct {
		name    string
		payload string
		wantErr string
	}{
		{"ok", `{"email":"a@x.com"}`, ""},
		{"empty", ``, "empty"},
		{"unknown field", `{"email":"a@x.com","admin":true}`, "unknown field"},
		{"two objects", `{"email":"a"}{"email":"b"}`, "single JSON object"},
		{"too large", `{"email":"` + strings.Repeat("a", httpx.MaxJSONBody) + `"}`, "exceeds"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var dst body
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.payload))
			err := httpx.DecodeJSON(httptest.NewRecorder(), req, &dst)
			if tc.wantErr == "" {
				require.NoError(t, err)
				require.Equal(t, "a@x.com", dst.Email)
				return
			}
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteError(rec, http.StatusForbidden, "role_mismatch", "this action requires a business account")

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"error":"role_mismatch","error_description":"this action requires a business account"}`, rec.Body.String())
}

func TestWriteValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteValidationError(rec, map[string]string{"email": "required"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"validation_error","error_description":"request has invalid fields","details":{"email":"required"}}`, rec.Body.String())
}
