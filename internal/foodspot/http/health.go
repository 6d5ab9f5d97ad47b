package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/store"
	"github.com/aussiebroadwan/foodspot/pkg/foodsdk"
	"github.com/aussiebroadwan/foodspot/pkg/httpx"
	"github.com/aussiebroadwan/foodspot/pkg/jwtx"
)

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe returning status, uptime and version. Always 200 while the process serves requests.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	foodsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, foodsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe checking the database and the session signing keys.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	foodsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	foodsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store, keys *jwtx.KeyManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &foodsdk.HealthChecks{
			Database: "ok",
			Signer:   "ok",
		}
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		if !keys.IsReady() {
			checks.Signer = "error: no keys loaded"
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, foodsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
