package http

import (
	"net/http"

	"github.com/aussiebroadwan/foodspot/pkg/httpx"
)

// SessionHandler reports the session materialized from the request cookie.
type SessionHandler struct{}

// ServeHTTP handles GET /api/auth/session
//
//	@Summary		Current session
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	foodsdk.SessionResponse
//	@Failure		401	{object}	foodsdk.ErrorResponse	"unauthenticated"
//	@Router			/api/auth/session [get].
func (SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess := CurrentSession(r)
	if sess == nil {
		writeUnauthenticated(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sessionView(*sess))
}
