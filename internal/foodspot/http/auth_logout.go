package http

import (
	"net/http"

	"github.com/aussiebroadwan/foodspot/pkg/foodsdk"
	"github.com/aussiebroadwan/foodspot/pkg/httpx"
)

type LogoutHandler struct {
	Sessions *Sessions
}

// ServeHTTP handles POST /api/auth/logout
//
//	@Summary		Log out
//	@Description	Clears the session cookie. Always succeeds, with or without a session.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	foodsdk.LogoutResponse
//	@Router			/api/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	h.Sessions.ClearCookie(w)
	httpx.WriteJSON(w, http.StatusOK, foodsdk.LogoutResponse{LoggedOut: true})
}
