package http

import (
	"net/http"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/service"
	"github.com/aussiebroadwan/foodspot/pkg/foodsdk"
	"github.com/aussiebroadwan/foodspot/pkg/httpx"
	"github.com/aussiebroadwan/foodspot/pkg/slogx"
)

type RevokeHandler struct {
	Revocations *service.RevocationService
	Sessions    *Sessions
}

// ServeHTTP handles POST /api/auth/revoke
//
//	@Summary		Log out everywhere
//	@Description	Records a revocation for every session of the caller's account that exists now, then clears the cookie.
//	@Description	enforced is false when the server does not check revocations, in which case other sessions stay valid until they expire.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	foodsdk.RevokeResponse
//	@Failure		401	{object}	foodsdk.ErrorResponse	"unauthenticated"
//	@Router			/api/auth/revoke [post].
func (h *RevokeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess := CurrentSession(r)
	if err := h.Revocations.RevokeAll(r.Context(), sess.Identity.ID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	enforced := h.Sessions.RevocationEnforced()
	if !enforced {
		slogx.FromContext(r.Context()).Warn("sessions revoked but revocation check is disabled",
			"account_id", sess.Identity.ID,
		)
	}

	h.Sessions.ClearCookie(w)
	httpx.WriteJSON(w, http.StatusOK, foodsdk.RevokeResponse{Revoked: true, Enforced: enforced})
}
