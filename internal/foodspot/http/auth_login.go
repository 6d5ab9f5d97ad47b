package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/service"
	"github.com/aussiebroadwan/foodspot/pkg/foodsdk"
	"github.com/aussiebroadwan/foodspot/pkg/httpx"
	"github.com/aussiebroadwan/foodspot/pkg/slogx"
)

type LoginHandler struct {
	Verifier *service.CredentialVerifier
	Sessions *Sessions
}

// ServeHTTP handles POST /api/auth/login
//
//	@Summary		Log in
//	@Description	Verifies email and password against both account kinds and sets the session cookie.
//	@Description	The role comes from the account found; accountKind is only logged.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		foodsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	foodsdk.SessionResponse
//	@Header			200		{string}	Set-Cookie	"foodspot.session-token"
//	@Failure		400		{object}	foodsdk.ErrorResponse	"missing_credentials"
//	@Failure		401		{object}	foodsdk.ErrorResponse	"invalid_credentials"
//	@Failure		409		{object}	foodsdk.ErrorResponse	"ambiguous_account"
//	@Failure		429		{object}	foodsdk.ErrorResponse	"rate_limit_exceeded"
//	@Router			/api/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req foodsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	identity, err := h.Verifier.Verify(ctx, req.Email, req.Password)
	if err != nil {
		log.Info("login failed", "account_kind_hint", req.AccountKind, "error", err)
		writeServiceError(w, r, err)
		return
	}

	sess, err := h.Sessions.StartSession(w, identity)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	hint := strings.ToLower(strings.TrimSpace(req.AccountKind))
	if hint != "" && hint != identity.Role.String() {
		log.Info("login account kind hint differs from account",
			"account_kind_hint", hint,
			"role", identity.Role.String(),
		)
	}
	log.Info("login succeeded", "account_id", identity.ID, "role", identity.Role.String(), "account_kind_hint", hint)
	httpx.WriteJSON(w, http.StatusOK, sessionView(sess))
}
