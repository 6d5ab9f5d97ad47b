package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/service"
	"github.com/aussiebroadwan/foodspot/pkg/foodsdk"
	"github.com/aussiebroadwan/foodspot/pkg/httpx"
)

// RegisterUserHandler creates user accounts. Registering never signs in.
type RegisterUserHandler struct {
	Registration *service.RegistrationService
}

// ServeHTTP handles POST /api/register
//
//	@Summary		Register a user
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		foodsdk.RegisterUserRequest	true	"New user"
//	@Success		201		{object}	foodsdk.User
//	@Failure		400		{object}	foodsdk.ErrorResponse	"validation_error"
//	@Failure		409		{object}	foodsdk.ErrorResponse	"email_taken"
//	@Failure		429		{object}	foodsdk.ErrorResponse	"rate_limit_exceeded"
//	@Router			/api/register [post].
func (h *RegisterUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req foodsdk.RegisterUserRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = service.NormalizeEmail(req.Email)
	if errs := req.Validate(); errs != nil {
		httpx.WriteValidationError(w, errs)
		return
	}

	u, err := h.Registration.RegisterUser(r.Context(), service.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Image:    req.Image,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, userView(u))
}
