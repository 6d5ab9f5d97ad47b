package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/service"
	"github.com/aussiebroadwan/foodspot/pkg/foodsdk"
	"github.com/aussiebroadwan/foodspot/pkg/httpx"
)

type RegisterBusinessHandler struct {
	Registration *service.RegistrationService
}

// ServeHTTP handles POST /api/businesses
//
//	@Summary		Register a business
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		foodsdk.RegisterBusinessRequest	true	"New business"
//	@Success		201		{object}	foodsdk.Business
//	@Failure		400		{object}	foodsdk.ErrorResponse	"validation_error"
//	@Failure		409		{object}	foodsdk.ErrorResponse	"email_taken"
//	@Failure		429		{object}	foodsdk.ErrorResponse	"rate_limit_exceeded"
//	@Router			/api/businesses [post].
func (h *RegisterBusinessHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req foodsdk.RegisterBusinessRequest
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

	b, err := h.Registration.RegisterBusiness(r.Context(), service.RegisterBusinessInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Description: req.Description,
		Address:     req.Address,
		Image:       req.Image,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, businessView(b))
}
