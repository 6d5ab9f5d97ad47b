package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/domain"
	"github.com/aussiebroadwan/foodspot/internal/foodspot/service"
	"github.com/aussiebroadwan/foodspot/pkg/foodsdk"
	"github.com/aussiebroadwan/foodspot/pkg/httpx"
	"github.com/aussiebroadwan/foodspot/pkg/slogx"
)

// ProfileHandler serves account profiles. Writes always target the
// session's own account.
type ProfileHandler struct {
	Profiles *service.ProfileService
	Sessions *Sessions
}

// HandleGetUser handles GET /api/users/me
//
//	@Summary		Own user profile
//	@Tags			Profiles
//	@Produce		json
//	@Success		200	{object}	foodsdk.UserProfile
//	@Failure		401	{object}	foodsdk.ErrorResponse	"unauthenticated"
//	@Failure		403	{object}	foodsdk.ErrorResponse	"role_mismatch"
//	@Router			/api/users/me [get].
func (h *ProfileHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	sess := CurrentSession(r)
	profile, err := h.Profiles.GetUserProfile(r.Context(), sess.Identity.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, foodsdk.UserProfile{
		User:       userView(profile.Account),
		LikedFoods: foodViews(profile.LikedFoods),
	})
}

// HandleUpdateUser handles PUT /api/users/me
//
//	@Summary		Update own user profile
//	@Description	Changes name, email or image. The session cookie is re-issued with the new identity.
//	@Tags			Profiles
//	@Accept			json
//	@Produce		json
//	@Param			request	body		foodsdk.UpdateUserRequest	true	"Fields to change"
//	@Success		200		{object}	foodsdk.User
//	@Failure		400		{object}	foodsdk.ErrorResponse	"validation_error"
//	@Failure		401		{object}	foodsdk.ErrorResponse	"unauthenticated"
//	@Failure		403		{object}	foodsdk.ErrorResponse	"role_mismatch"
//	@Failure		409		{object}	foodsdk.ErrorResponse	"email_taken"
//	@Router			/api/users/me [put].
func (h *ProfileHandler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	sess := CurrentSession(r)

	var req foodsdk.UpdateUserRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if req.Email != nil {
		email := service.NormalizeEmail(*req.Email)
		req.Email = &email
	}
	if errs := req.Validate(); errs != nil {
		httpx.WriteValidationError(w, errs)
		return
	}

	u, err := h.Profiles.UpdateUserProfile(r.Context(), sess.Identity.ID, service.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
		Image: req.Image,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.reissue(w, r, *sess, u.Identity())
	httpx.WriteJSON(w, http.StatusOK, userView(u))
}

// HandleGetBusiness handles GET /api/businesses/me
//
//	@Summary		Own business profile
//	@Tags			Profiles
//	@Produce		json
//	@Success		200	{object}	foodsdk.Business
//	@Failure		401	{object}	foodsdk.ErrorResponse	"unauthenticated"
//	@Failure		403	{object}	foodsdk.ErrorResponse	"role_mismatch"
//	@Router			/api/businesses/me [get].
func (h *ProfileHandler) HandleGetBusiness(w http.ResponseWriter, r *http.Request) {
	sess := CurrentSession(r)
	b, err := h.Profiles.GetBusinessProfile(r.Context(), sess.Identity.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, businessView(b))
}

// HandleUpdateBusiness handles PUT /api/businesses/me
//
//	@Summary		Update own business profile
//	@Description	Changes name, description, address or image. The session cookie is re-issued.
//	@Tags			Profiles
//	@Accept			json
//	@Produce		json
//	@Param			request	body		foodsdk.UpdateBusinessRequest	true	"Fields to change"
//	@Success		200		{object}	foodsdk.Business
//	@Failure		400		{object}	foodsdk.ErrorResponse	"validation_error"
//	@Failure		401		{object}	foodsdk.ErrorResponse	"unauthenticated"
//	@Failure		403		{object}	foodsdk.ErrorResponse	"role_mismatch"
//	@Router			/api/businesses/me [put].
func (h *ProfileHandler) HandleUpdateBusiness(w http.ResponseWriter, r *http.Request) {
	sess := CurrentSession(r)

	var req foodsdk.UpdateBusinessRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if errs := req.Validate(); errs != nil {
		httpx.WriteValidationError(w, errs)
		return
	}

	b, err := h.Profiles.UpdateBusinessProfile(r.Context(), sess.Identity.ID, service.UpdateBusinessInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Image:       req.Image,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.reissue(w, r, *sess, b.Identity())
	httpx.WriteJSON(w, http.StatusOK, businessView(b))
}

// reissue puts the updated identity in the cookie. The update is already
// committed, so a failure here only leaves the old identity in the cookie
// until the next login.
func (h *ProfileHandler) reissue(w http.ResponseWriter, r *http.Request, sess service.Session, identity domain.Identity) {
	if _, err := h.Sessions.ReissueSession(w, sess, identity); err != nil {
		slogx.FromContext(r.Context()).Warn("session reissue failed", "error", err)
	}
}

// HandleListBusinesses handles GET /api/businesses
//
//	@Summary		List businesses
//	@Tags			Businesses
//	@Produce		json
//	@Param			city	query		string	false	"Case-insensitive substring of the address"
//	@Success		200		{array}		foodsdk.Business
//	@Router			/api/businesses [get].
func (h *ProfileHandler) HandleListBusinesses(w http.ResponseWriter, r *http.Request) {
	bs, err := h.Profiles.ListBusinesses(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, businessViews(bs))
}

// HandleGetBusinessByID handles GET /api/businesses/{id}
//
//	@Summary		Business with menu
//	@Tags			Businesses
//	@Produce		json
//	@Param			id	path		string	true	"Business id"
//	@Success		200	{object}	foodsdk.BusinessDetail
//	@Failure		404	{object}	foodsdk.ErrorResponse	"not_found"
//	@Router			/api/businesses/{id} [get].
func (h *ProfileHandler) HandleGetBusinessByID(w http.ResponseWriter, r *http.Request) {
	b, foods, err := h.Profiles.GetBusinessWithFoods(r.Context(), r.PathValue("id"))
	if errors.Is(err, service.ErrProfileNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "business not found")
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, foodsdk.BusinessDetail{
		Business: businessView(b),
		Foods:    foodViews(foods),
	})
}
