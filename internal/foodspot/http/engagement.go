package http

import (
	"net/http"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/service"
	"github.com/aussiebroadwan/foodspot/pkg/foodsdk"
	"github.com/aussiebroadwan/foodspot/pkg/httpx"
)

// EngagementHandler serves likes, comments and reviews. Only user sessions
// reach it.
type EngagementHandler struct {
	Engagement *service.EngagementService
}

// HandleLike handles POST /api/likes
//
//	@Summary		Like a food
//	@Tags			Engagement
//	@Accept			json
//	@Produce		json
//	@Param			request	body		foodsdk.LikeRequest	true	"Food to like"
//	@Success		200		{object}	foodsdk.LikeResponse
//	@Failure		401		{object}	foodsdk.ErrorResponse	"unauthenticated"
//	@Failure		403		{object}	foodsdk.ErrorResponse	"role_mismatch"
//	@Failure		404		{object}	foodsdk.ErrorResponse	"not_found"
//	@Router			/api/likes [post].
func (h *EngagementHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	h.handleLike(w, r, true)
}

// HandleUnlike handles DELETE /api/likes
//
//	@Summary		Unlike a food
//	@Tags			Engagement
//	@Accept			json
//	@Produce		json
//	@Param			request	body		foodsdk.LikeRequest	true	"Food to unlike"
//	@Success		200		{object}	foodsdk.LikeResponse
//	@Failure		401		{object}	foodsdk.ErrorResponse	"unauthenticated"
//	@Failure		403		{object}	foodsdk.ErrorResponse	"role_mismatch"
//	@Router			/api/likes [delete].
func (h *EngagementHandler) HandleUnlike(w http.ResponseWriter, r *http.Request) {
	h.handleLike(w, r, false)
}

func (h *EngagementHandler) handleLike(w http.ResponseWriter, r *http.Request, like bool) {
	sess := CurrentSession(r)

	var req foodsdk.LikeRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if errs := req.Validate(); errs != nil {
		httpx.WriteValidationError(w, errs)
		return
	}

	var err error
	if like {
		err = h.Engagement.Like(r.Context(), sess.Identity.ID, req.FoodID)
	} else {
		err = h.Engagement.Unlike(r.Context(), sess.Identity.ID, req.FoodID)
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, foodsdk.LikeResponse{FoodID: req.FoodID, Liked: like})
}

// HandleComment handles POST /api/foods/{id}/comments
//
//	@Summary		Comment on a food
//	@Tags			Engagement
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Food id"
//	@Param			request	body		foodsdk.CommentRequest	true	"Comment"
//	@Success		201		{object}	foodsdk.Comment
//	@Failure		400		{object}	foodsdk.ErrorResponse	"validation_error"
//	@Failure		401		{object}	foodsdk.ErrorResponse	"unauthenticated"
//	@Failure		403		{object}	foodsdk.ErrorResponse	"role_mismatch"
//	@Failure		404		{object}	foodsdk.ErrorResponse	"not_found"
//	@Router			/api/foods/{id}/comments [post].
func (h *EngagementHandler) HandleComment(w http.ResponseWriter, r *http.Request) {
	sess := CurrentSession(r)

	var req foodsdk.CommentRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if errs := req.Validate(); errs != nil {
		httpx.WriteValidationError(w, errs)
		return
	}

	c, err := h.Engagement.AddComment(r.Context(), sess.Identity.ID, r.PathValue("id"), req.Body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, commentView(c))
}

// HandleDeleteComment handles DELETE /api/comments/{id}
//
//	@Summary		Delete own comment
//	@Tags			Engagement
//	@Param			id	path	string	true	"Comment id"
//	@Success		204
//	@Failure		401	{object}	foodsdk.ErrorResponse	"unauthenticated"
//	@Failure		403	{object}	foodsdk.ErrorResponse	"role_mismatch or forbidden"
//	@Failure		404	{object}	foodsdk.ErrorResponse	"not_found"
//	@Router			/api/comments/{id} [delete].
func (h *EngagementHandler) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	sess := CurrentSession(r)
	if err := h.Engagement.DeleteComment(r.Context(), sess.Identity.ID, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleReview handles POST /api/foods/{id}/reviews
//
//	@Summary		Review a food
//	@Description	One review per user and food; posting again replaces it.
//	@Tags			Engagement
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Food id"
//	@Param			request	body		foodsdk.ReviewRequest	true	"Review"
//	@Success		200		{object}	foodsdk.Review
//	@Failure		400		{object}	foodsdk.ErrorResponse	"validation_error"
//	@Failure		401		{object}	foodsdk.ErrorResponse	"unauthenticated"
//	@Failure		403		{object}	foodsdk.ErrorResponse	"role_mismatch"
//	@Failure		404		{object}	foodsdk.ErrorResponse	"not_found"
//	@Router			/api/foods/{id}/reviews [post].
func (h *EngagementHandler) HandleReview(w http.ResponseWriter, r *http.Request) {
	sess := CurrentSession(r)

	var req foodsdk.ReviewRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if errs := req.Validate(); errs != nil {
		httpx.WriteValidationError(w, errs)
		return
	}

	review, err := h.Engagement.ReviewFood(r.Context(), sess.Identity.ID, r.PathValue("id"), req.Rating, req.Body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, reviewView(review))
}
