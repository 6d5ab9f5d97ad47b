package http

import (
	"net/http"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/domain"
	"github.com/aussiebroadwan/foodspot/internal/foodspot/service"
	"github.com/aussiebroadwan/foodspot/pkg/foodsdk"
	"github.com/aussiebroadwan/foodspot/pkg/httpx"
)

// FoodsHandler serves menus. Mutations are scoped to the session's business.
type FoodsHandler struct {
	Foods *service.FoodService
}

// HandleList handles GET /api/foods
//
//	@Summary		List foods
//	@Description	Newest first. A food matches the category filter when it carries any of the given categories.
//	@Tags			Foods
//	@Produce		json
//	@Param			category	query		[]string	false	"Category, repeatable"	collectionFormat(multi)
//	@Param			city		query		string		false	"Case-insensitive substring of the business address"
//	@Param			q			query		string		false	"Case-insensitive substring of the name or a category"
//	@Success		200			{array}		foodsdk.Food
//	@Router			/api/foods [get].
func (h *FoodsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	foods, err := h.Foods.ListFoods(r.Context(), domain.FoodFilter{
		Categories: q["category"],
		City:       q.Get("city"),
		Query:      q.Get("q"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, foodViews(foods))
}

// HandleGet handles GET /api/foods/{id}
//
//	@Summary		Food detail
//	@Tags			Foods
//	@Produce		json
//	@Param			id	path		string	true	"Food id"
//	@Success		200	{object}	foodsdk.FoodDetail
//	@Failure		404	{object}	foodsdk.ErrorResponse	"not_found"
//	@Router			/api/foods/{id} [get].
func (h *FoodsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Foods.GetFood(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, foodDetailView(detail))
}

// HandleListOwn handles GET /api/foods/business
//
//	@Summary		Own menu
//	@Tags			Foods
//	@Produce		json
//	@Success		200	{array}		foodsdk.Food
//	@Failure		401	{object}	foodsdk.ErrorResponse	"unauthenticated"
//	@Failure		403	{object}	foodsdk.ErrorResponse	"role_mismatch"
//	@Router			/api/foods/business [get].
func (h *FoodsHandler) HandleListOwn(w http.ResponseWriter, r *http.Request) {
	sess := CurrentSession(r)
	foods, err := h.Foods.ListBusinessFoods(r.Context(), sess.Identity.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, foodViews(foods))
}

// HandleCreate handles POST /api/foods
//
//	@Summary		Create food
//	@Tags			Foods
//	@Accept			json
//	@Produce		json
//	@Param			request	body		foodsdk.FoodRequest	true	"Food"
//	@Success		201		{object}	foodsdk.Food
//	@Failure		400		{object}	foodsdk.ErrorResponse	"validation_error"
//	@Failure		401		{object}	foodsdk.ErrorResponse	"unauthenticated"
//	@Failure		403		{object}	foodsdk.ErrorResponse	"role_mismatch"
//	@Router			/api/foods [post].
func (h *FoodsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	sess := CurrentSession(r)
	in, ok := decodeFood(w, r)
	if !ok {
		return
	}

	food, err := h.Foods.CreateFood(r.Context(), sess.Identity.ID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, foodView(food))
}

// HandleUpdate handles PUT /api/foods/{id}
//
//	@Summary		Update own food
//	@Tags			Foods
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Food id"
//	@Param			request	body		foodsdk.FoodRequest	true	"Food"
//	@Success		200		{object}	foodsdk.Food
//	@Failure		400		{object}	foodsdk.ErrorResponse	"validation_error"
//	@Failure		401		{object}	foodsdk.ErrorResponse	"unauthenticated"
//	@Failure		403		{object}	foodsdk.ErrorResponse	"role_mismatch or forbidden"
//	@Failure		404		{object}	foodsdk.ErrorResponse	"not_found"
//	@Router			/api/foods/{id} [put].
func (h *FoodsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	sess := CurrentSession(r)
	in, ok := decodeFood(w, r)
	if !ok {
		return
	}

	food, err := h.Foods.UpdateFood(r.Context(), sess.Identity.ID, r.PathValue("id"), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, foodView(food))
}

// HandleDelete handles DELETE /api/foods/{id}
//
//	@Summary		Delete own food
//	@Description	Removes the food with its likes, comments and reviews.
//	@Tags			Foods
//	@Param			id	path	string	true	"Food id"
//	@Success		204
//	@Failure		401	{object}	foodsdk.ErrorResponse	"unauthenticated"
//	@Failure		403	{object}	foodsdk.ErrorResponse	"role_mismatch or forbidden"
//	@Failure		404	{object}	foodsdk.ErrorResponse	"not_found"
//	@Router			/api/foods/{id} [delete].
func (h *FoodsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	sess := CurrentSession(r)
	if err := h.Foods.DeleteFood(r.Context(), sess.Identity.ID, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

func decodeFood(w http.ResponseWriter, r *http.Request) (service.FoodInput, bool) {
	var req foodsdk.FoodRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return service.FoodInput{}, false
	}
	if errs := req.Validate(); errs != nil {
		httpx.WriteValidationError(w, errs)
		return service.FoodInput{}, false
	}
	return service.FoodInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.Price,
		Image:       req.Image,
		Categories:  req.Categories,
	}, true
}
