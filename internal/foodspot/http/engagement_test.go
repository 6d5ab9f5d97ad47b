package http_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/aussiebroadwan/foodspot/pkg/foodsdk"
	"github.com/stretchr/testify/require"
)

func TestEngagementFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.registerBusiness(t, "Pho Co", "pho@x.com", "pw", "Sydney")
	env.registerUser(t, "Ana", "ana@x.com", "pw")
	env.registerUser(t, "Bo", "bo@x.com", "pw")

	pho := env.login(t, "pho@x.com", "pw")
	ana := env.login(t, "ana@x.com", "pw")
	bo := env.login(t, "bo@x.com", "pw")

	food, err := pho.CreateFood(ctx, foodsdk.FoodRequest{Name: "Beef Pho", Price: 1450})
	require.NoError(t, err)

	// Likes are idempotent both ways.
	require.NoError(t, ana.Like(ctx, food.ID))
	require.NoError(t, ana.Like(ctx, food.ID))
	require.NoError(t, bo.Like(ctx, food.ID))
	require.NoError(t, bo.Unlike(ctx, food.ID))
	require.NoError(t, bo.Unlike(ctx, food.ID))

	comment, err := ana.AddComment(ctx, food.ID, "  great broth  ")
	require.NoError(t, err)
	require.Equal(t, "great broth", comment.Body)
	require.Equal(t, "Ana", comment.UserName)

	_, err = ana.Review(ctx, food.ID, foodsdk.ReviewRequest{Rating: 2})
	require.NoError(t, err)
	review, err := ana.Review(ctx, food.ID, foodsdk.ReviewRequest{Rating: 5, Body: "changed my mind"})
	require.NoError(t, err)
	require.Equal(t, 5, review.Rating)
	_, err = bo.Review(ctx, food.ID, foodsdk.ReviewRequest{Rating: 4})
	require.NoError(t, err)

	detail, err := env.client().GetFood(ctx, food.ID)
	require.NoError(t, err)
	require.Equal(t, 1, detail.LikeCount)
	require.Equal(t, 1, detail.CommentCount)
	require.Equal(t, 2, detail.ReviewCount)
	require.Equal(t, 4.5, detail.AverageRating)
	require.Len(t, detail.Comments, 1)
	require.Len(t, detail.Reviews, 2)

	// Only the author deletes a comment.
	err = bo.DeleteComment(ctx, comment.ID)
	requireAPIError(t, err, http.StatusForbidden, foodsdk.ErrorCodeForbidden)
	require.NoError(t, ana.DeleteComment(ctx, comment.ID))
	err = ana.DeleteComment(ctx, comment.ID)
	requireAPIError(t, err, http.StatusNotFound, foodsdk.ErrorCodeNotFound)

	profile, err := ana.GetProfile(ctx)
	require.NoError(t, err)
	require.Len(t, profile.LikedFoods, 1)
	require.Equal(t, food.ID, profile.LikedFoods[0].ID)
}

func TestEngagementRejectsBusinessSessions(t *testing.T) {
	env := newTestEnv(t)
	env.registerBusiness(t, "Pho Co", "pho@x.com", "pw", "Sydney")
	cookie := env.loginCookie(t, "pho@x.com", "pw")

	requests := []struct {
		method, path string
		body         any
	}{
		{http.MethodPost, "/api/likes", foodsdk.LikeRequest{FoodID: "f"}},
		{http.MethodDelete, "/api/likes", foodsdk.LikeRequest{FoodID: "f"}},
		{http.MethodPost, "/api/foods/f/comments", foodsdk.CommentRequest{Body: "hi"}},
		{http.MethodDelete, "/api/comments/c", nil},
		{http.MethodPost, "/api/foods/f/reviews", foodsdk.ReviewRequest{Rating: 5}},
		{http.MethodGet, "/api/users/me", nil},
	}
	for _, rq := range requests {
		t.Run(rq.method+" "+rq.path, func(t *testing.T) {
			resp := env.do(t, rq.method, rq.path, rq.body, cookie)
			require.Equal(t, http.StatusForbidden, resp.StatusCode)
			body := decode[foodsdk.ErrorResponse](t, resp)
			require.Equal(t, "role_mismatch", body.Error)
			require.Equal(t, "this action requires a user account", body.ErrorDescription)
		})
	}
}

func TestEngagementValidation(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "Ana", "ana@x.com", "pw")
	cookie := env.loginCookie(t, "ana@x.com", "pw")

	resp := env.do(t, http.MethodPost, "/api/foods/f/comments", foodsdk.CommentRequest{Body: strings.Repeat("a", 1001)}, cookie)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/foods/f/reviews", foodsdk.ReviewRequest{Rating: 6}, cookie)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/likes", foodsdk.LikeRequest{FoodID: "missing"}, cookie)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/foods/missing/comments", foodsdk.CommentRequest{Body: "hi"}, cookie)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
