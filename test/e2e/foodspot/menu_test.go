package foodspot_test

import (
	"bytes"
	"testing"

	"github.com/aussiebroadwan/foodspot/pkg/foodsdk"
	"github.com/stretchr/testify/require"
)

// TestMenuAndEngagementFlow walks a business publishing a dish and a user
// engaging with it.
func TestMenuAndEngagementFlow(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()
	seedAccounts(t, baseURL)
	ctx := t.Context()

	biz := loginAs(t, baseURL, businessEmail, businessPassword)
	_, err := biz.EnterSurface(ctx, foodsdk.SurfaceBusinessConsole)
	require.NoError(t, err)

	png := append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)
	img, err := biz.Upload(ctx, "pho.png", bytes.NewReader(png))
	require.NoError(t, err)

	food, err := biz.CreateFood(ctx, foodsdk.FoodRequest{
		Name:       "Beef Pho",
		Price:      1450,
		Image:      img.URL,
		Categories: []string{"Noodles", "Soup"},
	})
	require.NoError(t, err)

	user := loginAs(t, baseURL, userEmail, userPassword)
	_, err = user.EnterSurface(ctx, foodsdk.SurfaceConsumer)
	require.NoError(t, err)

	foods, err := user.ListFoods(ctx, foodsdk.FoodFilter{City: "sydney", Categories: []string{"soup"}})
	require.NoError(t, err)
	require.Len(t, foods, 1)
	require.Equal(t, food.ID, foods[0].ID)

	require.NoError(t, user.Like(ctx, food.ID))
	_, err = user.AddComment(ctx, food.ID, "Rich broth")
	require.NoError(t, err)
	_, err = user.Review(ctx, food.ID, foodsdk.ReviewRequest{Rating: 4, Body: "Would return"})
	require.NoError(t, err)

	detail, err := foodsdk.NewClient(baseURL).GetFood(ctx, food.ID)
	require.NoError(t, err)
	require.Equal(t, 1, detail.LikeCount)
	require.Equal(t, 1, detail.CommentCount)
	require.Equal(t, 4.0, detail.AverageRating)
	require.Equal(t, businessName, detail.BusinessName)

	profile, err := user.GetProfile(ctx)
	require.NoError(t, err)
	require.Len(t, profile.LikedFoods, 1)

	require.NoError(t, biz.DeleteFood(ctx, food.ID))
	profile, err = user.GetProfile(ctx)
	require.NoError(t, err)
	require.Empty(t, profile.LikedFoods)
}
