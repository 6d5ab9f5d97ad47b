package foodsdk_test

import (
	"strings"
	"testing"

	"github.com/aussiebroadwan/foodspot/pkg/foodsdk"
	"github.com/stretchr/testify/require"
)

func TestLoginRequestValidate(t *testing.T) {
	require.Nil(t, foodsdk.LoginRequest{Email: "a@x.com", Password: "pw"}.Validate())

	errs := foodsdk.LoginRequest{}.Validate()
	require.Equal(t, map[string]string{"email": "required", "password": "required"}, errs)

	errs = foodsdk.LoginRequest{Email: "nope", Password: "pw", AccountKind: "admin"}.Validate()
	require.Equal(t, "must be a valid email address", errs["email"])
	require.Equal(t, "must be one of user, business", errs["accountKind"])
}

func TestRegisterRequestsValidate(t *testing.T) {
	require.Nil(t, foodsdk.RegisterUserRequest{Name: "Ana", Email: "ana@x.com", Password: "pw"}.Validate())

	errs := foodsdk.RegisterBusinessRequest{
		Name:     strings.Repeat("n", 101),
		Email:    "pho@x.com",
		Password: "pw",
	}.Validate()
	require.Equal(t, map[string]string{"name": "too long (max 100)"}, errs)
}

func TestFoodRequestValidate(t *testing.T) {
	require.Nil(t, foodsdk.FoodRequest{Name: "Pho", Price: 1450, Categories: []string{"noodles"}}.Validate())

	errs := foodsdk.FoodRequest{Price: -1}.Validate()
	require.Equal(t, "required", errs["name"])
	require.Equal(t, "must be at least 0", errs["price"])

	many := make([]string, 21)
	for i := range many {
		many[i] = "c"
	}
	errs = foodsdk.FoodRequest{Name: "Pho", Categories: many}.Validate()
	require.Equal(t, "at most 20 entries", errs["categories"])
}

func TestEngagementRequestsValidate(t *testing.T) {
	require.Equal(t, "required", foodsdk.CommentRequest{Body: "   "}.Validate()["body"])
	require.Nil(t, foodsdk.CommentRequest{Body: strings.Repeat("é", 1000)}.Validate())
	require.NotNil(t, foodsdk.CommentRequest{Body: strings.Repeat("a", 1001)}.Validate())

	require.Equal(t, "required", foodsdk.ReviewRequest{}.Validate()["rating"])
	require.Equal(t, "must be at most 5", foodsdk.ReviewRequest{Rating: 6}.Validate()["rating"])
	require.Nil(t, foodsdk.ReviewRequest{Rating: 5}.Validate())

	require.Equal(t, "required", foodsdk.LikeRequest{}.Validate()["foodId"])
}

func TestUpdateRequestsValidate(t *testing.T) {
	require.Nil(t, foodsdk.UpdateUserRequest{}.Validate())

	bad := "not-an-email"
	require.Equal(t, "must be a valid email address", foodsdk.UpdateUserRequest{Email: &bad}.Validate()["email"])
}
