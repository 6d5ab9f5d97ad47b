package http

import (
	"github.com/aussiebroadwan/foodspot/internal/foodspot/domain"
	"github.com/aussiebroadwan/foodspot/internal/foodspot/service"
	"github.com/aussiebroadwan/foodspot/pkg/foodsdk"
)

// Accounts leave the server only through these views, none of which has a
// password field.

func identityView(id domain.Identity) foodsdk.Identity {
	return foodsdk.Identity{
		ID:    id.ID,
		Name:  id.Name,
		Email: id.Email,
		Image: id.Image,
		Role:  id.Role.String(),
	}
}

func sessionView(s service.Session) foodsdk.SessionResponse {
	return foodsdk.SessionResponse{
		Identity:  identityView(s.Identity),
		ExpiresAt: s.ExpiresAt.UTC(),
	}
}

func userView(u domain.UserAccount) foodsdk.User {
	return foodsdk.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Image:     u.Image,
		CreatedAt: u.CreatedAt,
	}
}

func businessView(b domain.BusinessAccount) foodsdk.Business {
	return foodsdk.Business{
		ID:          b.ID,
		Name:        b.Name,
		Email:       b.Email,
		Description: b.Description,
		Address:     b.Address,
		Image:       b.Image,
		CreatedAt:   b.CreatedAt,
	}
}

func businessViews(bs []domain.BusinessAccount) []foodsdk.Business {
	out := make([]foodsdk.Business, len(bs))
	for i, b := range bs {
		out[i] = businessView(b)
	}
	return out
}

func foodView(f domain.FoodSummary) foodsdk.Food {
	categories := f.Categories
	if categories == nil {
		categories = []string{}
	}
	return foodsdk.Food{
		ID:            f.ID,
		BusinessID:    f.BusinessID,
		BusinessName:  f.BusinessName,
		Name:          f.Name,
		Description:   f.Description,
		Price:         f.PriceCents,
		Image:         f.Image,
		Categories:    categories,
		City:          f.BusinessAddress,
		LikeCount:     f.Stats.LikeCount,
		CommentCount:  f.Stats.CommentCount,
		ReviewCount:   f.Stats.ReviewCount,
		AverageRating: f.Stats.AverageRating,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

func foodViews(fs []domain.FoodSummary) []foodsdk.Food {
	out := make([]foodsdk.Food, len(fs))
	for i, f := range fs {
		out[i] = foodView(f)
	}
	return out
}

func commentView(c domain.Comment) foodsdk.Comment {
	return foodsdk.Comment{
		ID:        c.ID,
		FoodID:    c.FoodID,
		UserID:    c.UserID,
		UserName:  c.UserName,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
	}
}

func reviewView(r domain.Review) foodsdk.Review {
	return foodsdk.Review{
		ID:        r.ID,
		FoodID:    r.FoodID,
		UserID:    r.UserID,
		UserName:  r.UserName,
		Rating:    r.Rating,
		Body:      r.Body,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func foodDetailView(d service.FoodDetail) foodsdk.FoodDetail {
	out := foodsdk.FoodDetail{
		Food:     foodView(d.FoodSummary),
		Comments: make([]foodsdk.Comment, len(d.Comments)),
		Reviews:  make([]foodsdk.Review, len(d.Reviews)),
	}
	for i, c := range d.Comments {
		out.Comments[i] = commentView(c)
	}
	for i, r := range d.Reviews {
		out.Reviews[i] = reviewView(r)
	}
	return out
}
