package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/domain"
	"github.com/aussiebroadwan/foodspot/internal/foodspot/store"
	"github.com/aussiebroadwan/foodspot/pkg/idx"
	"github.com/aussiebroadwan/foodspot/pkg/slogx"
)

const (
	maxFoodNameLength = 120
	maxCategories     = 20
)

// FoodService manages menus. Mutations are only allowed on foods owned by
// the calling business.
type FoodService struct {
	Store store.Store
	Now   func() time.Time
}

// FoodInput is the editable part of a food.
type FoodInput struct {
	Name        string
	Description string
	PriceCents  int64
	Image       string
	Categories  []string
}

// FoodDetail is a food with its comments and reviews.
type FoodDetail struct {
	domain.FoodSummary
	Comments []domain.Comment
	Reviews  []domain.Review
}

func (s *FoodService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// NormalizeCategories lower-cases, trims and de-duplicates categories,
// dropping empty ones. The result is sorted.
func NormalizeCategories(categories []string) []string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" || slices.Contains(out, c) {
			continue
		}
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// RoundRating rounds an average rating to one decimal.
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}

func roundRatings(foods []domain.FoodSummary) []domain.FoodSummary {
	for i := range foods {
		foods[i].Stats.AverageRating = RoundRating(foods[i].Stats.AverageRating)
	}
	return foods
}

func (in FoodInput) normalize() (FoodInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Image = strings.TrimSpace(in.Image)
	in.Categories = NormalizeCategories(in.Categories)

	switch {
	case in.Name == "":
		return in, invalid("name", "is required")
	case len([]rune(in.Name)) > maxFoodNameLength:
		return in, invalid("name", "must be at most %d characters", maxFoodNameLength)
	case in.PriceCents < 0:
		return in, invalid("price", "must not be negative")
	case len(in.Categories) > maxCategories:
		return in, invalid("categories", "at most %d categories", maxCategories)
	}
	return in, nil
}

// ListFoods returns foods matching filter, newest first.
func (s *FoodService) ListFoods(ctx context.Context, filter domain.FoodFilter) ([]domain.FoodSummary, error) {
	filter.Categories = NormalizeCategories(filter.Categories)
	filter.City = strings.TrimSpace(filter.City)
	filter.Query = strings.TrimSpace(filter.Query)

	foods, err := s.Store.Foods().ListFoods(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	return roundRatings(foods), nil
}

// ListBusinessFoods returns the menu of one business.
func (s *FoodService) ListBusinessFoods(ctx context.Context, businessID string) ([]domain.FoodSummary, error) {
	return s.ListFoods(ctx, domain.FoodFilter{BusinessID: businessID})
}

func (s *FoodService) GetFood(ctx context.Context, foodID string) (FoodDetail, error) {
	f, err := s.Store.Foods().GetFood(ctx, foodID)
	if err != nil {
		return FoodDetail{}, mapFoodError(err)
	}
	f.Stats.AverageRating = RoundRating(f.Stats.AverageRating)

	comments, err := s.Store.Comments().ListCommentsByFood(ctx, foodID)
	if err != nil {
		return FoodDetail{}, fmt.Errorf("list comments: %w", err)
	}
	reviews, err := s.Store.Reviews().ListReviewsByFood(ctx, foodID)
	if err != nil {
		return FoodDetail{}, fmt.Errorf("list reviews: %w", err)
	}
	return FoodDetail{FoodSummary: f, Comments: comments, Reviews: reviews}, nil
}

// CreateFood adds a food to the menu of businessID.
func (s *FoodService) CreateFood(ctx context.Context, businessID string, in FoodInput) (domain.FoodSummary, error) {
	in, err := in.normalize()
	if err != nil {
		return domain.FoodSummary{}, err
	}

	now := s.now()
	f := domain.Food{
		ID:          idx.NewAt(now).String(),
		BusinessID:  businessID,
		Name:        in.Name,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Image:       in.Image,
		Categories:  in.Categories,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var created domain.FoodSummary
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Foods().CreateFood(ctx, f); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrProfileNotFound
			}
			return err
		}
		created, err = tx.Foods().GetFood(ctx, f.ID)
		return err
	})
	if err != nil {
		return domain.FoodSummary{}, err
	}

	slogx.FromContext(ctx).Info("food created", "food_id", f.ID, "business_id", businessID)
	return created, nil
}

// UpdateFood replaces the editable fields of a food owned by businessID.
func (s *FoodService) UpdateFood(ctx context.Context, businessID, foodID string, in FoodInput) (domain.FoodSummary, error) {
	in, err := in.normalize()
	if err != nil {
		return domain.FoodSummary{}, err
	}

	var updated domain.FoodSummary
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := ownedFood(ctx, tx, businessID, foodID)
		if err != nil {
			return err
		}

		f := current.Food
		f.Name = in.Name
		f.Description = in.Description
		f.PriceCents = in.PriceCents
		f.Image = in.Image
		f.Categories = in.Categories
		f.UpdatedAt = s.now()

		if err := tx.Foods().UpdateFood(ctx, f); err != nil {
			return mapFoodError(err)
		}
		updated, err = tx.Foods().GetFood(ctx, foodID)
		return err
	})
	if err != nil {
		return domain.FoodSummary{}, err
	}
	updated.Stats.AverageRating = RoundRating(updated.Stats.AverageRating)
	return updated, nil
}

// DeleteFood removes a food owned by businessID with all its engagement.
func (s *FoodService) DeleteFood(ctx context.Context, businessID, foodID string) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := ownedFood(ctx, tx, businessID, foodID); err != nil {
			return err
		}
		return mapFoodError(tx.Foods().DeleteFood(ctx, foodID))
	})
	if err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("food deleted", "food_id", foodID, "business_id", businessID)
	return nil
}

func ownedFood(ctx context.Context, tx store.Tx, businessID, foodID string) (domain.FoodSummary, error) {
	f, err := tx.Foods().GetFood(ctx, foodID)
	if err != nil {
		return domain.FoodSummary{}, mapFoodError(err)
	}
	if f.BusinessID != businessID {
		return domain.FoodSummary{}, ErrNotOwner
	}
	return f, nil
}

func mapFoodError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrFoodNotFound
	}
	return err
}
