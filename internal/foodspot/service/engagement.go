package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/domain"
	"github.com/aussiebroadwan/foodspot/internal/foodspot/store"
	"github.com/aussiebroadwan/foodspot/pkg/idx"
)

const (
	MaxCommentLength = 1000
	MinRating        = 1
	MaxRating        = 5
)

// EngagementService records likes, comments and reviews made by users.
type EngagementService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *EngagementService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Like marks foodID as liked by userID. Liking twice is a no-op.
func (s *EngagementService) Like(ctx context.Context, userID, foodID string) error {
	if foodID == "" {
		return invalid("foodId", "is required")
	}
	return mapFoodError(s.Store.Likes().Like(ctx, userID, foodID, s.now()))
}

// Unlike removes a like. Removing a missing like is a no-op.
func (s *EngagementService) Unlike(ctx context.Context, userID, foodID string) error {
	if foodID == "" {
		return invalid("foodId", "is required")
	}
	return s.Store.Likes().Unlike(ctx, userID, foodID)
}

// AddComment posts a comment by userID on foodID.
func (s *EngagementService) AddComment(ctx context.Context, userID, foodID, body string) (domain.Comment, error) {
	body = strings.TrimSpace(body)
	switch {
	case body == "":
		return domain.Comment{}, invalid("body", "is required")
	case utf8.RuneCountInString(body) > MaxCommentLength:
		return domain.Comment{}, invalid("body", "must be at most %d characters", MaxCommentLength)
	}

	now := s.now()
	c := domain.Comment{
		ID:        idx.NewAt(now).String(),
		FoodID:    foodID,
		UserID:    userID,
		Body:      body,
		CreatedAt: now,
	}
	if err := s.Store.Comments().CreateComment(ctx, c); err != nil {
		return domain.Comment{}, mapFoodError(err)
	}

	created, err := s.Store.Comments().GetComment(ctx, c.ID)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("read comment: %w", err)
	}
	return created, nil
}

// DeleteComment removes a comment. Only its author may delete it.
func (s *EngagementService) DeleteComment(ctx context.Context, userID, commentID string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		c, err := tx.Comments().GetComment(ctx, commentID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrCommentNotFound
		}
		if err != nil {
			return err
		}
		if c.UserID != userID {
			return ErrNotOwner
		}
		return tx.Comments().DeleteComment(ctx, commentID)
	})
}

// ReviewFood records the rating of userID for foodID, replacing any earlier
// review by the same user.
func (s *EngagementService) ReviewFood(ctx context.Context, userID, foodID string, rating int, body string) (domain.Review, error) {
	if rating < MinRating || rating > MaxRating {
		return domain.Review{}, invalid("rating", "must be between %d and %d", MinRating, MaxRating)
	}
	body = strings.TrimSpace(body)
	if utf8.RuneCountInString(body) > MaxCommentLength {
		return domain.Review{}, invalid("body", "must be at most %d characters", MaxCommentLength)
	}

	now := s.now()
	r := domain.Review{
		ID:        idx.NewAt(now).String(),
		FoodID:    foodID,
		UserID:    userID,
		Rating:    rating,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var stored domain.Review
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Reviews().UpsertReview(ctx, r); err != nil {
			return mapFoodError(err)
		}
		reviews, err := tx.Reviews().ListReviewsByFood(ctx, foodID)
		if err != nil {
			return err
		}
		for _, rv := range reviews {
			if rv.UserID == userID {
				stored = rv
				return nil
			}
		}
		return fmt.Errorf("review of %s by %s missing after upsert", foodID, userID)
	})
	return stored, err
}
