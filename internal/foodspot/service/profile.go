package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/domain"
	"github.com/aussiebroadwan/foodspot/internal/foodspot/store"
)

// ProfileService reads and updates account profiles. Every write is keyed
// by the caller's own account id.
type ProfileService struct {
	Store store.Store
	Now   func() time.Time
}

// UserProfile is a consumer account with the foods it likes.
type UserProfile struct {
	Account    domain.UserAccount
	LikedFoods []domain.FoodSummary
}

// UpdateUserInput holds the fields to change. Nil fields are left alone.
type UpdateUserInput struct {
	Name  *string
	Email *string
	Image *string
}

// UpdateBusinessInput holds the fields to change. Nil fields are left alone.
type UpdateBusinessInput struct {
	Name        *string
	Description *string
	Address     *string
	Image       *string
}

func (s *ProfileService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *ProfileService) GetUserProfile(ctx context.Context, userID string) (UserProfile, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return UserProfile{}, mapProfileError(err)
	}
	liked, err := s.Store.Likes().ListLikedFoods(ctx, userID)
	if err != nil {
		return UserProfile{}, fmt.Errorf("list liked foods: %w", err)
	}
	return UserProfile{Account: u, LikedFoods: roundRatings(liked)}, nil
}

// UpdateUserProfile applies in to the user. Changing the email moves its
// registry entry in the same transaction.
func (s *ProfileService) UpdateUserProfile(ctx context.Context, userID string, in UpdateUserInput) (domain.UserAccount, error) {
	var updated domain.UserAccount
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			return mapProfileError(err)
		}

		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if err := validateName(name); err != nil {
				return err
			}
			u.Name = name
		}
		if in.Image != nil {
			u.Image = strings.TrimSpace(*in.Image)
		}
		if in.Email != nil {
			email := NormalizeEmail(*in.Email)
			if err := validateEmail(email); err != nil {
				return err
			}
			if email != u.Email {
				if err := moveEmail(ctx, tx, u.Email, email, u.ID, domain.RoleUser, s.now()); err != nil {
					return err
				}
				u.Email = email
			}
		}

		u.UpdatedAt = s.now()
		if err := tx.Users().UpdateUserProfile(ctx, u); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return fmt.Errorf("%w: %w", ErrEmailTaken, err)
			}
			return err
		}
		updated = u
		return nil
	})
	return updated, err
}

func moveEmail(ctx context.Context, tx store.Tx, from, to, accountID string, role domain.Role, at time.Time) error {
	if err := tx.EmailRegistry().ReserveEmail(ctx, to, accountID, role, at); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return fmt.Errorf("%w: %w", ErrEmailTaken, err)
		}
		return err
	}
	// Accounts created before the registry existed have no entry to free.
	if err := tx.EmailRegistry().ReleaseEmail(ctx, from, accountID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	return nil
}

func (s *ProfileService) GetBusinessProfile(ctx context.Context, businessID string) (domain.BusinessAccount, error) {
	b, err := s.Store.Businesses().GetBusinessByID(ctx, businessID)
	if err != nil {
		return domain.BusinessAccount{}, mapProfileError(err)
	}
	return b, nil
}

// GetBusinessWithFoods returns the public view of a business and its menu.
func (s *ProfileService) GetBusinessWithFoods(ctx context.Context, businessID string) (domain.BusinessAccount, []domain.FoodSummary, error) {
	b, err := s.GetBusinessProfile(ctx, businessID)
	if err != nil {
		return domain.BusinessAccount{}, nil, err
	}
	foods, err := s.Store.Foods().ListFoods(ctx, domain.FoodFilter{BusinessID: businessID})
	if err != nil {
		return domain.BusinessAccount{}, nil, fmt.Errorf("list foods: %w", err)
	}
	return b, roundRatings(foods), nil
}

func (s *ProfileService) ListBusinesses(ctx context.Context, city string) ([]domain.BusinessAccount, error) {
	return s.Store.Businesses().ListBusinesses(ctx, strings.TrimSpace(city))
}

func (s *ProfileService) UpdateBusinessProfile(ctx context.Context, businessID string, in UpdateBusinessInput) (domain.BusinessAccount, error) {
	var updated domain.BusinessAccount
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		b, err := tx.Businesses().GetBusinessByID(ctx, businessID)
		if err != nil {
			return mapProfileError(err)
		}

		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if err := validateName(name); err != nil {
				return err
			}
			b.Name = name
		}
		if in.Description != nil {
			b.Description = strings.TrimSpace(*in.Description)
		}
		if in.Address != nil {
			b.Address = strings.TrimSpace(*in.Address)
		}
		if in.Image != nil {
			b.Image = strings.TrimSpace(*in.Image)
		}

		b.UpdatedAt = s.now()
		if err := tx.Businesses().UpdateBusinessProfile(ctx, b); err != nil {
			return err
		}
		updated = b
		return nil
	})
	return updated, err
}

func mapProfileError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrProfileNotFound
	}
	return err
}
