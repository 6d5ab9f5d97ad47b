package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/domain"
	"github.com/aussiebroadwan/foodspot/internal/foodspot/store"
	"github.com/aussiebroadwan/foodspot/pkg/cryptox"
	"github.com/aussiebroadwan/foodspot/pkg/idx"
	"github.com/aussiebroadwan/foodspot/pkg/slogx"
)

// RegistrationService creates accounts. An email can own at most one
// account of either kind; the email registry's unique key arbitrates races.
type RegistrationService struct {
	Store  store.Store
	Hasher *cryptox.PasswordHasher
	Now    func() time.Time
}

type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
	Image    string
}

type RegisterBusinessInput struct {
	Name        string
	Email       string
	Password    string
	Description string
	Address     string
	Image       string
}

func (s *RegistrationService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func validateRegistration(name, email, password string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	return validatePassword(password)
}

// RegisterUser creates a consumer account.
func (s *RegistrationService) RegisterUser(ctx context.Context, in RegisterUserInput) (domain.UserAccount, error) {
	name := strings.TrimSpace(in.Name)
	email := NormalizeEmail(in.Email)
	if err := validateRegistration(name, email, in.Password); err != nil {
		return domain.UserAccount{}, err
	}

	// Hash before touching the database so a failure here leaves nothing
	// behind.
	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return domain.UserAccount{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	u := domain.UserAccount{
		ID:           idx.NewAt(now).String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Image:        strings.TrimSpace(in.Image),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.EmailRegistry().ReserveEmail(ctx, email, u.ID, domain.RoleUser, now); err != nil {
			return err
		}
		return tx.Users().CreateUser(ctx, u)
	})
	if err != nil {
		return domain.UserAccount{}, mapRegistrationError(ctx, err, email)
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", u.ID)
	return u, nil
}

// RegisterBusiness creates a business account.
func (s *RegistrationService) RegisterBusiness(ctx context.Context, in RegisterBusinessInput) (domain.BusinessAccount, error) {
	name := strings.TrimSpace(in.Name)
	email := NormalizeEmail(in.Email)
	if err := validateRegistration(name, email, in.Password); err != nil {
		return domain.BusinessAccount{}, err
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return domain.BusinessAccount{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	b := domain.BusinessAccount{
		ID:           idx.NewAt(now).String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Description:  strings.TrimSpace(in.Description),
		Address:      strings.TrimSpace(in.Address),
		Image:        strings.TrimSpace(in.Image),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.EmailRegistry().ReserveEmail(ctx, email, b.ID, domain.RoleBusiness, now); err != nil {
			return err
		}
		return tx.Businesses().CreateBusiness(ctx, b)
	})
	if err != nil {
		return domain.BusinessAccount{}, mapRegistrationError(ctx, err, email)
	}

	slogx.FromContext(ctx).Info("business registered", "business_id", b.ID)
	return b, nil
}

func mapRegistrationError(ctx context.Context, err error, email string) error {
	if errors.Is(err, store.ErrAlreadyExists) {
		slogx.FromContext(ctx).Info("registration rejected, email taken", "email", email)
		return fmt.Errorf("%w: %w", ErrEmailTaken, err)
	}
	return fmt.Errorf("create account: %w", err)
}
