package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/domain"
	"github.com/aussiebroadwan/foodspot/pkg/idx"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore("file:" + filepath.Join(t.TempDir(), "foodspot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedUser(t *testing.T, s *Store, name, email string) domain.UserAccount {
	t.Helper()

	u := domain.UserAccount{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: "$argon2id$dummy",
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func seedBusiness(t *testing.T, s *Store, name, email, address string) domain.BusinessAccount {
	t.Helper()

	b := domain.BusinessAccount{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: "$argon2id$dummy",
		Address:      address,
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	}
	require.NoError(t, s.Businesses().CreateBusiness(context.Background(), b))
	return b
}

func seedFood(t *testing.T, s *Store, businessID, name string, at time.Time, categories ...string) domain.Food {
	t.Helper()

	f := domain.Food{
		ID:         idx.NewAt(at).String(),
		BusinessID: businessID,
		Name:       name,
		PriceCents: 1250,
		Categories: categories,
		CreatedAt:  at,
		UpdatedAt:  at,
	}
	require.NoError(t, s.Foods().CreateFood(context.Background(), f))
	return f
}
