package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/domain"
	"github.com/aussiebroadwan/foodspot/internal/foodspot/store"
	"github.com/stretchr/testify/require"
)

func TestRegisterUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ts := newTestServices(t)

	u, err := ts.registration.RegisterUser(ctx, RegisterUserInput{
		Name: "  Dee ", Email: " Dee@X.com ", Password: "pw", Image: "/uploads/d.png",
	})
	require.NoError(t, err)
	require.Equal(t, "Dee", u.Name)
	require.Equal(t, "dee@x.com", u.Email)
	require.True(t, strings.HasPrefix(u.PasswordHash, "$argon2id$"))
	require.NotContains(t, u.PasswordHash, "pw$")

	stored, err := ts.store.Users().GetUserByEmail(ctx, "dee@x.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, stored.ID)
	require.NoError(t, ts.hasher.Verify("pw", stored.PasswordHash))
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ts := newTestServices(t)

	cases := []struct {
		name  string
		in    RegisterUserInput
		field string
	}{
		{"missing name", RegisterUserInput{Email: "e@x.com", Password: "pw"}, "name"},
		{"missing email", RegisterUserInput{Name: "E", Password: "pw"}, "email"},
		{"malformed email", RegisterUserInput{Name: "E", Email: "not-an-email", Password: "pw"}, "email"},
		{"missing password", RegisterUserInput{Name: "E", Email: "e@x.com"}, "password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ts.registration.RegisterUser(ctx, tc.in)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			require.Equal(t, tc.field, verr.Field)
		})
	}

	_, err := ts.store.Users().GetUserByEmail(ctx, "e@x.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRegisterEmailSharedAcrossKinds(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ts := newTestServices(t)

	ts.registerUser(t, "First", "shared@x.com", "pw")

	_, err := ts.registration.RegisterBusiness(ctx, RegisterBusinessInput{
		Name: "Second", Email: "SHARED@x.com", Password: "pw",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = ts.store.Businesses().GetBusinessByEmail(ctx, "shared@x.com")
	require.ErrorIs(t, err, store.ErrNotFound, "no partial business row")

	_, err = ts.registration.RegisterUser(ctx, RegisterUserInput{Name: "Third", Email: "shared@x.com", Password: "pw"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestConcurrentRegistrationSameEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ts := newTestServices(t)

	const attempts = 2
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, errs[i] = ts.registration.RegisterUser(ctx, RegisterUserInput{Name: "D user", Email: "d@x.com", Password: "pw"})
			} else {
				_, errs[i] = ts.registration.RegisterBusiness(ctx, RegisterBusinessInput{Name: "D biz", Email: "d@x.com", Password: "pw"})
			}
		}(i)
	}
	wg.Wait()

	var ok, taken int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrEmailTaken) && errors.Is(err, store.ErrAlreadyExists):
			taken++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, ok)
	require.Equal(t, 1, taken)

	// Whichever kind won, login is unambiguous.
	id, err := ts.verifier.Verify(ctx, "d@x.com", "pw")
	require.NoError(t, err)
	require.Contains(t, []domain.Role{domain.RoleUser, domain.RoleBusiness}, id.Role)
}
