package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/domain"
	"github.com/aussiebroadwan/foodspot/internal/foodspot/store"
	"github.com/aussiebroadwan/foodspot/pkg/cryptox"
	"github.com/aussiebroadwan/foodspot/pkg/slogx"
)

// CredentialVerifier authenticates an email and password against both
// account kinds. It only reads.
type CredentialVerifier struct {
	Store  store.Store
	Hasher *cryptox.PasswordHasher

	dummyOnce sync.Once
	dummyHash string
}

type accountLookup struct {
	identity domain.Identity
	hash     string
	found    bool
	err      error
}

// Verify returns the identity of the single account owning email when
// password matches it.
func (v *CredentialVerifier) Verify(ctx context.Context, email, password string) (domain.Identity, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return domain.Identity{}, ErrMissingCredentials
	}

	var (
		wg             sync.WaitGroup
		user, business accountLookup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		u, err := v.Store.Users().GetUserByEmail(ctx, email)
		switch {
		case err == nil:
			user = accountLookup{identity: u.Identity(), hash: u.PasswordHash, found: true}
		case !errors.Is(err, store.ErrNotFound):
			user.err = err
		}
	}()
	go func() {
		defer wg.Done()
		b, err := v.Store.Businesses().GetBusinessByEmail(ctx, email)
		switch {
		case err == nil:
			business = accountLookup{identity: b.Identity(), hash: b.PasswordHash, found: true}
		case !errors.Is(err, store.ErrNotFound):
			business.err = err
		}
	}()
	wg.Wait()

	if err := errors.Join(user.err, business.err); err != nil {
		return domain.Identity{}, fmt.Errorf("lookup account: %w", err)
	}

	var match accountLookup
	switch {
	case user.found && business.found:
		slogx.FromContext(ctx).Error("email owned by both a user and a business account",
			"email", email, "user_id", user.identity.ID, "business_id", business.identity.ID)
		return domain.Identity{}, ErrAmbiguousAccount
	case user.found:
		match = user
	case business.found:
		match = business
	default:
		// Spend the same hashing work as a real comparison.
		_ = v.Hasher.Verify(password, v.dummy())
		return domain.Identity{}, ErrAccountNotFound
	}

	if err := v.Hasher.Verify(password, match.hash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			slogx.FromContext(ctx).Error("stored password hash unusable", "account_id", match.identity.ID, "error", err)
		}
		return domain.Identity{}, ErrInvalidCredentials
	}
	return match.identity, nil
}

func (v *CredentialVerifier) dummy() string {
	v.dummyOnce.Do(func() {
		v.dummyHash, _ = v.Hasher.Hash("foodspot-dummy-password")
	})
	return v.dummyHash
}
