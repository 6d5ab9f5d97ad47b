package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/domain"
	"github.com/aussiebroadwan/foodspot/internal/foodspot/store"
	"github.com/aussiebroadwan/foodspot/pkg/slogx"
)

// RevocationService invalidates every session of an account that was
// logged in before a point in time.
type RevocationService struct {
	Store store.Store

	// TTL bounds how long an entry must be kept: no session outlives it.
	TTL time.Duration
	Now func() time.Time
}

func (s *RevocationService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// RevokeAll revokes every existing session of accountID.
func (s *RevocationService) RevokeAll(ctx context.Context, accountID string) error {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	now := s.now().Truncate(time.Second)
	err := s.Store.Revocations().RevokeSessions(ctx, domain.SessionRevocation{
		AccountID: accountID,
		RevokedAt: now,
		ExpiresAt: now.Add(ttl),
	})
	if err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("sessions revoked", "account_id", accountID)
	return nil
}

// IsRevoked reports whether sess was authenticated no later than its
// account's revocation. Both times are whole seconds, so a login in the same
// second as the revocation is revoked too. Refreshing keeps the login time,
// so a refreshed token stays revoked.
func (s *RevocationService) IsRevoked(ctx context.Context, sess Session) (bool, error) {
	rev, err := s.Store.Revocations().GetRevocation(ctx, sess.Identity.ID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !sess.AuthTime.After(rev.RevokedAt), nil
}
