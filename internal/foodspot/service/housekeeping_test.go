package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/foodspot/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestRevocation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := &testClock{now: testNow}
	s := newTestStore(t)
	codec := newTestCodec(t, clock)
	revocations := &RevocationService{Store: s, Now: clock.Now}

	_, sess, err := codec.Encode(testIdentity())
	require.NoError(t, err)

	revoked, err := revocations.IsRevoked(ctx, sess)
	require.NoError(t, err)
	require.False(t, revoked)

	clock.Advance(25 * time.Hour)
	require.NoError(t, revocations.RevokeAll(ctx, sess.Identity.ID))

	revoked, err = revocations.IsRevoked(ctx, sess)
	require.NoError(t, err)
	require.True(t, revoked)

	// Refreshing does not launder a revoked session.
	_, refreshed, ok, err := codec.Refresh(sess)
	require.NoError(t, err)
	require.True(t, ok)
	revoked, err = revocations.IsRevoked(ctx, refreshed)
	require.NoError(t, err)
	require.True(t, revoked)

	// A login after the revocation is unaffected.
	_, fresh, err := codec.Encode(testIdentity())
	require.NoError(t, err)
	revoked, err = revocations.IsRevoked(ctx, fresh)
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestHousekeepingRunOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := &testClock{now: testNow}
	s := newTestStore(t)
	keys := newTestKeys(t)

	revocations := &RevocationService{Store: s, TTL: time.Hour, Now: clock.Now}
	require.NoError(t, revocations.RevokeAll(ctx, "acct-1"))

	hk := NewHousekeepingService(s, keys, discardLogger(), time.Minute, 24*time.Hour)
	hk.Now = clock.Now

	firstKID := keys.CurrentKID()
	hk.RunOnce(ctx)
	require.Equal(t, firstKID, keys.CurrentKID(), "key not yet due")

	_, err := s.Revocations().GetRevocation(ctx, "acct-1")
	require.NoError(t, err, "revocation not yet expired")

	clock.Advance(24 * time.Hour)
	hk.RunOnce(ctx)
	require.NotEqual(t, firstKID, keys.CurrentKID())
	require.Contains(t, keys.VerificationKIDs(), firstKID, "retired key stays verifiable")

	_, err = s.Revocations().GetRevocation(ctx, "acct-1")
	require.Error(t, err)

	clock.Advance(jwtx.DefaultGracePeriod + time.Hour)
	hk.RotationInterval = 0
	hk.RunOnce(ctx)
	require.NotContains(t, keys.VerificationKIDs(), firstKID)
}

func TestHousekeepingStartStop(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	hk := NewHousekeepingService(s, nil, discardLogger(), 0, 0)
	require.Equal(t, time.Hour, hk.Interval)
	hk.Start()
	hk.Stop()
	require.NotPanics(t, hk.Stop, "second stop is a no-op")
}

func TestRevocationWithinSameSecond(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := &testClock{now: testNow.Add(200 * time.Millisecond)}
	s := newTestStore(t)
	codec := newTestCodec(t, clock)
	revocations := &RevocationService{Store: s, Now: clock.Now}

	_, sess, err := codec.Encode(testIdentity())
	require.NoError(t, err)

	clock.Advance(600 * time.Millisecond)
	require.NoError(t, revocations.RevokeAll(ctx, sess.Identity.ID))

	revoked, err := revocations.IsRevoked(ctx, sess)
	require.NoError(t, err)
	require.True(t, revoked, "login earlier in the same second is revoked")

	clock.Advance(time.Second)
	_, fresh, err := codec.Encode(testIdentity())
	require.NoError(t, err)
	revoked, err = revocations.IsRevoked(ctx, fresh)
	require.NoError(t, err)
	require.False(t, revoked)
}
