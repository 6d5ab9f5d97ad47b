package jwtx

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/foodspot/pkg/cryptox"
	"github.com/aussiebroadwan/foodspot/pkg/idx"
)

// DefaultGracePeriod is how long a retired key stays verifiable. It is longer
// than the maximum session lifetime so rotation never logs anyone out.
const DefaultGracePeriod = 31 * 24 * time.Hour

// KeyManager owns the signing key for session tokens and the set of keys
// still accepted for verification. One key signs at a time; rotation retires
// the previous key, which remains verifiable until its grace period ends.
type KeyManager struct {
	mu        sync.RWMutex
	current   Signer
	createdAt time.Time
	retired   map[string]time.Time // kid -> verification expiry

	keys     *KeySet
	verifier *Verifier

	store  KeyStore
	sealer *cryptox.Sealer
	grace  time.Duration
}

// KeyManagerOptions configures a KeyManager.
type KeyManagerOptions struct {
	Issuer   string
	Audience []string

	// GracePeriod defaults to DefaultGracePeriod.
	GracePeriod time.Duration
}

// NewEphemeralKeyManager generates a key held only in memory. Every session
// becomes invalid when the process restarts.
func NewEphemeralKeyManager(opts KeyManagerOptions, now time.Time) (*KeyManager, error) {
	km, err := newKeyManager(opts)
	if err != nil {
		return nil, err
	}
	if err := km.Rotate(context.Background(), now); err != nil {
		return nil, err
	}
	return km, nil
}

func newKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, errors.New("jwtx: Issuer is required")
	}
	if opts.GracePeriod <= 0 {
		opts.GracePeriod = DefaultGracePeriod
	}
	keys := NewKeySet()
	return &KeyManager{
		retired:  make(map[string]time.Time),
		keys:     keys,
		verifier: NewVerifier(keys, opts.Issuer, opts.Audience),
		grace:    opts.GracePeriod,
	}, nil
}

// Sign signs claims with the current key.
func (km *KeyManager) Sign(claims Claims) (string, error) {
	km.mu.RLock()
	signer := km.current
	km.mu.RUnlock()

	if signer == nil {
		return "", errors.New("jwtx: no signing key")
	}
	return signer.Sign(claims)
}

// Verify validates token as of now against every non-expired key.
func (km *KeyManager) Verify(token string, now time.Time) (*Claims, error) {
	return km.verifier.Verify(token, now)
}

// CurrentKID returns the kid of the signing key.
func (km *KeyManager) CurrentKID() string {
	km.mu.RLock()
	defer km.mu.RUnlock()
	if km.current == nil {
		return ""
	}
	return km.current.KID()
}

// CurrentKeyCreatedAt returns when the signing key was created.
func (km *KeyManager) CurrentKeyCreatedAt() time.Time {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return km.createdAt
}

// IsReady reports whether a signing key is loaded.
func (km *KeyManager) IsReady() bool {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return km.current != nil
}

// Persistent reports whether keys are written to a KeyStore.
func (km *KeyManager) Persistent() bool { return km.store != nil }

// Rotate generates a new signing key and retires the previous one.
func (km *KeyManager) Rotate(ctx context.Context, now time.Time) error {
	pemKey, err := cryptox.GenerateEd25519Key()
	if err != nil {
		return err
	}
	kid := "fs-" + strings.ToLower(idx.NewAt(now).String())

	signer, err := NewSignerEdDSA(kid, pemKey)
	if err != nil {
		return err
	}

	if km.store != nil {
		sealed, err := km.sealer.Seal(pemKey, []byte(kid))
		if err != nil {
			return fmt.Errorf("jwtx: seal key: %w", err)
		}
		rec := SigningKeyRecord{
			Kid:              kid,
			Algorithm:        AlgorithmEdDSA,
			PrivateKeySealed: sealed,
			CreatedAt:        now,
		}
		if err := km.store.CreateSigningKey(ctx, rec); err != nil {
			return fmt.Errorf("jwtx: store key: %w", err)
		}
	}

	km.mu.Lock()
	defer km.mu.Unlock()

	if prev := km.current; prev != nil {
		expires := now.Add(km.grace)
		if km.store != nil {
			if err := km.store.RetireSigningKey(ctx, prev.KID(), now, expires); err != nil {
				return fmt.Errorf("jwtx: retire key: %w", err)
			}
		}
		km.retired[prev.KID()] = expires
	}

	km.keys.Add(kid, signer.PublicKey())
	km.current = signer
	km.createdAt = now
	return nil
}

// Prune drops retired keys whose grace period has ended and returns how many
// were removed.
func (km *KeyManager) Prune(ctx context.Context, now time.Time) (int, error) {
	km.mu.Lock()
	defer km.mu.Unlock()

	n := 0
	for kid, expires := range km.retired {
		if now.Before(expires) {
			continue
		}
		if km.store != nil {
			if err := km.store.DeleteSigningKey(ctx, kid); err != nil {
				return n, fmt.Errorf("jwtx: delete key %s: %w", kid, err)
			}
		}
		km.keys.Remove(kid)
		delete(km.retired, kid)
		n++
	}
	return n, nil
}

// VerificationKIDs lists every kid currently accepted for verification.
func (km *KeyManager) VerificationKIDs() []string {
	return km.keys.KIDs()
}
