package jwtx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/foodspot/pkg/cryptox"
)

// SigningKeyRecord is a signing key as persisted by a KeyStore. The private
// key is sealed with the kid as additional data, so a sealed blob cannot be
// moved to another row.
type SigningKeyRecord struct {
	Kid              string
	Algorithm        string
	PrivateKeySealed []byte
	CreatedAt        time.Time
	RetiredAt        *time.Time
	ExpiresAt        *time.Time
}

// KeyStore persists signing keys.
type KeyStore interface {
	ListSigningKeys(ctx context.Context) ([]SigningKeyRecord, error)
	CreateSigningKey(ctx context.Context, rec SigningKeyRecord) error
	RetireSigningKey(ctx context.Context, kid string, retiredAt, expiresAt time.Time) error
	DeleteSigningKey(ctx context.Context, kid string) error
}

// NewPersistentKeyManager loads keys from store, decrypting them with sealer.
// The newest active key signs; other active keys are retired. A key is
// generated when none is active.
func NewPersistentKeyManager(ctx context.Context, opts KeyManagerOptions, store KeyStore, sealer *cryptox.Sealer, now time.Time) (*KeyManager, error) {
	if store == nil || sealer == nil {
		return nil, errors.New("jwtx: persistent key manager needs a store and a sealer")
	}

	km, err := newKeyManager(opts)
	if err != nil {
		return nil, err
	}
	km.store = store
	km.sealer = sealer

	records, err := store.ListSigningKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("jwtx: list keys: %w", err)
	}

	var newest *SigningKeyRecord
	var active []SigningKeyRecord
	for i := range records {
		rec := records[i]
		if rec.ExpiresAt != nil && !now.Before(*rec.ExpiresAt) {
			if err := store.DeleteSigningKey(ctx, rec.Kid); err != nil {
				return nil, fmt.Errorf("jwtx: delete expired key %s: %w", rec.Kid, err)
			}
			continue
		}
		if rec.Algorithm != AlgorithmEdDSA {
			return nil, fmt.Errorf("jwtx: key %s uses unsupported algorithm %q", rec.Kid, rec.Algorithm)
		}

		pemKey, err := sealer.Open(rec.PrivateKeySealed, []byte(rec.Kid))
		if err != nil {
			return nil, fmt.Errorf("jwtx: open key %s: %w", rec.Kid, err)
		}
		signer, err := NewSignerEdDSA(rec.Kid, pemKey)
		if err != nil {
			return nil, fmt.Errorf("jwtx: load key %s: %w", rec.Kid, err)
		}
		km.keys.Add(rec.Kid, signer.PublicKey())

		if rec.RetiredAt != nil {
			expires := rec.RetiredAt.Add(km.grace)
			if rec.ExpiresAt != nil {
				expires = *rec.ExpiresAt
			}
			km.retired[rec.Kid] = expires
			continue
		}

		active = append(active, rec)
		if newest == nil || rec.CreatedAt.After(newest.CreatedAt) {
			newest = &records[i]
			km.current = signer
			km.createdAt = rec.CreatedAt
		}
	}

	if newest == nil {
		if err := km.Rotate(ctx, now); err != nil {
			return nil, err
		}
		return km, nil
	}

	for _, rec := range active {
		if rec.Kid == newest.Kid {
			continue
		}
		expires := now.Add(km.grace)
		if err := store.RetireSigningKey(ctx, rec.Kid, now, expires); err != nil {
			return nil, fmt.Errorf("jwtx: retire key %s: %w", rec.Kid, err)
		}
		km.retired[rec.Kid] = expires
	}

	return km, nil
}
