package store

import (
	"context"
	"time"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/domain"
	"github.com/aussiebroadwan/foodspot/pkg/jwtx"
)

// KeyStoreAdapter exposes SigningKeys as a jwtx.KeyStore so the key manager
// does not depend on the domain package.
type KeyStoreAdapter struct {
	store Store
}

func NewKeyStoreAdapter(s Store) *KeyStoreAdapter {
	return &KeyStoreAdapter{store: s}
}

func (a *KeyStoreAdapter) ListSigningKeys(ctx context.Context) ([]jwtx.SigningKeyRecord, error) {
	keys, err := a.store.SigningKeys().ListSigningKeys(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]jwtx.SigningKeyRecord, len(keys))
	for i, k := range keys {
		out[i] = jwtx.SigningKeyRecord{
			Kid:              k.Kid,
			Algorithm:        k.Algorithm,
			PrivateKeySealed: k.PrivateKeySealed,
			CreatedAt:        k.CreatedAt,
			RetiredAt:        k.RetiredAt,
			ExpiresAt:        k.ExpiresAt,
		}
	}
	return out, nil
}

func (a *KeyStoreAdapter) CreateSigningKey(ctx context.Context, rec jwtx.SigningKeyRecord) error {
	return a.store.SigningKeys().CreateSigningKey(ctx, domain.SigningKey{
		Kid:              rec.Kid,
		Algorithm:        rec.Algorithm,
		PrivateKeySealed: rec.PrivateKeySealed,
		CreatedAt:        rec.CreatedAt,
		RetiredAt:        rec.RetiredAt,
		ExpiresAt:        rec.ExpiresAt,
	})
}

func (a *KeyStoreAdapter) RetireSigningKey(ctx context.Context, kid string, retiredAt, expiresAt time.Time) error {
	return a.store.SigningKeys().RetireSigningKey(ctx, kid, retiredAt, expiresAt)
}

func (a *KeyStoreAdapter) DeleteSigningKey(ctx context.Context, kid string) error {
	return a.store.SigningKeys().DeleteSigningKey(ctx, kid)
}
