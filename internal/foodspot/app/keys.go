package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/store"
	"github.com/aussiebroadwan/foodspot/pkg/cryptox"
	"github.com/aussiebroadwan/foodspot/pkg/jwtx"
)

// signingKeyPurpose binds the master key derivation to signing key storage.
const signingKeyPurpose = "signing-keys"

// InitSessionKeys creates the KeyManager that signs session tokens.
//
// Storage modes:
//   - "ephemeral": a key is generated on startup and kept only in memory.
//     Every session becomes invalid when the service restarts.
//   - "persistent": keys are stored in the database, encrypted with a key
//     derived from MASTER_KEY. Sessions survive restarts and rotation.
func InitSessionKeys(ctx context.Context, cfg Config, db store.Store, logger *slog.Logger, now time.Time) (*jwtx.KeyManager, error) {
	opts := jwtx.KeyManagerOptions{
		Issuer:      cfg.Issuer,
		Audience:    []string{cfg.Audience},
		GracePeriod: cfg.KeyGracePeriod,
	}

	switch cfg.KeyMode {
	case KeyModePersistent:
		sealer, err := cryptox.NewSealer(cfg.MasterKey, signingKeyPurpose)
		if err != nil {
			return nil, fmt.Errorf("failed to derive key encryption key: %w", err)
		}

		logger.Info("initializing persistent key manager", "grace_period", cfg.KeyGracePeriod)

		km, err := jwtx.NewPersistentKeyManager(ctx, opts, store.NewKeyStoreAdapter(db), sealer, now)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize persistent key manager: %w", err)
		}

		logger.Info("persistent signing keys loaded",
			"kid", km.CurrentKID(),
			"verification_keys", len(km.VerificationKIDs()),
			"issuer", cfg.Issuer,
		)
		return km, nil

	default:
		km, err := jwtx.NewEphemeralKeyManager(opts, now)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize ephemeral key manager: %w", err)
		}

		logger.Info("generated ephemeral signing key", "kid", km.CurrentKID(), "issuer", cfg.Issuer)
		logger.Warn("sessions issued before this start are no longer valid")
		return km, nil
	}
}
