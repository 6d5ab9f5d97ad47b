package domain

import "time"

// SigningKey is a session signing key persisted with its private half sealed
// under the master key.
type SigningKey struct {
	Kid              string
	Algorithm        string
	PrivateKeySealed []byte
	CreatedAt        time.Time
	RetiredAt        *time.Time // nil while the key signs
	ExpiresAt        *time.Time // set on retirement
}

// IsActive reports whether the key still signs new sessions.
func (k SigningKey) IsActive() bool { return k.RetiredAt == nil }
