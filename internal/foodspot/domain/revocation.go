package domain

import "time"

// SessionRevocation invalidates every session of an account issued before
// RevokedAt. It is kept until ExpiresAt, after which no such session can
// still be alive.
type SessionRevocation struct {
	AccountID string
	RevokedAt time.Time
	ExpiresAt time.Time
}
