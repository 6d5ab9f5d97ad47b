package jwtx

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the session claims carried by a FoodSpot session token. The
// identity fields are copied verbatim from the account that logged in.
type Claims struct {
	jwt.RegisteredClaims

	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
	Role  string `json:"role"`

	// AuthTime is when the credentials were last checked. Refreshed tokens
	// keep the original value so the absolute lifetime never slides.
	AuthTime *jwt.NumericDate `json:"auth_time,omitempty"`
}

// ValidateIssuer checks iss. An empty expectation is not enforced.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected != "" && c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateAudience checks that at least one expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil
	}
	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}
	return ErrAudience
}

// ValidateExpiry checks exp and nbf against now. The exp cutoff is
// inclusive: a token is already expired at exactly its exp instant.
func (c *Claims) ValidateExpiry(now time.Time) error {
	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}
	if !now.Before(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}
