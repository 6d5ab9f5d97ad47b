package jwtx

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrUnknownKID   = errors.New("jwtx: unknown kid")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrAudience     = errors.New("jwtx: audience mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// Verifier validates EdDSA session tokens against a KeySet.
type Verifier struct {
	keys     *KeySet
	issuer   string
	audience []string
	parser   *jwt.Parser
}

// NewVerifier returns a verifier that accepts tokens signed by any key in
// keys and carrying the given issuer and audience.
func NewVerifier(keys *KeySet, issuer string, audience []string) *Verifier {
	return &Verifier{
		keys:     keys,
		issuer:   issuer,
		audience: audience,
		// Time based claims are checked by Claims.ValidateExpiry so callers
		// control the clock.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
}

// Verify checks the signature and claims of token as of now.
func (v *Verifier) Verify(token string, now time.Time) (*Claims, error) {
	claims := &Claims{}
	_, err := v.parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, ErrUnknownKID
		}
		pub, ok := v.keys.Get(kid)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKID, kid)
		}
		return ed25519.PublicKey(pub), nil
	})
	if err != nil {
		if errors.Is(err, ErrUnknownKID) {
			return nil, ErrUnknownKID
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return nil, err
	}
	if err := claims.ValidateAudience(v.audience); err != nil {
		return nil, err
	}
	if err := claims.ValidateExpiry(now); err != nil {
		return nil, err
	}
	return claims, nil
}
