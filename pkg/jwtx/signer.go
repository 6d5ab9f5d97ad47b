package jwtx

import (
	"crypto/ed25519"
	"errors"

	"github.com/aussiebroadwan/foodspot/pkg/cryptox"
	"github.com/golang-jwt/jwt/v5"
)

// AlgorithmEdDSA is the only signing algorithm used for session tokens.
const AlgorithmEdDSA = "EdDSA"

// Signer signs session claims with a single key.
type Signer interface {
	KID() string
	PublicKey() ed25519.PublicKey
	Sign(Claims) (string, error)
}

// EdDSASigner signs with an Ed25519 private key.
type EdDSASigner struct {
	kid string
	key ed25519.PrivateKey
}

// NewSignerEdDSA loads a PKCS8 PEM Ed25519 key.
func NewSignerEdDSA(kid string, pemKey []byte) (*EdDSASigner, error) {
	if kid == "" {
		return nil, errors.New("jwtx: kid is required")
	}
	key, err := cryptox.ParseEd25519Key(pemKey)
	if err != nil {
		return nil, err
	}
	return &EdDSASigner{kid: kid, key: key}, nil
}

func (s *EdDSASigner) KID() string { return s.kid }

func (s *EdDSASigner) PublicKey() ed25519.PublicKey {
	return s.key.Public().(ed25519.PublicKey)
}

// Sign returns the compact JWS for claims with the kid header set.
func (s *EdDSASigner) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}
