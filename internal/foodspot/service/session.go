package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/domain"
	"github.com/aussiebroadwan/foodspot/pkg/idx"
	"github.com/aussiebroadwan/foodspot/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultSessionTTL   = 30 * 24 * time.Hour
	DefaultRefreshAfter = 24 * time.Hour
)

// Session is a decoded session token.
type Session struct {
	Identity domain.Identity
	ID       string // jti

	IssuedAt  time.Time
	ExpiresAt time.Time

	// AuthTime is the original login. ExpiresAt is always AuthTime + TTL.
	AuthTime time.Time
}

// Remaining is the lifetime left at now, never negative.
func (s Session) Remaining(now time.Time) time.Duration {
	return max(s.ExpiresAt.Sub(now), 0)
}

// DecodeError means a token could not be turned into a session. Callers
// treat it as no session at all.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "session: decode: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// SessionCodec converts identities to signed session tokens and back.
type SessionCodec struct {
	Keys     *jwtx.KeyManager
	Issuer   string
	Audience string

	// TTL is the absolute session lifetime, measured from login.
	TTL time.Duration

	// RefreshAfter is the token age after which Refresh re-issues it.
	RefreshAfter time.Duration

	Now func() time.Time
}

func (c *SessionCodec) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *SessionCodec) ttl() time.Duration {
	if c.TTL > 0 {
		return c.TTL
	}
	return DefaultSessionTTL
}

func (c *SessionCodec) refreshAfter() time.Duration {
	if c.RefreshAfter > 0 {
		return c.RefreshAfter
	}
	return DefaultRefreshAfter
}

// Encode starts a new session for identity.
func (c *SessionCodec) Encode(identity domain.Identity) (string, Session, error) {
	now := c.now().Truncate(time.Second)
	return c.sign(identity, now, now, now.Add(c.ttl()))
}

// Reissue signs a fresh token for identity that keeps the login time and
// absolute expiry of sess.
func (c *SessionCodec) Reissue(sess Session, identity domain.Identity) (string, Session, error) {
	now := c.now().Truncate(time.Second)
	if !now.Before(sess.ExpiresAt) {
		return "", Session{}, &DecodeError{Err: jwtx.ErrExpired}
	}
	return c.sign(identity, now, sess.AuthTime, sess.ExpiresAt)
}

// Refresh re-issues sess when it is older than RefreshAfter. The boolean is
// false when no refresh was due.
func (c *SessionCodec) Refresh(sess Session) (string, Session, bool, error) {
	if c.now().Sub(sess.IssuedAt) <= c.refreshAfter() {
		return "", sess, false, nil
	}
	token, refreshed, err := c.Reissue(sess, sess.Identity)
	if err != nil {
		return "", sess, false, err
	}
	return token, refreshed, true, nil
}

func (c *SessionCodec) sign(identity domain.Identity, issuedAt, authTime, expiresAt time.Time) (string, Session, error) {
	if !identity.Role.Valid() {
		return "", Session{}, fmt.Errorf("session: invalid role %d", identity.Role)
	}
	if identity.ID == "" {
		return "", Session{}, errors.New("session: identity has no id")
	}

	jti := idx.NewAt(issuedAt).String()
	claims := jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.Issuer,
			Subject:   identity.ID,
			Audience:  jwt.ClaimStrings{c.Audience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ID:        jti,
		},
		Name:     identity.Name,
		Email:    identity.Email,
		Image:    identity.Image,
		Role:     identity.Role.String(),
		AuthTime: jwt.NewNumericDate(authTime),
	}

	token, err := c.Keys.Sign(claims)
	if err != nil {
		return "", Session{}, fmt.Errorf("session: sign: %w", err)
	}
	return token, Session{
		Identity:  identity,
		ID:        jti,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
		AuthTime:  authTime,
	}, nil
}

// Decode verifies token and rebuilds its session. Every failure is a
// *DecodeError.
func (c *SessionCodec) Decode(token string) (Session, error) {
	claims, err := c.Keys.Verify(token, c.now())
	if err != nil {
		return Session{}, &DecodeError{Err: err}
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return Session{}, &DecodeError{Err: err}
	}
	if claims.Subject == "" || claims.IssuedAt == nil {
		return Session{}, &DecodeError{Err: jwtx.ErrInvalidClaim}
	}

	authTime := claims.IssuedAt.Time
	if claims.AuthTime != nil {
		authTime = claims.AuthTime.Time
	}

	return Session{
		Identity: domain.Identity{
			ID:    claims.Subject,
			Name:  claims.Name,
			Email: claims.Email,
			Image: claims.Image,
			Role:  role,
		},
		ID:        claims.ID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
		AuthTime:  authTime,
	}, nil
}
