package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/domain"
	"github.com/aussiebroadwan/foodspot/internal/foodspot/service"
	"github.com/aussiebroadwan/foodspot/pkg/httpx"
	"github.com/aussiebroadwan/foodspot/pkg/slogx"
)

// SessionCookieName is the only place a session is read from.
const SessionCookieName = "foodspot.session-token"

type sessionKey struct{}

// SessionFromContext returns the session attached by Sessions.Materialize.
func SessionFromContext(ctx context.Context) (*service.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*service.Session)
	return s, ok && s != nil
}

// CurrentSession returns the request's session, or nil when there is none.
func CurrentSession(r *http.Request) *service.Session {
	s, _ := SessionFromContext(r.Context())
	return s
}

func withSession(ctx context.Context, s *service.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// Sessions turns the session cookie into a request session and back. It
// never looks at the account tables.
type Sessions struct {
	Codec *service.SessionCodec

	// Revocations is consulted by CheckRevocation. Nil disables the check.
	Revocations *service.RevocationService

	// Secure marks the cookie Secure; set in production.
	Secure bool

	Now func() time.Time
}

// RevocationEnforced reports whether revoked sessions are rejected.
func (s *Sessions) RevocationEnforced() bool { return s.Revocations != nil }

func (s *Sessions) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Materialize attaches the cookie's session to the request context. A
// missing or undecodable cookie leaves the request without a session. When a
// refresh is due the new token is written back to the cookie.
func (s *Sessions) Materialize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		sess, err := s.Codec.Decode(cookie.Value)
		if err != nil {
			slogx.FromContext(ctx).Debug("session cookie rejected", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		token, refreshed, ok, err := s.Codec.Refresh(sess)
		switch {
		case err != nil:
			slogx.FromContext(ctx).Warn("session refresh failed", "error", err)
		case ok:
			sess = refreshed
			s.SetCookie(w, token, sess)
		}

		ctx = slogx.With(ctx, "account_id", sess.Identity.ID, "role", sess.Identity.Role.String())
		next.ServeHTTP(w, r.WithContext(withSession(ctx, &sess)))
	})
}

// CheckRevocation drops the session of an account whose sessions were
// revoked after this one logged in. It runs only on routes that change
// state, so plain reads never touch the revocation table.
func (s *Sessions) CheckRevocation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := CurrentSession(r)
		if s.Revocations == nil || sess == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		revoked, err := s.Revocations.IsRevoked(ctx, *sess)
		if err != nil {
			slogx.FromContext(ctx).Error("revocation lookup failed", "error", err)
			httpx.WriteError(w, http.StatusServiceUnavailable, "server_error", "session check unavailable")
			return
		}
		if revoked {
			slogx.FromContext(ctx).Info("revoked session rejected", "session_id", sess.ID)
			next.ServeHTTP(w, r.WithContext(withSession(ctx, nil)))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SetCookie writes token with a Max-Age of the session's remaining lifetime.
func (s *Sessions) SetCookie(w http.ResponseWriter, token string, sess service.Session) {
	maxAge := int(sess.Remaining(s.now()) / time.Second)
	if maxAge <= 0 {
		s.ClearCookie(w)
		return
	}
	http.SetCookie(w, s.cookie(token, maxAge))
}

// ClearCookie expires the session cookie.
func (s *Sessions) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, s.cookie("", -1))
}

func (s *Sessions) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// StartSession encodes identity into a new session cookie.
func (s *Sessions) StartSession(w http.ResponseWriter, identity domain.Identity) (service.Session, error) {
	token, sess, err := s.Codec.Encode(identity)
	if err != nil {
		return service.Session{}, err
	}
	s.SetCookie(w, token, sess)
	return sess, nil
}

// ReissueSession replaces the cookie after the account's identity changed,
// keeping the original login time and expiry.
func (s *Sessions) ReissueSession(w http.ResponseWriter, sess service.Session, identity domain.Identity) (service.Session, error) {
	token, next, err := s.Codec.Reissue(sess, identity)
	if err != nil {
		var decodeErr *service.DecodeError
		if errors.As(err, &decodeErr) {
			s.ClearCookie(w)
		}
		return service.Session{}, err
	}
	s.SetCookie(w, token, next)
	return next, nil
}
