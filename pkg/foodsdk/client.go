package foodsdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"
)

// Client talks to the FoodSpot API. The session cookie lives in the client's
// cookie jar, so one Client represents one signed-in browser.
//
// The client also tracks which kind of account is signed in. Its role checks
// are advisory; the server enforces the real ones.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Now is used to detect an expired session without a round trip.
	Now func() time.Time

	// OnStateChange, when set, is called on every state transition.
	OnStateChange func(from, to State)

	mu        sync.RWMutex
	state     State
	identity  *Identity
	expiresAt time.Time
}

// NewClient creates a client with an empty cookie jar.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil) // only errors on a bad public suffix list
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
		Now: time.Now,
	}
}

// State returns the current sign-in state.
func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Identity returns the signed-in identity, or nil.
func (c *Client) Identity() *Identity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.identity == nil {
		return nil
	}
	id := *c.identity
	return &id
}

// EnterSurface checks that the signed-in account may use surface. Entering
// with the wrong kind of account signs the client out and returns a
// *RoleMismatchError naming the login page to use instead.
func (c *Client) EnterSurface(ctx context.Context, surface Surface) (*Identity, error) {
	c.expireIfDue()

	c.mu.RLock()
	state, identity := c.state, c.identity
	c.mu.RUnlock()

	required := surface.RequiredRole()
	switch state {
	case StateUnauthenticated:
		return nil, ErrNoSession
	case StateAuthenticatedUser, StateAuthenticatedBusiness:
		if identity != nil && identity.Role == required {
			id := *identity
			return &id, nil
		}
	case StateRoleMismatch:
		// A sign-out from an earlier mismatch is still in flight.
		return nil, ErrNoSession
	default:
		return nil, fmt.Errorf("foodspot: unknown client state %d", state)
	}

	actual := ""
	if identity != nil {
		actual = identity.Role
	}
	c.transition(StateRoleMismatch, identity, c.expiresAtSnapshot())
	// The session is dropped locally even if the server cannot be reached.
	logoutErr := c.logout(ctx)

	mismatch := &RoleMismatchError{
		Surface:   surface,
		Required:  required,
		Actual:    actual,
		LoginPath: surface.LoginPath(),
	}
	if logoutErr != nil {
		return nil, errors.Join(mismatch, logoutErr)
	}
	return nil, mismatch
}

func (c *Client) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Client) expiresAtSnapshot() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.expiresAt
}

// expireIfDue drops a session whose absolute expiry has passed.
func (c *Client) expireIfDue() {
	c.mu.RLock()
	expired := c.identity != nil && !c.expiresAt.IsZero() && !c.now().Before(c.expiresAt)
	c.mu.RUnlock()
	if expired {
		c.clearSession()
	}
}

// setSession records a session reported by the server. A session with an
// unknown role is treated as none.
func (c *Client) setSession(s *SessionResponse) {
	state, ok := stateForRole(s.Role)
	if !ok {
		c.clearSession()
		return
	}
	id := s.Identity
	c.transition(state, &id, s.ExpiresAt)
}

func (c *Client) clearSession() {
	c.transition(StateUnauthenticated, nil, time.Time{})
}

func (c *Client) transition(to State, identity *Identity, expiresAt time.Time) {
	c.mu.Lock()
	from := c.state
	c.state = to
	c.identity = identity
	c.expiresAt = expiresAt
	hook := c.OnStateChange
	c.mu.Unlock()

	if hook != nil && from != to {
		hook(from, to)
	}
}
