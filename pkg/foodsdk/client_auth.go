package foodsdk

import (
	"context"
	"net/http"
	"net/http/cookiejar"
)

// Login signs in with email and password. The role of the session comes from
// the account the server finds, not from req.AccountKind.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*SessionResponse, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	resp, err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", req)
	if err != nil {
		return nil, err
	}

	var session SessionResponse
	if err := c.decodeJSON(resp, &session, http.StatusOK); err != nil {
		return nil, err
	}

	c.setSession(&session)
	return &session, nil
}

// Logout ends the session. The client is signed out afterwards even when the
// request fails.
func (c *Client) Logout(ctx context.Context) error {
	return c.logout(ctx)
}

func (c *Client) logout(ctx context.Context) error {
	defer c.clearSession()

	resp, err := c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil)
	if err != nil {
		c.resetCookies()
		return err
	}

	var out LogoutResponse
	if err := c.decodeJSON(resp, &out, http.StatusOK); err != nil {
		c.resetCookies()
		return err
	}
	return nil
}

// Session asks the server for the current session and syncs the client state
// with it. Returns ErrNoSession when the server sees none.
func (c *Client) Session(ctx context.Context) (*SessionResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/api/auth/session", nil)
	if err != nil {
		return nil, err
	}

	var session SessionResponse
	if err := c.decodeJSON(resp, &session, http.StatusOK); err != nil {
		if IsCode(err, ErrorCodeUnauthenticated) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	c.setSession(&session)
	return &session, nil
}

// RevokeAll signs the account out everywhere, including this client.
func (c *Client) RevokeAll(ctx context.Context) error {
	if err := c.requireSession(); err != nil {
		return err
	}

	resp, err := c.doJSON(ctx, http.MethodPost, "/api/auth/revoke", nil)
	if err != nil {
		return err
	}

	var out RevokeResponse
	if err := c.decodeJSON(resp, &out, http.StatusOK); err != nil {
		return err
	}
	c.clearSession()
	return nil
}

// resetCookies drops every cookie the client holds.
func (c *Client) resetCookies() {
	if c.HTTPClient == nil {
		return
	}
	if jar, err := cookiejar.New(nil); err == nil {
		c.HTTPClient.Jar = jar
	}
}
