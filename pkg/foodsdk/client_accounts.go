package foodsdk

import (
	"context"
	"net/http"
	"net/url"
)

// RegisterUser creates a consumer account. It does not sign in.
func (c *Client) RegisterUser(ctx context.Context, req RegisterUserRequest) (*User, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	resp, err := c.doJSON(ctx, http.MethodPost, "/api/register", req)
	if err != nil {
		return nil, err
	}

	var user User
	if err := c.decodeJSON(resp, &user, http.StatusCreated); err != nil {
		return nil, err
	}
	return &user, nil
}

// RegisterBusiness creates a business account. It does not sign in.
func (c *Client) RegisterBusiness(ctx context.Context, req RegisterBusinessRequest) (*Business, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	resp, err := c.doJSON(ctx, http.MethodPost, "/api/businesses", req)
	if err != nil {
		return nil, err
	}

	var business Business
	if err := c.decodeJSON(resp, &business, http.StatusCreated); err != nil {
		return nil, err
	}
	return &business, nil
}

// GetProfile returns the signed-in user's profile and liked foods.
func (c *Client) GetProfile(ctx context.Context) (*UserProfile, error) {
	if err := c.requireSession(); err != nil {
		return nil, err
	}

	resp, err := c.doJSON(ctx, http.MethodGet, "/api/users/me", nil)
	if err != nil {
		return nil, err
	}

	var profile UserProfile
	if err := c.decodeJSON(resp, &profile, http.StatusOK); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile changes the signed-in user's profile. The server re-issues
// the session cookie, and the client identity follows it.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateUserRequest) (*User, error) {
	if err := c.requireSession(); err != nil {
		return nil, err
	}
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	resp, err := c.doJSON(ctx, http.MethodPut, "/api/users/me", req)
	if err != nil {
		return nil, err
	}

	var user User
	if err := c.decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	c.updateIdentity(user.Name, user.Email, user.Image)
	return &user, nil
}

// ListBusinesses lists businesses, optionally only those whose address
// contains city.
func (c *Client) ListBusinesses(ctx context.Context, city string) ([]Business, error) {
	path := "/api/businesses"
	if city != "" {
		path += "?" + url.Values{"city": {city}}.Encode()
	}

	resp, err := c.doJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var businesses []Business
	if err := c.decodeJSON(resp, &businesses, http.StatusOK); err != nil {
		return nil, err
	}
	return businesses, nil
}

// GetBusiness returns a business and its menu.
func (c *Client) GetBusiness(ctx context.Context, id string) (*BusinessDetail, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/api/businesses/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var detail BusinessDetail
	if err := c.decodeJSON(resp, &detail, http.StatusOK); err != nil {
		return nil, err
	}
	return &detail, nil
}

// GetMyBusiness returns the signed-in business's own profile.
func (c *Client) GetMyBusiness(ctx context.Context) (*Business, error) {
	if err := c.requireSession(); err != nil {
		return nil, err
	}

	resp, err := c.doJSON(ctx, http.MethodGet, "/api/businesses/me", nil)
	if err != nil {
		return nil, err
	}

	var business Business
	if err := c.decodeJSON(resp, &business, http.StatusOK); err != nil {
		return nil, err
	}
	return &business, nil
}

// UpdateMyBusiness changes the signed-in business's profile.
func (c *Client) UpdateMyBusiness(ctx context.Context, req UpdateBusinessRequest) (*Business, error) {
	if err := c.requireSession(); err != nil {
		return nil, err
	}
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	resp, err := c.doJSON(ctx, http.MethodPut, "/api/businesses/me", req)
	if err != nil {
		return nil, err
	}

	var business Business
	if err := c.decodeJSON(resp, &business, http.StatusOK); err != nil {
		return nil, err
	}
	c.updateIdentity(business.Name, business.Email, business.Image)
	return &business, nil
}

func (c *Client) updateIdentity(name, email, image string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.identity == nil {
		return
	}
	id := *c.identity
	id.Name, id.Email, id.Image = name, email, image
	c.identity = &id
}
