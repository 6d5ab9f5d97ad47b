package foodsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ListFoods lists foods matching filter, newest first.
func (c *Client) ListFoods(ctx context.Context, filter FoodFilter) ([]Food, error) {
	q := url.Values{}
	for _, cat := range filter.Categories {
		q.Add("category", cat)
	}
	if filter.City != "" {
		q.Set("city", filter.City)
	}
	if filter.Query != "" {
		q.Set("q", filter.Query)
	}
	path := "/api/foods"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := c.doJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var foods []Food
	if err := c.decodeJSON(resp, &foods, http.StatusOK); err != nil {
		return nil, err
	}
	return foods, nil
}

// GetFood returns a food with its comments and reviews.
func (c *Client) GetFood(ctx context.Context, id string) (*FoodDetail, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/api/foods/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var detail FoodDetail
	if err := c.decodeJSON(resp, &detail, http.StatusOK); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListMyFoods returns the signed-in business's menu.
func (c *Client) ListMyFoods(ctx context.Context) ([]Food, error) {
	if err := c.requireSession(); err != nil {
		return nil, err
	}

	resp, err := c.doJSON(ctx, http.MethodGet, "/api/foods/business", nil)
	if err != nil {
		return nil, err
	}

	var foods []Food
	if err := c.decodeJSON(resp, &foods, http.StatusOK); err != nil {
		return nil, err
	}
	return foods, nil
}

// CreateFood adds a food to the signed-in business's menu.
func (c *Client) CreateFood(ctx context.Context, req FoodRequest) (*Food, error) {
	if err := c.requireSession(); err != nil {
		return nil, err
	}
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	resp, err := c.doJSON(ctx, http.MethodPost, "/api/foods", req)
	if err != nil {
		return nil, err
	}

	var food Food
	if err := c.decodeJSON(resp, &food, http.StatusCreated); err != nil {
		return nil, err
	}
	return &food, nil
}

// UpdateFood replaces the editable fields of one of the business's foods.
func (c *Client) UpdateFood(ctx context.Context, id string, req FoodRequest) (*Food, error) {
	if err := c.requireSession(); err != nil {
		return nil, err
	}
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	resp, err := c.doJSON(ctx, http.MethodPut, "/api/foods/"+url.PathEscape(id), req)
	if err != nil {
		return nil, err
	}

	var food Food
	if err := c.decodeJSON(resp, &food, http.StatusOK); err != nil {
		return nil, err
	}
	return &food, nil
}

// DeleteFood removes one of the business's foods with its likes, comments
// and reviews.
func (c *Client) DeleteFood(ctx context.Context, id string) error {
	if err := c.requireSession(); err != nil {
		return err
	}

	resp, err := c.doJSON(ctx, http.MethodDelete, "/api/foods/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return c.checkStatusNoContent(resp)
}
