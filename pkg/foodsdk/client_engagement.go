package foodsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Like marks a food as liked. Liking twice is not an error.
func (c *Client) Like(ctx context.Context, foodID string) error {
	return c.setLike(ctx, http.MethodPost, foodID)
}

// Unlike removes a like. Unliking a food that is not liked is not an error.
func (c *Client) Unlike(ctx context.Context, foodID string) error {
	return c.setLike(ctx, http.MethodDelete, foodID)
}

func (c *Client) setLike(ctx context.Context, method, foodID string) error {
	if err := c.requireSession(); err != nil {
		return err
	}
	req := LikeRequest{FoodID: foodID}
	if err := checkRequest(req); err != nil {
		return err
	}

	resp, err := c.doJSON(ctx, method, "/api/likes", req)
	if err != nil {
		return err
	}

	var out LikeResponse
	return c.decodeJSON(resp, &out, http.StatusOK)
}

// AddComment comments on a food.
func (c *Client) AddComment(ctx context.Context, foodID, body string) (*Comment, error) {
	if err := c.requireSession(); err != nil {
		return nil, err
	}
	req := CommentRequest{Body: body}
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	resp, err := c.doJSON(ctx, http.MethodPost, "/api/foods/"+url.PathEscape(foodID)+"/comments", req)
	if err != nil {
		return nil, err
	}

	var comment Comment
	if err := c.decodeJSON(resp, &comment, http.StatusCreated); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment deletes one of the user's own comments.
func (c *Client) DeleteComment(ctx context.Context, id string) error {
	if err := c.requireSession(); err != nil {
		return err
	}

	resp, err := c.doJSON(ctx, http.MethodDelete, "/api/comments/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return c.checkStatusNoContent(resp)
}

// Review rates a food. Reviewing again replaces the earlier review.
func (c *Client) Review(ctx context.Context, foodID string, req ReviewRequest) (*Review, error) {
	if err := c.requireSession(); err != nil {
		return nil, err
	}
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	resp, err := c.doJSON(ctx, http.MethodPost, "/api/foods/"+url.PathEscape(foodID)+"/reviews", req)
	if err != nil {
		return nil, err
	}

	var review Review
	if err := c.decodeJSON(resp, &review, http.StatusOK); err != nil {
		return nil, err
	}
	return &review, nil
}
