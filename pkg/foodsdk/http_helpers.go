package foodsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// url builds a complete URL by appending the path to the base URL.
func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// doJSON sends body as JSON (when non-nil) and returns the response.
func (c *Client) doJSON(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var r io.Reader
	headers := map[string]string{"Accept": "application/json"}
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		r = bytes.NewReader(raw)
		headers["Content-Type"] = "application/json"
	}
	return c.doRequest(ctx, method, path, r, headers)
}

// doRequest performs an HTTP request with the client's HTTP client. The
// session cookie is attached by the cookie jar.
func (c *Client) doRequest(
	ctx context.Context,
	method, path string,
	body io.Reader,
	headers map[string]string,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	return resp, nil
}

// decodeJSON decodes a response into target, or returns an *APIError when the
// status is not expectedStatus. A 401 means the server no longer sees a
// session, so the client drops its own.
func (c *Client) decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		if resp.StatusCode == http.StatusUnauthorized {
			c.clearSession()
		}
		return parseErrorResponse(resp, bodyBytes)
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// checkStatusNoContent returns a typed error if the response status is not 204 No Content.
func (c *Client) checkStatusNoContent(resp *http.Response) error {
	return c.decodeJSON(resp, nil, http.StatusNoContent)
}

// requireSession fails fast when the client knows it is signed out.
func (c *Client) requireSession() error {
	c.expireIfDue()
	if c.State() == StateUnauthenticated {
		return ErrNoSession
	}
	return nil
}

type validatable interface {
	Validate() map[string]string
}

func checkRequest(req validatable) error {
	if errs := req.Validate(); errs != nil {
		return &ValidationError{Fields: errs}
	}
	return nil
}
