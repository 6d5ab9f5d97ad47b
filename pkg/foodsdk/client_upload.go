package foodsdk

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// Upload stores an image and returns its public URL.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (*UploadResponse, error) {
	if err := c.requireSession(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/upload", &buf, map[string]string{
		"Content-Type": mw.FormDataContentType(),
		"Accept":       "application/json",
	})
	if err != nil {
		return nil, err
	}

	var out UploadResponse
	if err := c.decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUpload removes an image returned by Upload.
func (c *Client) DeleteUpload(ctx context.Context, imageURL string) error {
	if err := c.requireSession(); err != nil {
		return err
	}

	path := "/api/upload?" + url.Values{"url": {imageURL}}.Encode()
	resp, err := c.doJSON(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	return c.checkStatusNoContent(resp)
}
