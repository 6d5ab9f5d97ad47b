package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxJSONBody caps request bodies decoded by DecodeJSON.
const MaxJSONBody = 1 << 20

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`

	// Details maps request fields to what is wrong with them.
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes v as JSON with status code. Responses are never cached,
// since most of them depend on the session cookie.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes an ErrorResponse.
func WriteError(w http.ResponseWriter, code int, errCode, description string) {
	WriteJSON(w, code, ErrorResponse{Error: errCode, Description: description})
}

// WriteValidationError writes a 400 listing the invalid request fields.
func WriteValidationError(w http.ResponseWriter, details map[string]string) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:       "validation_error",
		Description: "request has invalid fields",
		Details:     details,
	})
}

// NoCache sets headers that keep proxies and browsers from storing the
// response.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// DecodeJSON decodes a single JSON object from r into dst, rejecting unknown
// fields and bodies larger than MaxJSONBody.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxJSONBody))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return errors.New("request body is empty")
		case errors.As(err, &maxErr):
			return fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		default:
			return fmt.Errorf("invalid JSON body: %w", err)
		}
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}
