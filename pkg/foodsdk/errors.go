package foodsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned in the "error" field of an error response.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeValidation         = "validation_error"
	ErrorCodeMissingCredentials = "missing_credentials"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeAmbiguousAccount   = "ambiguous_account"
	ErrorCodeUnauthenticated    = "unauthenticated"
	ErrorCodeRoleMismatch       = "role_mismatch"
	ErrorCodeForbidden          = "forbidden"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeEmailTaken         = "email_taken"
	ErrorCodeRateLimited        = "rate_limit_exceeded"
	ErrorCodeServerError        = "server_error"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`

	// Details maps request fields to validation failures.
	Details map[string]string `json:"details,omitempty"`
}

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
	Details     map[string]string
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("foodspot: %d %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("foodspot: %d %s: %s", e.StatusCode, e.Code, e.Description)
}

// IsCode reports whether err is an APIError with the given code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// ValidationError is returned before any request is sent when the request
// fails its own Validate.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("foodspot: invalid request: %v", e.Fields)
}

// ErrNoSession is returned by calls that need a signed-in client.
var ErrNoSession = errors.New("foodspot: not signed in")

// RoleMismatchError is returned when a surface is entered with an account of
// the wrong kind. The client has already been signed out when it is returned.
type RoleMismatchError struct {
	Surface  Surface
	Required string // role the surface needs
	Actual   string // role the session had

	// LoginPath is where the user signs in with the right kind of account.
	LoginPath string
}

func (e *RoleMismatchError) Error() string {
	return fmt.Sprintf("%s requires a %s account, signed in as %s; sign in at %s",
		e.Surface, e.Required, e.Actual, e.LoginPath)
}

// parseErrorResponse builds an APIError from a non-2xx response.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
			Details:     errResp.Details,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
