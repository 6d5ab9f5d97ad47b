package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/media"
	"github.com/aussiebroadwan/foodspot/internal/foodspot/service"
	"github.com/aussiebroadwan/foodspot/pkg/httpx"
	"github.com/aussiebroadwan/foodspot/pkg/slogx"
)

// writeServiceError maps a service error onto its status code and error code.
// Unknown errors are logged and reported as a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var authErr *service.AuthError
	if errors.As(err, &authErr) {
		writeAuthError(w, authErr)
		return
	}

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", validationErr.Error())
		return
	}

	switch {
	case errors.Is(err, service.ErrEmailTaken):
		httpx.WriteError(w, http.StatusConflict, "email_taken", "email already exists")
	case errors.Is(err, service.ErrProfileNotFound):
		// The session outlived its account.
		writeUnauthenticated(w)
	case errors.Is(err, service.ErrFoodNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "food not found")
	case errors.Is(err, service.ErrCommentNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "comment not found")
	case errors.Is(err, service.ErrNotOwner):
		httpx.WriteError(w, http.StatusForbidden, "forbidden", "you can only change your own content")
	case errors.Is(err, media.ErrInvalidName), errors.Is(err, media.ErrInvalidURL):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, media.ErrUnsupportedContent):
		httpx.WriteError(w, http.StatusUnsupportedMediaType, "invalid_request", "only jpeg, png, gif and webp images are accepted")
	case errors.Is(err, media.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "file not found")
	case errors.Is(err, context.DeadlineExceeded):
		slogx.FromContext(r.Context()).Warn("request timed out", "error", err)
		httpx.WriteError(w, http.StatusServiceUnavailable, "server_error", "request timed out")
	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "internal server error")
	}
}

func writeAuthError(w http.ResponseWriter, err *service.AuthError) {
	var status int
	switch err.Kind {
	case service.KindMissingCredentials:
		status = http.StatusBadRequest
	case service.KindAccountNotFound, service.KindInvalidCredentials:
		status = http.StatusUnauthorized
	case service.KindAmbiguousAccount:
		status = http.StatusConflict
	case service.KindRoleMismatch:
		status = http.StatusForbidden
	default:
		status = http.StatusUnauthorized
	}
	httpx.WriteError(w, status, publicCode(err.Kind), err.PublicMessage())
}

// publicCode hides whether an account exists: a missing account and a wrong
// password share invalid_credentials.
func publicCode(kind service.AuthErrorKind) string {
	switch kind {
	case service.KindAccountNotFound, service.KindInvalidCredentials:
		return service.KindInvalidCredentials.String()
	default:
		return kind.String()
	}
}

func writeBadRequest(w http.ResponseWriter, description string) {
	httpx.WriteError(w, http.StatusBadRequest, "invalid_request", description)
}
