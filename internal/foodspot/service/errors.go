package service

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/domain"
)

// AuthErrorKind classifies authentication and authorization failures.
type AuthErrorKind uint8

const (
	KindMissingCredentials AuthErrorKind = iota + 1
	KindAccountNotFound
	KindInvalidCredentials
	KindAmbiguousAccount
	KindRoleMismatch
)

func (k AuthErrorKind) String() string {
	switch k {
	case KindMissingCredentials:
		return "missing_credentials"
	case KindAccountNotFound:
		return "account_not_found"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindAmbiguousAccount:
		return "ambiguous_account"
	case KindRoleMismatch:
		return "role_mismatch"
	default:
		return "unknown"
	}
}

// AuthError is returned by the credential verifier and the role gate.
// Match a kind with errors.Is against the Err* sentinels below.
type AuthError struct {
	Kind AuthErrorKind

	// Required is the role the action needed. Only set for KindRoleMismatch.
	Required domain.Role
}

var (
	ErrMissingCredentials = &AuthError{Kind: KindMissingCredentials}
	ErrAccountNotFound    = &AuthError{Kind: KindAccountNotFound}
	ErrInvalidCredentials = &AuthError{Kind: KindInvalidCredentials}
	ErrAmbiguousAccount   = &AuthError{Kind: KindAmbiguousAccount}
	ErrRoleMismatch       = &AuthError{Kind: KindRoleMismatch}
)

// NewRoleMismatch reports that an action needs a session of role required.
func NewRoleMismatch(required domain.Role) *AuthError {
	return &AuthError{Kind: KindRoleMismatch, Required: required}
}

func (e *AuthError) Error() string {
	return "auth: " + e.Kind.String()
}

func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	return ok && t.Kind == e.Kind
}

// PublicMessage is the text shown to clients. Not-found and wrong-password
// failures share one message so responses do not reveal which accounts exist.
func (e *AuthError) PublicMessage() string {
	switch e.Kind {
	case KindMissingCredentials:
		return "email and password are required"
	case KindAccountNotFound, KindInvalidCredentials:
		return "invalid email or password"
	case KindAmbiguousAccount:
		return "this email is linked to more than one account; contact support"
	case KindRoleMismatch:
		if e.Required.Valid() {
			return fmt.Sprintf("this action requires a %s account", e.Required)
		}
		return "this action is not available to your account"
	default:
		return "authentication failed"
	}
}

var (
	ErrEmailTaken      = errors.New("email already exists")
	ErrProfileNotFound = errors.New("account no longer exists")
	ErrFoodNotFound    = errors.New("food not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotOwner        = errors.New("resource belongs to another account")
)

// ValidationError is a user-correctable problem with request input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
