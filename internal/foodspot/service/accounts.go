package service

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

const (
	maxNameLength     = 100
	maxPasswordLength = 128
)

// NormalizeEmail is applied to every email before it is looked up or stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateName(name string) error {
	switch {
	case name == "":
		return invalid("name", "is required")
	case utf8.RuneCountInString(name) > maxNameLength:
		return invalid("name", "must be at most %d characters", maxNameLength)
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return invalid("email", "is required")
	}
	if err := validate.Var(email, "email"); err != nil {
		return invalid("email", "is not a valid email address")
	}
	return nil
}

func validatePassword(password string) error {
	switch {
	case password == "":
		return invalid("password", "is required")
	case len(password) > maxPasswordLength:
		return invalid("password", "must be at most %d bytes", maxPasswordLength)
	}
	return nil
}
