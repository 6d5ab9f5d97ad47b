package foodsdk

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so the map lines up with the body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs the struct tags of s and returns a map of JSON field
// names to reasons, or nil if s is valid.
func validateStruct(s any) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"": err.Error()}
	}

	errs := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := errs[field]; seen {
			continue
		}
		errs[field] = reason(fe)
	}
	return errs
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "must be a valid email address"
	case "max":
		switch fe.Kind() {
		case reflect.Slice, reflect.Map:
			return fmt.Sprintf("at most %s entries", fe.Param())
		case reflect.String:
			return fmt.Sprintf("too long (max %s)", fe.Param())
		default:
			return fmt.Sprintf("must be at most %s", fe.Param())
		}
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("too short (min %s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "invalid"
	}
}

// Validate checks the request fields. Returns a map of field names to error
// messages, or nil if all fields are valid.
func (r LoginRequest) Validate() map[string]string { return validateStruct(r) }

// Validate checks the request fields.
func (r RegisterUserRequest) Validate() map[string]string { return validateStruct(r) }

// Validate checks the request fields.
func (r RegisterBusinessRequest) Validate() map[string]string { return validateStruct(r) }

// Validate checks the request fields.
func (r UpdateUserRequest) Validate() map[string]string { return validateStruct(r) }

// Validate checks the request fields.
func (r UpdateBusinessRequest) Validate() map[string]string { return validateStruct(r) }

// Validate checks the request fields.
func (r FoodRequest) Validate() map[string]string { return validateStruct(r) }

// Validate checks the request fields.
func (r LikeRequest) Validate() map[string]string { return validateStruct(r) }

// Validate checks the request fields. The body is trimmed before checking.
func (r CommentRequest) Validate() map[string]string {
	r.Body = strings.TrimSpace(r.Body)
	return validateStruct(r)
}

// Validate checks the request fields.
func (r ReviewRequest) Validate() map[string]string { return validateStruct(r) }
