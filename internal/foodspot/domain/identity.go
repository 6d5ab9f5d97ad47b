package domain

import (
	"fmt"
	"strings"
)

// Role tags an Identity with the account kind it came from.
type Role uint8

const (
	roleInvalid Role = iota
	RoleUser
	RoleBusiness
)

// ParseRole parses the wire form of a role.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return RoleUser, nil
	case "business":
		return RoleBusiness, nil
	default:
		return roleInvalid, fmt.Errorf("domain: unknown role %q", s)
	}
}

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleBusiness:
		return "business"
	default:
		return "invalid"
	}
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleBusiness:
		return true
	default:
		return false
	}
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("domain: cannot marshal invalid role")
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Identity is the normalized view of an authenticated account. It is the
// only shape carried in a session and never holds credential material.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
	Role  Role   `json:"role"`
}
