package foodsdk

// State is where the client is in the sign-in lifecycle.
type State uint8

const (
	StateUnauthenticated State = iota
	StateAuthenticatedUser
	StateAuthenticatedBusiness

	// StateRoleMismatch is held only while the client signs itself out after
	// entering a surface with the wrong kind of account.
	StateRoleMismatch
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticatedUser:
		return "authenticated_user"
	case StateAuthenticatedBusiness:
		return "authenticated_business"
	case StateRoleMismatch:
		return "role_mismatch"
	default:
		return "unknown"
	}
}

// Surface is a part of the product that only one kind of account may use.
type Surface uint8

const (
	SurfaceConsumer Surface = iota + 1
	SurfaceBusinessConsole
)

func (s Surface) String() string {
	switch s {
	case SurfaceConsumer:
		return "consumer app"
	case SurfaceBusinessConsole:
		return "business console"
	default:
		return "unknown surface"
	}
}

// RequiredRole is the role a session must have to use s.
func (s Surface) RequiredRole() string {
	switch s {
	case SurfaceConsumer:
		return RoleUser
	case SurfaceBusinessConsole:
		return RoleBusiness
	default:
		return ""
	}
}

// LoginPath is the sign-in page for accounts that can use s.
func (s Surface) LoginPath() string {
	switch s {
	case SurfaceConsumer:
		return "/login"
	case SurfaceBusinessConsole:
		return "/business/login"
	default:
		return "/login"
	}
}

// stateForRole maps a session role onto the authenticated state. Unknown
// roles are not a session.
func stateForRole(role string) (State, bool) {
	switch role {
	case RoleUser:
		return StateAuthenticatedUser, true
	case RoleBusiness:
		return StateAuthenticatedBusiness, true
	default:
		return StateUnauthenticated, false
	}
}
