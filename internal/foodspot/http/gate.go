package http

import (
	"net/http"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/domain"
	"github.com/aussiebroadwan/foodspot/internal/foodspot/service"
	"github.com/aussiebroadwan/foodspot/pkg/httpx"
	"github.com/aussiebroadwan/foodspot/pkg/slogx"
)

// RequireSession rejects requests without a session with 401.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentSession(r) == nil {
			writeUnauthenticated(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole admits only sessions of role. No session is a 401; a session
// of another role is a 403 role_mismatch naming the role needed.
func RequireRole(role domain.Role) httpx.Middleware {
	if !role.Valid() {
		panic("http: RequireRole with invalid role")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := CurrentSession(r)
			if sess == nil {
				writeUnauthenticated(w)
				return
			}

			if err := checkRole(sess.Identity.Role, role); err != nil {
				slogx.FromContext(r.Context()).Info("role gate rejected request",
					"required", role.String(),
					"actual", sess.Identity.Role.String(),
				)
				writeServiceError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func checkRole(actual, required domain.Role) error {
	switch actual {
	case domain.RoleUser, domain.RoleBusiness:
		if actual == required {
			return nil
		}
		return service.NewRoleMismatch(required)
	default:
		// Decode never yields one, but an unknown role is never admitted.
		return service.NewRoleMismatch(required)
	}
}

func writeUnauthenticated(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "")
}
