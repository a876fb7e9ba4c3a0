// Package rbac gates routes by the role carried in the access token.
package rbac

import (
	"net/http"

	"github.com/shashiranjanraj/souq/pkg/middleware"
	"github.com/shashiranjanraj/souq/pkg/response"
)

// Roles known to the API.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

// HasRole allows the request only when the authenticated role is one of roles.
// middleware.Auth must run first; an anonymous request gets 401, a wrong role 403.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r)
			if !ok {
				response.Unauthorized(w)
				return
			}
			if !allowed[role] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Staff admits managers and admins.
func Staff() func(http.Handler) http.Handler { return HasRole(RoleManager, RoleAdmin) }

// Admin admits admins only.
func Admin() func(http.Handler) http.Handler { return HasRole(RoleAdmin) }
