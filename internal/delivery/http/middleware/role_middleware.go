package middleware

import (
	"net/http"

	"hospital-duty-scheduler/internal/domain/entity"
	"hospital-duty-scheduler/pkg/response"
)

// RequireRole checks that the authenticated user holds one of the given roles.
// Role is read from context, set by AuthMiddleware from the JWT claims.
func RequireRole(allowedRoleIDs ...int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleID, ok := GetRoleIDFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			for _, allowedRoleID := range allowedRoleIDs {
				if roleID == allowedRoleID {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "You don't have permission to access this resource")
		})
	}
}

// RequireAdmin guards scheduling and configuration endpoints.
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDAdmin)(next)
}

// RequireViewer allows read-only endpoints for both roles.
func RequireViewer(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDAdmin, entity.RoleIDViewer)(next)
}
