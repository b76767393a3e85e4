package middleware

import (
	"net/http"

	"clinic-appointment/internal/domain/entity"
	"clinic-appointment/pkg/response"
)

// RequireRole rejects callers whose role is not one of allowed.
// The role is read from the context set by AuthMiddleware.
func RequireRole(allowed ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			for _, allowedRole := range allowed {
				if role == allowedRole {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "You don't have permission to access this resource")
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}

// RequireStaff is a convenience middleware for doctor-only endpoints
func RequireStaff(next http.Handler) http.Handler {
	return RequireRole(entity.RoleStaff)(next)
}

// RequirePatient is a convenience middleware for patient-only endpoints
func RequirePatient(next http.Handler) http.Handler {
	return RequireRole(entity.RolePatient)(next)
}
