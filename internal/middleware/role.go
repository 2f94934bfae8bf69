package middleware

import (
	"context"
	"net/http"
)

type RoleStore interface {
	GetRole(ctx context.Context, userID string) (string, error)
}

// RequireRole gates a route on the authenticated user's role column.
func RequireRole(roles RoleStore, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			userRole, err := roles.GetRole(r.Context(), userID)
			if err != nil {
				http.Error(w, "unable to verify role", http.StatusInternalServerError)
				return
			}
			if userRole != role {
				http.Error(w, "insufficient privileges", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
