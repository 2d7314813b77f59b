package middleware

import (
	"net/http"

	"printmitra-be/internal/auth"
	"printmitra-be/internal/user"
	"printmitra-be/internal/utils"
)

// AuthMiddleware decodes the bearer token, if any, and stores the identity in
// context. Requests without a valid token pass through anonymously; route
// guards decide whether that is acceptable.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := auth.ExtractAccessToken(r)
		if tokenStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := user.ParseJWT(tokenStr)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects anonymous requests.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
			utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects requests whose identity lacks one of the given roles.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := utils.GetUserRoleFromContext(r.Context())
			for _, role := range roles {
				if got == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			utils.WriteJSONError(w, "access denied", http.StatusForbidden)
		})
	}
}
