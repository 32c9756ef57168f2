package auth

import (
	"context"
	"net/http"
	"strings"

	"MonoStore/pkg/kit"
)

type ctxKey string

const userKey ctxKey = "user"

// Identity is the caller resolved from a bearer token, carried per request in
// the context. Resolution is stateless; there is no revocation list.
type Identity struct {
	ID    string
	Email string
	Role  string
}

func UserFromContext(ctx context.Context) (Identity, bool) {
	u, ok := ctx.Value(userKey).(Identity)
	return u, ok
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(jwt *TokenMaker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				kit.WriteError(w, r, http.StatusUnauthorized, "Unauthorized - No token provided", nil)
				return
			}

			claims, err := jwt.Parse(strings.TrimPrefix(authz, "Bearer "))
			if err != nil || claims.UserID == "" {
				kit.WriteError(w, r, http.StatusUnauthorized, "Unauthorized - Invalid token", nil)
				return
			}

			id := Identity{ID: claims.UserID, Email: claims.Email, Role: claims.Role}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, id)))
		})
	}
}

// RequireAdmin refines RequireAuth; it must run after it.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromContext(r.Context())
		if !ok || u.Role != RoleAdmin {
			kit.WriteError(w, r, http.StatusForbidden, "Forbidden - Admin access required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
