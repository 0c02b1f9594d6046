package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/digiteria/pkg/auth"
	"github.com/shashiranjanraj/digiteria/pkg/response"
)

type identityKey struct{}

// Identity is the authenticated caller extracted from the JWT.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// AuthMiddleware validates the bearer token and stores the caller's identity
// in the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w)
			return
		}

		id := Identity{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}
		ctx := context.WithValue(r.Context(), identityKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFromCtx returns the authenticated identity, if any.
func IdentityFromCtx(r *http.Request) (Identity, bool) {
	id, ok := r.Context().Value(identityKey{}).(Identity)
	return id, ok
}

// UserIDFromCtx returns the authenticated user id, if any.
func UserIDFromCtx(r *http.Request) (string, bool) {
	id, ok := IdentityFromCtx(r)
	return id.UserID, ok
}

// RoleFromCtx returns the authenticated role, if any.
func RoleFromCtx(r *http.Request) (string, bool) {
	id, ok := IdentityFromCtx(r)
	return id.Role, ok
}
