package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/atelier-studio/backend/internal/response"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

// AdminIDKey is the context key for the authenticated admin's identity.
const AdminIDKey contextKey = "adminID"

// RequireAdmin returns middleware that validates a Bearer JWT signed with
// secret and carrying the admin claim. Missing or malformed credentials are
// rejected with 401; a valid token without the admin claim with 403.
func RequireAdmin(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "authorization header required")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Unauthorized(w, "invalid authorization header format")
				return
			}

			token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				response.Unauthorized(w, "invalid or expired token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				response.Unauthorized(w, "invalid token claims")
				return
			}

			if isAdmin, _ := claims["isAdmin"].(bool); !isAdmin {
				response.Forbidden(w, "access denied")
				return
			}

			adminID, _ := claims["sub"].(string)
			ctx := context.WithValue(r.Context(), AdminIDKey, adminID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
