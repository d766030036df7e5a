package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"

	"mcq-platform/internal/models"
	"mcq-platform/internal/web"
)

// JWTMiddleware verifies the bearer token and attaches the caller's id and
// role to the request context. Everything behind it can trust those values.
func JWTMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				web.Error(w, http.StatusUnauthorized, "Access token required")
				return
			}

			bearerToken := strings.Split(authHeader, " ")
			if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
				web.Error(w, http.StatusUnauthorized, "Invalid token format")
				return
			}

			token, err := jwt.ParseWithClaims(bearerToken[1], &jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
				return []byte(jwtSecret), nil
			})
			if err != nil {
				web.Error(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			claims, ok := token.Claims.(*jwt.MapClaims)
			if !ok || !token.Valid {
				web.Error(w, http.StatusUnauthorized, "Invalid token claims")
				return
			}

			userID, ok := (*claims)["user_id"].(float64)
			if !ok {
				web.Error(w, http.StatusUnauthorized, "Invalid user ID in token")
				return
			}
			role, _ := (*claims)["role"].(string)

			ctx := context.WithValue(r.Context(), "user_id", uint(userID))
			ctx = context.WithValue(ctx, "role", role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalJWT attaches the caller's identity when the request carries a
// valid bearer token and lets the request through anonymously otherwise.
// Public catalog reads use it so quiz owners and admins get their own
// correct answers back while everyone else sees the stripped payload.
func OptionalJWT(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bearerToken := strings.Split(r.Header.Get("Authorization"), " ")
			if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
				next.ServeHTTP(w, r)
				return
			}

			token, err := jwt.ParseWithClaims(bearerToken[1], &jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				next.ServeHTTP(w, r)
				return
			}

			claims, ok := token.Claims.(*jwt.MapClaims)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			userID, ok := (*claims)["user_id"].(float64)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			role, _ := (*claims)["role"].(string)

			ctx := context.WithValue(r.Context(), "user_id", uint(userID))
			ctx = context.WithValue(ctx, "role", role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin sits behind JWTMiddleware on admin routes.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, _ := r.Context().Value("role").(string)
		if role != models.RoleAdmin {
			web.Error(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CallerID returns the authenticated user id placed on the context by
// JWTMiddleware.
func CallerID(r *http.Request) (uint, bool) {
	id, ok := r.Context().Value("user_id").(uint)
	return id, ok
}

func CallerRole(r *http.Request) string {
	role, _ := r.Context().Value("role").(string)
	return role
}
