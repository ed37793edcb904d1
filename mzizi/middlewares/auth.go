// mzizi/middlewares/auth.go
package middlewares

import (
	"context"
	"net/http"
	"strings"

	"mzizi/mzizi/config"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const ProfileIDKey contextKey = "profile_id"

// AuthMiddleware validates the bearer token and puts its profile_id claim on
// the request context. Issuing tokens is not this service's job.
func AuthMiddleware(cfg config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			parts := strings.Split(auth, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			tokenStr := parts[1]
			token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(cfg.JWTSecret), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			profileID, ok := claims["profile_id"].(string)
			if !ok || profileID == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), ProfileIDKey, profileID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
