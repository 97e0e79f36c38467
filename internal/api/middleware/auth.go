package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/soundloop/soundloop-api/internal/domain"
	"github.com/soundloop/soundloop-api/internal/service"
)

type contextKey string

const (
	UserKey contextKey = "user"
)

// Auth resolves the Authorization bearer value (either token kind) to a user
// and stores it in the request context.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Printf("ERROR [middleware.Auth] missing authorization header")
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")

			user, err := authService.ResolveToken(r.Context(), token)
			if err != nil {
				log.Printf("ERROR [middleware.Auth] token resolution failed: %v", err)
				if errors.Is(err, service.ErrSessionExpired) {
					http.Error(w, "Session expired", http.StatusUnauthorized)
					return
				}
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserKey).(*domain.User)
	return user, ok
}
