package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-contacts-api/internal/domain"
)

type contextKey string

const UserKey contextKey = "user"

type tokenVerifier interface {
	Verify(token string) (string, error)
}

type userResolver interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Auth returns middleware that validates the Bearer token and resolves its
// subject to a user, injected into the request context for this request
// only. A missing header, a bad token and an unknown subject all produce
// the identical 401 body so callers cannot tell which case occurred.
func Auth(tokens tokenVerifier, users userResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeJSONError(w, http.StatusUnauthorized, "invalid authentication credentials")
				return
			}
			subject, err := tokens.Verify(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid authentication credentials")
				return
			}
			u, err := users.GetByEmail(r.Context(), subject)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid authentication credentials")
				return
			}
			ctx := context.WithValue(r.Context(), UserKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext extracts the authenticated user from the request context.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(UserKey).(*domain.User)
	return u, ok
}
