package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/hearth/internal/http/respond"
	"github.com/MrJamesThe3rd/hearth/internal/identity"
)

type contextKey string

const userIDKey contextKey = "user_id"

// TokenValidator is satisfied by *identity.TokenManager.
type TokenValidator interface {
	Validate(token string) (*identity.Claims, error)
}

// UserID returns the authenticated caller. ok is false outside RequireAuth.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// token subject in the request context.
func RequireAuth(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respond.Message(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
				respond.Message(w, http.StatusUnauthorized, "authorization header must be Bearer {token}")
				return
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				respond.Message(w, http.StatusUnauthorized, identity.ErrInvalidToken.Error())
				return
			}

			id, err := claims.UserID()
			if err != nil {
				respond.Message(w, http.StatusUnauthorized, identity.ErrInvalidToken.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
		})
	}
}
