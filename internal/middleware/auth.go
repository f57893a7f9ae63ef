package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/voyage/backend/internal/auth"
)

// TokenVerifier checks a bearer token. *auth.JWTManager satisfies it.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

type ctxKey int

const (
	identityKey ctxKey = iota
	holderKey
)

type identityHolder struct {
	id  auth.Identity
	set bool
}

func withIdentityHolder(ctx context.Context, h *identityHolder) context.Context {
	return context.WithValue(ctx, holderKey, h)
}

// WithIdentity returns a copy of ctx carrying id, as RequireAuth does.
func WithIdentity(ctx context.Context, id auth.Identity) context.Context {
	if h, ok := ctx.Value(holderKey).(*identityHolder); ok {
		h.id, h.set = id, true
	}
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom returns the caller identity placed in ctx by RequireAuth.
func IdentityFrom(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}

// UserID returns the authenticated user's ID, or uuid.Nil outside
// RequireAuth.
func UserID(ctx context.Context) uuid.UUID {
	id, _ := IdentityFrom(ctx)
	return id.UserID
}

// RequireAuth rejects requests without a valid "Authorization: Bearer"
// token with 401 and otherwise stores the caller identity in the request
// context.
func RequireAuth(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				writeError(w, http.StatusUnauthorized, "Not authorized, no token.")
				return
			}
			id, err := v.Verify(strings.TrimSpace(token))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Not authorized, token failed.")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}
