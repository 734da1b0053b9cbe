package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/anbuchelva/cams/internal/auth"
	"github.com/anbuchelva/cams/internal/domain"
)

type contextKey string

const identityContextKey contextKey = "identity"

// Gate is the access-control middleware: it resolves a bearer token to an
// identity or rejects the request. Registration and login routes are mounted
// outside of it; every project and notification route goes through it.
type Gate struct {
	tokens *auth.TokenIssuer
}

// NewGate creates the access-control middleware.
func NewGate(tokens *auth.TokenIssuer) *Gate {
	return &Gate{tokens: tokens}
}

// Handler rejects requests without a token (401) or with an invalid or
// expired one (403) and attaches the resolved identity to the context
// otherwise.
func (g *Gate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		claims, err := g.tokens.Verify(token)
		if err != nil {
			writeError(w, http.StatusForbidden, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), claims)))
	})
}

// WithIdentity returns a context carrying the resolved claims.
func WithIdentity(ctx context.Context, claims domain.Claims) context.Context {
	return context.WithValue(ctx, identityContextKey, claims)
}

// Identity retrieves the authenticated claims from the request context.
func Identity(ctx context.Context) (domain.Claims, bool) {
	claims, ok := ctx.Value(identityContextKey).(domain.Claims)
	return claims, ok
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
