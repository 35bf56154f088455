package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/osse101/EasyPost_Go/internal/logger"
)

type contextKey string

const claimsContextKey contextKey = "auth_claims"

// RequireAuth wraps an http.Handler and rejects requests that do not carry
// a valid bearer token. Verified claims are stored on the request context.
func RequireAuth(manager *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromContext(r.Context())

			header := r.Header.Get(AuthorizationHeader)
			if !strings.HasPrefix(header, BearerPrefix) {
				respondUnauthorized(w, "missing bearer token")
				return
			}

			claims, err := manager.Verify(strings.TrimPrefix(header, BearerPrefix))
			if err != nil {
				log.Warn(LogMsgTokenRejected, "error", err)
				respondUnauthorized(w, "invalid or expired token")
				return
			}

			ctx := ContextWithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ContextWithClaims returns a context carrying the verified claims.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext retrieves claims stored by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	return claims, ok
}

// UserIDFromContext returns the authenticated user's ID, or 0 when absent.
func UserIDFromContext(ctx context.Context) int64 {
	if claims, ok := ClaimsFromContext(ctx); ok {
		return claims.UserID
	}
	return 0
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
