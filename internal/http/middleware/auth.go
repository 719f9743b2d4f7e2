package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ripu1821/mobile-auth-service/internal/http/response"
	"github.com/ripu1821/mobile-auth-service/internal/observability"
	"github.com/ripu1821/mobile-auth-service/internal/security"
	"github.com/ripu1821/mobile-auth-service/internal/service"
)

type contextKey string

const claimsContextKey contextKey = "auth_claims"

// TokenGuard rejects requests whose bearer token is missing, fails signature
// or expiry checks, or has been revoked. Revoked and invalid tokens get the
// same response; the caller cannot tell which check failed. Valid claims are
// attached to the request context.
type TokenGuard struct {
	tokens    *security.TokenManager
	blacklist service.TokenBlacklist
}

func NewTokenGuard(tokens *security.TokenManager, blacklist service.TokenBlacklist) *TokenGuard {
	return &TokenGuard{tokens: tokens, blacklist: blacklist}
}

func (g *TokenGuard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := BearerToken(r)
		if raw == "" {
			observability.RecordGuardDecision(r.Context(), "missing")
			response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token", nil)
			return
		}

		claims, err := g.tokens.ParseAccessToken(raw)
		if err != nil {
			observability.RecordGuardDecision(r.Context(), "invalid")
			response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token", nil)
			return
		}

		revoked, err := g.blacklist.Contains(r.Context(), raw)
		if err != nil {
			observability.RecordGuardDecision(r.Context(), "error")
			response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to check token", nil)
			return
		}
		if revoked {
			observability.RecordGuardDecision(r.Context(), "revoked")
			response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token", nil)
			return
		}

		observability.RecordGuardDecision(r.Context(), "valid")
		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func ClaimsFromContext(ctx context.Context) (*security.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*security.Claims)
	return claims, ok
}
