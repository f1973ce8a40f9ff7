package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go-auth-api/internal/model"
	"go-auth-api/internal/service"
)

type tokenVerifier interface {
	Verify(tokenString string) (*service.Claims, error)
}

type contextKey string

const claimsContextKey contextKey = "auth_claims"

// AuthMiddleware gates requests on a bearer token. A missing or non-bearer
// Authorization header is 401; a header whose token fails verification
// (tampered, expired, malformed) is 403.
type AuthMiddleware struct {
	verifier tokenVerifier
}

func NewAuthMiddleware(verifier tokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		token := strings.TrimSpace(header[len("bearer "):])
		claims, err := m.verifier.Verify(token)
		if err != nil {
			writeAuthError(w, http.StatusForbidden, "Forbidden")
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func ClaimsFromContext(ctx context.Context) (*service.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*service.Claims)
	return claims, ok
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{Message: message})
}
