package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-auth-api/internal/model"
	"go-auth-api/internal/service"
)

func newGatedHandler(t *testing.T) (*service.TokenService, http.Handler) {
	t.Helper()

	tokens, err := service.NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)

	mw := NewAuthMiddleware(tokens)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		require.NotEmpty(t, claims.Email)
		w.WriteHeader(http.StatusOK)
	})

	return tokens, mw.RequireAuth(next)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	t.Parallel()

	_, handler := newGatedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/user/findAll", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
}

func TestRequireAuth_NonBearerHeader(t *testing.T) {
	t.Parallel()

	_, handler := newGatedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/user/findAll", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	t.Parallel()

	_, handler := newGatedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/user/findAll", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.JSONEq(t, `{"message":"Forbidden"}`, rec.Body.String())
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	t.Parallel()

	tokens, handler := newGatedHandler(t)

	expired, err := tokens.IssueWithTTL(model.User{ID: 1, Email: "a@x.com", Role: "user"}, -time.Second)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/user/findAll", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	t.Parallel()

	tokens, handler := newGatedHandler(t)

	token, err := tokens.Issue(model.User{ID: 1, Email: "a@x.com", Role: "user"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/user/findAll", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
