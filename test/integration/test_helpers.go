//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"go-auth-api/internal/config"
	"go-auth-api/internal/handler"
	"go-auth-api/internal/middleware"
	"go-auth-api/internal/repository"
	"go-auth-api/internal/router"
	"go-auth-api/internal/service"
)

const (
	demoEmail    = "demo@example.com"
	demoPassword = "Demo@123"
)

func newSeededServer(t *testing.T, users repository.UserDirectory) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		ServerPort:       "3000",
		RequestTimeout:   30 * time.Second,
		JWTSecret:        "integration-secret",
		JWTTTL:           time.Hour,
		BcryptCost:       bcrypt.MinCost,
		CORSOrigins:      []string{"*"},
		RateLimitRPM:     10000,
		AuthRateLimitRPM: 10000,
		SeedEmail:        demoEmail,
		SeedPassword:     demoPassword,
		SeedRole:         "user",
	}

	tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	require.NoError(t, err)

	authService := service.NewAuthService(users, service.NewBcryptHasher(cfg.BcryptCost), tokens)
	require.NoError(t, authService.Seed(t.Context(), cfg.SeedEmail, cfg.SeedPassword, cfg.SeedRole))

	server := httptest.NewServer(router.New(cfg, middleware.NewAuthMiddleware(tokens), router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		User:    handler.NewUserHandler(authService),
		Private: handler.NewPrivateHandler(),
		Docs:    handler.NewDocsHandler("../../docs/openapi.yaml"),
	}))
	t.Cleanup(server.Close)

	return server
}

func signin(t *testing.T, serverURL string, email string, password string) *http.Response {
	t.Helper()

	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	require.NoError(t, err)

	resp, err := http.Post(serverURL+"/api/auth/signin", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func signinToken(t *testing.T, serverURL string) string {
	t.Helper()

	resp := signin(t, serverURL, demoEmail, demoPassword)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	require.NotEmpty(t, parsed.Token)

	return parsed.Token
}

func doAuthRequest(t *testing.T, method string, url string, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}
