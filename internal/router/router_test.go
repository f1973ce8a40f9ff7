package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
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
	"go-auth-api/internal/service"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		ServerPort:       "3000",
		RequestTimeout:   30 * time.Second,
		JWTSecret:        "test-secret",
		JWTTTL:           time.Hour,
		BcryptCost:       bcrypt.MinCost,
		CORSOrigins:      []string{"*"},
		RateLimitRPM:     10000,
		AuthRateLimitRPM: 10000,
	}

	tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	require.NoError(t, err)

	authService := service.NewAuthService(
		repository.NewMemoryDirectory(),
		service.NewBcryptHasher(cfg.BcryptCost),
		tokens,
	)

	server := httptest.NewServer(New(cfg, middleware.NewAuthMiddleware(tokens), Handlers{
		Auth:    handler.NewAuthHandler(authService),
		User:    handler.NewUserHandler(authService),
		Private: handler.NewPrivateHandler(),
		Docs:    handler.NewDocsHandler("does-not-exist.yaml"),
	}))
	t.Cleanup(server.Close)

	return server
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func doAuthed(t *testing.T, method string, url string, token string) *http.Response {
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

func signup(t *testing.T, serverURL string, email string, password string, role string) (int64, string) {
	t.Helper()

	resp := postJSON(t, serverURL+"/api/auth/signup", map[string]string{
		"email": email, "password": password, "role": role,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var parsed struct {
		Message string `json:"message"`
		User    struct {
			ID    int64  `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	require.NotEmpty(t, parsed.Token)

	return parsed.User.ID, parsed.Token
}

func TestSignup(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/auth/signup", map[string]string{
		"email": "a@x.com", "password": "P@ss1234", "role": "user",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed struct {
		Message string         `json:"message"`
		User    map[string]any `json:"user"`
		Token   string         `json:"token"`
	}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	require.Equal(t, "User created successfully", parsed.Message)
	require.Equal(t, "a@x.com", parsed.User["email"])
	require.Equal(t, "user", parsed.User["role"])
	require.NotContains(t, parsed.User, "password")
	require.NotContains(t, parsed.User, "password_hash")
	require.NotEmpty(t, parsed.Token)

	// Same email again, any casing: 400.
	dup := postJSON(t, server.URL+"/api/auth/signup", map[string]string{
		"email": "A@x.com", "password": "other", "role": "admin",
	})
	require.Equal(t, http.StatusBadRequest, dup.StatusCode)

	var dupBody struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(dup.Body).Decode(&dupBody))
	require.Equal(t, "User already exists", dupBody.Message)
}

func TestSignup_MalformedBody(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	resp, err := http.Post(server.URL+"/api/auth/signup", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSignin(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	signup(t, server.URL, "a@x.com", "P@ss1234", "user")

	ok := postJSON(t, server.URL+"/api/auth/signin", map[string]string{
		"email": "a@x.com", "password": "P@ss1234",
	})
	require.Equal(t, http.StatusOK, ok.StatusCode)

	var parsed struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(ok.Body).Decode(&parsed))
	require.Equal(t, "Login successful", parsed.Message)
	require.NotEmpty(t, parsed.Token)

	wrongPassword := postJSON(t, server.URL+"/api/auth/signin", map[string]string{
		"email": "a@x.com", "password": "nope",
	})
	require.Equal(t, http.StatusUnauthorized, wrongPassword.StatusCode)

	unknownEmail := postJSON(t, server.URL+"/api/auth/signin", map[string]string{
		"email": "nobody@x.com", "password": "P@ss1234",
	})
	require.Equal(t, http.StatusNotFound, unknownEmail.StatusCode)
}

func TestFindAll(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	_, token := signup(t, server.URL, "a@x.com", "P@ss1234", "user")

	noHeader := doAuthed(t, http.MethodGet, server.URL+"/api/user/findAll", "")
	require.Equal(t, http.StatusUnauthorized, noHeader.StatusCode)

	garbage := doAuthed(t, http.MethodGet, server.URL+"/api/user/findAll", "garbage-token")
	require.Equal(t, http.StatusForbidden, garbage.StatusCode)

	ok := doAuthed(t, http.MethodGet, server.URL+"/api/user/findAll", token)
	require.Equal(t, http.StatusOK, ok.StatusCode)

	var users []map[string]any
	require.NoError(t, json.NewDecoder(ok.Body).Decode(&users))
	require.Len(t, users, 1)
	for _, user := range users {
		require.NotContains(t, user, "password")
		require.NotContains(t, user, "password_hash")
	}
}

func TestDashboard(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	_, token := signup(t, server.URL, "a@x.com", "P@ss1234", "user")

	resp := doAuthed(t, http.MethodGet, server.URL+"/api/private/dashboard", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	require.Equal(t, "Welcome to the dashboard, a@x.com", parsed.Message)
}

func TestDeleteUser(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	_, token := signup(t, server.URL, "a@x.com", "P@ss1234", "user")
	victimID, _ := signup(t, server.URL, "b@x.com", "P@ss1234", "user")

	missing := doAuthed(t, http.MethodDelete, server.URL+"/api/user/delete/999", token)
	require.Equal(t, http.StatusNotFound, missing.StatusCode)

	// Any authenticated user may delete any id.
	deleted := doAuthed(t, http.MethodDelete, fmt.Sprintf("%s/api/user/delete/%d", server.URL, victimID), token)
	require.Equal(t, http.StatusOK, deleted.StatusCode)

	list := doAuthed(t, http.MethodGet, server.URL+"/api/user/findAll", token)
	require.Equal(t, http.StatusOK, list.StatusCode)

	var users []map[string]any
	require.NoError(t, json.NewDecoder(list.Body).Decode(&users))
	require.Len(t, users, 1)
	require.Equal(t, "a@x.com", users[0]["email"])
}

func TestHealth(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
