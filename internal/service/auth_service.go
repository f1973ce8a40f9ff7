package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go-auth-api/internal/model"
	"go-auth-api/internal/repository"
	"go-auth-api/pkg/apierror"
)

// AuthService orchestrates signup and signin over the user directory, the
// password hasher and the token service. It never logs or returns plaintext
// passwords or stored hashes.
type AuthService struct {
	users  repository.UserDirectory
	hasher PasswordHasher
	tokens *TokenService
}

func NewAuthService(users repository.UserDirectory, hasher PasswordHasher, tokens *TokenService) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// Signup is non-idempotent: a second call with the same email fails with
// ErrDuplicateEmail. The duplicate check and insert are atomic inside the
// directory, so concurrent signups cannot both succeed.
func (s *AuthService) Signup(ctx context.Context, email string, password string, role string) (model.PublicUser, string, error) {
	email = strings.TrimSpace(email)
	role = strings.ToLower(strings.TrimSpace(role))

	if email == "" || password == "" {
		return model.PublicUser{}, "", apierror.New("BAD_REQUEST", "email and password are required", http.StatusBadRequest)
	}
	if role == "" {
		role = "user"
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return model.PublicUser{}, "", err
	}

	user, err := s.users.Insert(ctx, email, hash, role)
	if err != nil {
		return model.PublicUser{}, "", err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return model.PublicUser{}, "", err
	}

	return user.Public(), token, nil
}

func (s *AuthService) Signin(ctx context.Context, email string, password string) (model.PublicUser, string, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return model.PublicUser{}, "", err
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		return model.PublicUser{}, "", model.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return model.PublicUser{}, "", err
	}

	return user.Public(), token, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]model.PublicUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	public := make([]model.PublicUser, 0, len(users))
	for _, user := range users {
		public = append(public, user.Public())
	}

	return public, nil
}

func (s *AuthService) DeleteUser(ctx context.Context, id int64) error {
	return s.users.DeleteByID(ctx, id)
}

// Seed inserts a well-known user on startup if the address is still free, so
// a fresh deployment has an account to sign in with.
func (s *AuthService) Seed(ctx context.Context, email string, password string, role string) error {
	_, _, err := s.Signup(ctx, email, password, role)
	if errors.Is(err, model.ErrDuplicateEmail) {
		return nil
	}

	return err
}
