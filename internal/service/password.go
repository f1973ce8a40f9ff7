package service

import "golang.org/x/crypto/bcrypt"

// PasswordHasher abstracts the hashing algorithm so the auth service stays
// testable with a cheap cost factor.
type PasswordHasher interface {
	// Hash generates a salted hash; two calls with the same input yield
	// different outputs.
	Hash(password string) (string, error)

	// Check reports whether password matches hash. The final comparison is
	// constant-time.
	Check(password string, hash string) bool
}

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = 10
	}

	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// Check never panics: a malformed stored hash simply fails the comparison.
func (h *BcryptHasher) Check(password string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
