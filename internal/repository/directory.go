// Package repository provides the user directory backends. All backends share
// the same contract: email uniqueness and lookup are case-insensitive (the
// stored casing is preserved) and IDs are strictly monotonic, so a deleted
// user's ID is never reissued.
package repository

import (
	"context"

	"go-auth-api/internal/model"
)

// UserDirectory is the storage contract consumed by the auth service.
// Insert must be atomic with respect to the duplicate check: two concurrent
// inserts for the same email must not both succeed.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByID(ctx context.Context, id int64) (model.User, error)
	Insert(ctx context.Context, email string, passwordHash string, role string) (model.User, error)
	DeleteByID(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.User, error)
}
