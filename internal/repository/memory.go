package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go-auth-api/internal/model"
)

// MemoryDirectory is the default backend when no database is configured, and
// the backend used by the test suites.
type MemoryDirectory struct {
	mu      sync.RWMutex
	byEmail map[string]model.User
	byID    map[int64]model.User
	nextID  int64
}

func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{
		byEmail: map[string]model.User{},
		byID:    map[int64]model.User{},
	}
}

func (d *MemoryDirectory) FindByEmail(_ context.Context, email string) (model.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	user, exists := d.byEmail[foldEmail(email)]
	if !exists {
		return model.User{}, model.ErrUserNotFound
	}

	return user, nil
}

func (d *MemoryDirectory) FindByID(_ context.Context, id int64) (model.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	user, exists := d.byID[id]
	if !exists {
		return model.User{}, model.ErrUserNotFound
	}

	return user, nil
}

func (d *MemoryDirectory) Insert(_ context.Context, email string, passwordHash string, role string) (model.User, error) {
	key := foldEmail(email)

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.byEmail[key]; exists {
		return model.User{}, model.ErrDuplicateEmail
	}

	d.nextID++
	user := model.User{
		ID:           d.nextID,
		Email:        strings.TrimSpace(email),
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	d.byEmail[key] = user
	d.byID[user.ID] = user

	return user, nil
}

func (d *MemoryDirectory) DeleteByID(_ context.Context, id int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	user, exists := d.byID[id]
	if !exists {
		return model.ErrUserNotFound
	}

	delete(d.byID, id)
	delete(d.byEmail, foldEmail(user.Email))

	return nil
}

func (d *MemoryDirectory) List(_ context.Context) ([]model.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	users := make([]model.User, 0, len(d.byID))
	for _, user := range d.byID {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	return users, nil
}

func foldEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
