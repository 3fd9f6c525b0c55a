package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/arisehq/arise/arisecore/database/models"
)

// MemoryUserRepository keeps the account registry in process memory. It is
// the database-less counterpart of store.Memory and backs the engine's
// tests and local development runs.
type MemoryUserRepository struct {
	mu     sync.RWMutex
	nextID int64
	users  map[string]*models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]*models.User)}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	stored := *user
	r.users[user.Username] = &stored
	return nil
}

func (r *MemoryUserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	out := *user
	return &out, nil
}

func (r *MemoryUserRepository) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[user.Username]
	if !ok {
		return ErrUserNotFound
	}
	user.UpdatedAt = time.Now()
	*stored = *user
	return nil
}

func (r *MemoryUserRepository) CreditCurrency(_ context.Context, username string, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return ErrUserNotFound
	}
	user.Currency += delta
	user.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryUserRepository) GetCurrency(_ context.Context, username string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return 0, ErrUserNotFound
	}
	return user.Currency, nil
}

func (r *MemoryUserRepository) SetLoggedIn(_ context.Context, username string, loggedIn bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return ErrUserNotFound
	}
	user.LoggedIn = loggedIn
	user.UpdatedAt = time.Now()
	return nil
}
