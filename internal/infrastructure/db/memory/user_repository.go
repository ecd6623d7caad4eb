// Package memory provides in-process implementations of the repository ports.
// They back STORE_DRIVER=memory and the end-to-end router tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/readtrack/books-api/internal/core/domain"
	"github.com/readtrack/books-api/internal/core/ports"
)

type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.User
	byEmail map[string]string
	now     func() time.Time
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return nil, domain.ErrEmailInUse
	}

	stored := copyUser(user)
	stored.ID = uuid.NewString()
	stored.Tokens = nil
	r.byID[stored.ID] = stored
	r.byEmail[stored.Email] = stored.ID
	return copyUser(stored), nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return copyUser(u), nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return copyUser(r.byID[id]), nil
}

func (r *UserRepository) UpdateTokens(_ context.Context, id string, tokens *domain.TokenPair) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if tokens == nil {
		u.Tokens = nil
	} else {
		pair := *tokens
		u.Tokens = &pair
	}
	u.UpdatedAt = r.now().UTC()
	return nil
}

// copyUser detaches callers from the stored record, token pair included.
func copyUser(u *domain.User) *domain.User {
	c := *u
	if u.Tokens != nil {
		pair := *u.Tokens
		c.Tokens = &pair
	}
	return &c
}
