package ports

import (
	"context"

	"github.com/readtrack/books-api/internal/core/domain"
)

// UserRepository is the narrow user store the auth core depends on.
// Implementations must return domain.ErrUserNotFound for missing records and
// domain.ErrEmailInUse when Create hits an existing email.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// UpdateTokens atomically overwrites both token fields. A nil pair clears them.
	UpdateTokens(ctx context.Context, id string, tokens *domain.TokenPair) error
}
