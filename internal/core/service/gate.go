package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/readtrack/books-api/internal/core/domain"
	"github.com/readtrack/books-api/internal/core/ports"
)

// Gate is the authorization checkpoint in front of every protected route.
// It holds no state of its own and never mutates the store.
type Gate struct {
	users ports.UserRepository
	codec ports.TokenCodec
}

func NewGate(users ports.UserRepository, codec ports.TokenCodec) *Gate {
	return &Gate{users: users, codec: codec}
}

// Authorize accepts accessToken only if it verifies, is an access token, and
// is byte-for-byte the access token currently on record for its subject.
// Every rejection wraps domain.ErrUnauthorized.
func (g *Gate) Authorize(ctx context.Context, accessToken string) (*domain.Session, error) {
	if accessToken == "" {
		return nil, domain.ErrInvalidToken
	}

	claims, err := g.codec.Verify(accessToken)
	if err != nil {
		return nil, err
	}
	if claims.Kind != domain.TokenAccess {
		return nil, domain.ErrTokenKind
	}

	user, err := g.users.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnknownSubject
		}
		return nil, fmt.Errorf("authorize: %w", err)
	}

	if !user.LoggedIn() || subtle.ConstantTimeCompare([]byte(user.Tokens.AccessToken), []byte(accessToken)) != 1 {
		return nil, domain.ErrTokenRevoked
	}

	return &domain.Session{User: user, Tokens: *user.Tokens}, nil
}
