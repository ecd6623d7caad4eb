package ports

import (
	"context"

	"github.com/readtrack/books-api/internal/core/domain"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	Tokens domain.TokenPair
	User   *domain.User
}

type AuthService interface {
	Signup(ctx context.Context, email, password, name string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	RefreshTokens(ctx context.Context, refreshToken string) (domain.TokenPair, error)
	Logout(ctx context.Context, userID string) error
	Current(session *domain.Session) *LoginResult
}

// Authorizer resolves a presented access token to the session on record.
type Authorizer interface {
	Authorize(ctx context.Context, accessToken string) (*domain.Session, error)
}

// TokenCodec signs and verifies access/refresh tokens. It performs no I/O.
type TokenCodec interface {
	Issue(userID string, kind domain.TokenKind) (string, error)
	IssuePair(userID string) (domain.TokenPair, error)
	Verify(token string) (domain.TokenClaims, error)
}

// PasswordHasher hashes secrets and checks plaintext against a stored digest.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Matches(plain, digest string) bool
}
