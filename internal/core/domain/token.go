package domain

import "time"

// TokenKind discriminates access tokens from refresh tokens.
type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

// Valid reports whether k is one of the known kinds.
func (k TokenKind) Valid() bool {
	return k == TokenAccess || k == TokenRefresh
}

// TokenPair is the access/refresh tuple on record for a user. Overwriting it
// is the only revocation mechanism.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenClaims is what a verified token decodes to.
type TokenClaims struct {
	Subject   string
	Kind      TokenKind
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
