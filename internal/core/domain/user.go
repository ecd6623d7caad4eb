package domain

import (
	"strings"
	"time"
)

// User models a registered reader.
//
// Tokens is nil while the user is logged out. Access and refresh tokens are
// always stored and cleared together, so a half-populated pair cannot exist.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Tokens       *TokenPair `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// LoggedIn reports whether the user currently holds a token pair.
func (u *User) LoggedIn() bool {
	return u != nil && u.Tokens != nil
}

// Session is the identity the authorization gate attaches to a request.
type Session struct {
	User   *User
	Tokens TokenPair
}

// NormalizeEmail trims and lower-cases an address before it is stored or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
