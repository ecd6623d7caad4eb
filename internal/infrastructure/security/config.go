// Package security holds the token codec and credential verifier. Both are
// built from an immutable Config; nothing here reads the environment.
package security

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// MinSecretLength is the shortest HMAC secret accepted, in bytes.
const MinSecretLength = 32

// Config carries the process-wide signing and hashing settings.
type Config struct {
	Secret     []byte
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	BcryptCost int
}

// Validate reports the first setting that would make the codec unsafe to use.
func (c Config) Validate() error {
	switch {
	case len(c.Secret) < MinSecretLength:
		return errors.New("security: secret must be at least 32 bytes")
	case c.AccessTTL <= 0:
		return errors.New("security: access token ttl must be positive")
	case c.RefreshTTL <= 0:
		return errors.New("security: refresh token ttl must be positive")
	}
	return nil
}

// clone detaches the secret from the caller's slice.
func (c Config) clone() Config {
	out := c
	out.Secret = append([]byte(nil), c.Secret...)
	if out.BcryptCost == 0 {
		out.BcryptCost = bcrypt.DefaultCost
	}
	return out
}
