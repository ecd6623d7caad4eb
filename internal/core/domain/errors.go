package domain

import (
	"errors"
	"fmt"
)

// Error categories. The HTTP layer maps each category to a status code;
// specific errors below wrap exactly one of them.
var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("not authorized")
	ErrNotFound     = errors.New("not found")
)

var (
	ErrEmailInUse = fmt.Errorf("email in use: %w", ErrConflict)

	// ErrInvalidCredentials is returned for both an unknown email and a wrong
	// password so callers cannot tell which one failed.
	ErrInvalidCredentials = fmt.Errorf("email or password invalid: %w", ErrUnauthorized)

	ErrInvalidToken = fmt.Errorf("invalid token: %w", ErrUnauthorized)
	ErrTokenExpired = fmt.Errorf("token expired: %w", ErrInvalidToken)
	ErrTokenKind    = fmt.Errorf("unexpected token kind: %w", ErrInvalidToken)
	ErrTokenRevoked = fmt.Errorf("token does not match the one on record: %w", ErrInvalidToken)

	ErrUnknownSubject = fmt.Errorf("token subject does not exist: %w", ErrInvalidToken)

	ErrUserNotFound = fmt.Errorf("user not found: %w", ErrNotFound)
	ErrBookNotFound = fmt.Errorf("book not found: %w", ErrNotFound)
)
