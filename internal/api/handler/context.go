package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/readtrack/books-api/internal/core/domain"
)

// sessionKey is where the Auth middleware leaves the resolved session.
const sessionKey = "user"

// WithSession attaches the gate-resolved session to the request context.
func WithSession(c echo.Context, s *domain.Session) {
	c.Set(sessionKey, s)
}

// SessionFrom returns the session placed by the Auth middleware. A missing
// session means the route was registered without the gate; it fails closed.
func SessionFrom(c echo.Context) (*domain.Session, error) {
	s, ok := c.Get(sessionKey).(*domain.Session)
	if !ok || s == nil || s.User == nil {
		return nil, domain.ErrUnauthorized
	}
	return s, nil
}
