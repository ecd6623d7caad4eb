package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/readtrack/books-api/internal/api/handler"
	"github.com/readtrack/books-api/internal/api/metrics"
	"github.com/readtrack/books-api/internal/core/domain"
	"github.com/readtrack/books-api/internal/core/ports"
)

const bearerScheme = "bearer"

// Auth runs the authorization gate on every request it wraps. On success the
// resolved session is available to handlers through handler.SessionFrom; on
// failure the request never reaches next. Every rejection is reported to the
// client as a plain 401; the reason only goes to logs and metrics.
func Auth(gate ports.Authorizer, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return reject(c, log, "missing_header", domain.ErrInvalidToken)
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			token = strings.TrimSpace(token)
			if !ok || !strings.EqualFold(scheme, bearerScheme) || token == "" {
				return reject(c, log, "malformed_header", domain.ErrInvalidToken)
			}

			session, err := gate.Authorize(c.Request().Context(), token)
			if err != nil {
				if !errors.Is(err, domain.ErrUnauthorized) {
					return err
				}
				return reject(c, log, rejectionReason(err), err)
			}

			handler.WithSession(c, session)
			return next(c)
		}
	}
}

func reject(c echo.Context, log zerolog.Logger, reason string, err error) error {
	metrics.GateRejectionsTotal.WithLabelValues(reason).Inc()
	log.Warn().
		Str("reason", reason).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("remote_ip", c.RealIP()).
		Msg("request rejected by authorization gate")
	return err
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenKind):
		return "wrong_kind"
	case errors.Is(err, domain.ErrTokenRevoked):
		return "revoked"
	case errors.Is(err, domain.ErrUnknownSubject):
		return "unknown_user"
	default:
		return "invalid"
	}
}
