package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/readtrack/books-api/internal/api/metrics"
	"github.com/readtrack/books-api/internal/core/domain"
	"github.com/readtrack/books-api/internal/core/ports"
)

// AuthService implements signup, login, token refresh and logout. It is the
// only writer of a user's token pair.
type AuthService struct {
	users  ports.UserRepository
	codec  ports.TokenCodec
	hasher ports.PasswordHasher
	audit  ports.AuditSink
	log    zerolog.Logger
	now    func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	codec ports.TokenCodec,
	hasher ports.PasswordHasher,
	audit ports.AuditSink,
	log zerolog.Logger,
) *AuthService {
	if audit == nil {
		audit = ports.NopAuditSink{}
	}
	return &AuthService{
		users:  users,
		codec:  codec,
		hasher: hasher,
		audit:  audit,
		log:    log,
		now:    time.Now,
	}
}

// Signup registers a new user. No token pair is issued; the first pair
// appears at login.
func (s *AuthService) Signup(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("signup: email and password are required: %w", domain.ErrValidation)
	}

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		metrics.AuthOperationsTotal.WithLabelValues("signup", "rejected").Inc()
		return nil, domain.ErrEmailInUse
	case !errors.Is(err, domain.ErrUserNotFound):
		metrics.AuthOperationsTotal.WithLabelValues("signup", "error").Inc()
		return nil, fmt.Errorf("signup: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		metrics.AuthOperationsTotal.WithLabelValues("signup", "error").Inc()
		return nil, fmt.Errorf("signup: %w", err)
	}

	now := s.now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// A concurrent signup can still win the race past FindByEmail.
		if errors.Is(err, domain.ErrEmailInUse) {
			metrics.AuthOperationsTotal.WithLabelValues("signup", "rejected").Inc()
			return nil, err
		}
		metrics.AuthOperationsTotal.WithLabelValues("signup", "error").Inc()
		return nil, fmt.Errorf("signup: %w", err)
	}

	metrics.AuthOperationsTotal.WithLabelValues("signup", "success").Inc()
	s.record(domain.EventSignup, created.ID, created.Email)
	s.log.Info().Str("user_id", created.ID).Msg("user signed up")
	return created, nil
}

// Login checks credentials and issues a fresh pair, replacing whatever pair
// was on record.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = domain.NormalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, s.loginFailed(email, "", "unknown email")
		}
		metrics.AuthOperationsTotal.WithLabelValues("login", "error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Matches(password, user.PasswordHash) {
		return nil, s.loginFailed(email, user.ID, "password mismatch")
	}

	pair, err := s.issue(ctx, user.ID)
	if err != nil {
		metrics.AuthOperationsTotal.WithLabelValues("login", "error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}
	user.Tokens = &pair

	metrics.AuthOperationsTotal.WithLabelValues("login", "success").Inc()
	s.record(domain.EventLogin, user.ID, user.Email)
	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return &ports.LoginResult{Tokens: pair, User: user}, nil
}

// RefreshTokens exchanges a refresh token for a new pair. The presented token
// is checked for signature, expiry and kind only; it is not compared with the
// stored refresh token. Overwriting the stored pair is what retires the old one.
func (s *AuthService) RefreshTokens(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	claims, err := s.codec.Verify(refreshToken)
	if err != nil {
		metrics.AuthOperationsTotal.WithLabelValues("refresh", "rejected").Inc()
		s.log.Warn().Err(err).Msg("refresh rejected")
		return domain.TokenPair{}, err
	}
	if claims.Kind != domain.TokenRefresh {
		metrics.AuthOperationsTotal.WithLabelValues("refresh", "rejected").Inc()
		s.log.Warn().Str("kind", string(claims.Kind)).Str("user_id", claims.Subject).Msg("refresh rejected: wrong token kind")
		return domain.TokenPair{}, domain.ErrTokenKind
	}

	pair, err := s.issue(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.AuthOperationsTotal.WithLabelValues("refresh", "rejected").Inc()
			return domain.TokenPair{}, err
		}
		metrics.AuthOperationsTotal.WithLabelValues("refresh", "error").Inc()
		return domain.TokenPair{}, fmt.Errorf("refresh tokens: %w", err)
	}

	metrics.AuthOperationsTotal.WithLabelValues("refresh", "success").Inc()
	s.record(domain.EventRefresh, claims.Subject, "")
	s.log.Debug().Str("user_id", claims.Subject).Msg("tokens refreshed")
	return pair, nil
}

// Logout clears the user's pair. Calling it on a logged-out user is a no-op.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.users.UpdateTokens(ctx, userID, nil); err != nil {
		metrics.AuthOperationsTotal.WithLabelValues("logout", "error").Inc()
		return fmt.Errorf("logout: %w", err)
	}

	metrics.AuthOperationsTotal.WithLabelValues("logout", "success").Inc()
	s.record(domain.EventLogout, userID, "")
	s.log.Info().Str("user_id", userID).Msg("user logged out")
	return nil
}

// Current projects the session resolved by the gate. It does not touch the store.
func (s *AuthService) Current(session *domain.Session) *ports.LoginResult {
	if session == nil {
		return nil
	}
	return &ports.LoginResult{Tokens: session.Tokens, User: session.User}
}

// issue signs a new pair and stores it over the previous one.
func (s *AuthService) issue(ctx context.Context, userID string) (domain.TokenPair, error) {
	pair, err := s.codec.IssuePair(userID)
	if err != nil {
		return domain.TokenPair{}, err
	}
	if err := s.users.UpdateTokens(ctx, userID, &pair); err != nil {
		return domain.TokenPair{}, err
	}
	return pair, nil
}

func (s *AuthService) loginFailed(email, userID, reason string) error {
	metrics.AuthOperationsTotal.WithLabelValues("login", "rejected").Inc()
	s.record(domain.EventLoginFailed, userID, email)
	s.log.Warn().Str("email", email).Str("reason", reason).Msg("login rejected")
	return domain.ErrInvalidCredentials
}

func (s *AuthService) record(t domain.AuthEventType, userID, email string) {
	s.audit.Record(domain.AuthEvent{
		Type:      t,
		UserID:    userID,
		Email:     email,
		Timestamp: s.now().UTC(),
	})
}
