package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/readtrack/books-api/internal/core/domain"
)

// Claims is the JWT payload: registered claims plus the kind discriminator.
type Claims struct {
	Kind domain.TokenKind `json:"type"`
	jwt.RegisteredClaims
}

// JWTCodec issues and verifies HS256 tokens.
type JWTCodec struct {
	cfg Config
	now func() time.Time
}

// NewJWTCodec returns a codec bound to a private copy of cfg.
func NewJWTCodec(cfg Config) (*JWTCodec, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &JWTCodec{cfg: cfg.clone(), now: time.Now}, nil
}

// WithClock returns a copy of the codec that reads time from now.
func (c *JWTCodec) WithClock(now func() time.Time) *JWTCodec {
	cp := *c
	cp.now = now
	return &cp
}

// Issue signs a token of the given kind for userID.
func (c *JWTCodec) Issue(userID string, kind domain.TokenKind) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("issue token: unknown kind %q", kind)
	}
	if userID == "" {
		return "", errors.New("issue token: empty subject")
	}

	now := c.now()
	claims := Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.cfg.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl(kind))),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return signed, nil
}

// IssuePair signs a fresh access/refresh pair for userID.
func (c *JWTCodec) IssuePair(userID string) (domain.TokenPair, error) {
	access, err := c.Issue(userID, domain.TokenAccess)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := c.Issue(userID, domain.TokenRefresh)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Verify checks signature, algorithm, issuer and expiry and returns the
// decoded claims. It does not check the kind; callers decide which kind
// they accept.
func (c *JWTCodec) Verify(token string) (domain.TokenClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(c.now),
	}
	if c.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.cfg.Issuer))
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return c.cfg.Secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.TokenClaims{}, domain.ErrTokenExpired
		}
		return domain.TokenClaims{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" || !claims.Kind.Valid() {
		return domain.TokenClaims{}, domain.ErrInvalidToken
	}

	out := domain.TokenClaims{
		Subject: claims.Subject,
		Kind:    claims.Kind,
		ID:      claims.ID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

func (c *JWTCodec) ttl(kind domain.TokenKind) time.Duration {
	if kind == domain.TokenRefresh {
		return c.cfg.RefreshTTL
	}
	return c.cfg.AccessTTL
}
