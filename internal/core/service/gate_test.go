package service

import (
	"context"
	"errors"
	"testing"

	"github.com/readtrack/books-api/internal/core/domain"
)

func TestGate_Authorize_Success(t *testing.T) {
	f := newAuthFixture()
	res := f.signupAndLogin(t, "a@x.com", "pw", "A")

	session, err := f.gate.Authorize(context.Background(), res.Tokens.AccessToken)
	if err != nil {
		t.Fatalf("Authorize returned error: %v", err)
	}
	if session.User.ID != res.User.ID {
		t.Errorf("expected user %s, got %s", res.User.ID, session.User.ID)
	}
	if session.Tokens != res.Tokens {
		t.Errorf("expected session to carry the stored pair")
	}
}

func TestGate_Authorize_Rejections(t *testing.T) {
	f := newAuthFixture()
	res := f.signupAndLogin(t, "a@x.com", "pw", "A")
	expiredAccess, _ := f.codec.Issue(res.User.ID, domain.TokenAccess)
	f.codec.expired[expiredAccess] = true

	cases := []struct {
		name  string
		token string
		want  error
	}{
		{"missing", "", domain.ErrInvalidToken},
		{"malformed", "not-a-token", domain.ErrInvalidToken},
		{"expired", expiredAccess, domain.ErrTokenExpired},
		{"refresh token", res.Tokens.RefreshToken, domain.ErrTokenKind},
		{"unknown subject", "access.user-404.1", domain.ErrUnknownSubject},
		{"valid but not on record", "access." + res.User.ID + ".999", domain.ErrTokenRevoked},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.gate.Authorize(context.Background(), tc.token)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !errors.Is(err, domain.ErrUnauthorized) {
				t.Fatalf("every rejection must be unauthorized, got %v", err)
			}
		})
	}
}

func TestGate_Authorize_LoggedOut(t *testing.T) {
	f := newAuthFixture()
	res := f.signupAndLogin(t, "a@x.com", "pw", "A")
	if err := f.svc.Logout(context.Background(), res.User.ID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if _, err := f.gate.Authorize(context.Background(), res.Tokens.AccessToken); !errors.Is(err, domain.ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked, got %v", err)
	}
}

func TestGate_Authorize_StoreErrorIsNotUnauthorized(t *testing.T) {
	f := newAuthFixture()
	res := f.signupAndLogin(t, "a@x.com", "pw", "A")
	f.repo.findErr = errors.New("connection reset")

	_, err := f.gate.Authorize(context.Background(), res.Tokens.AccessToken)
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("infrastructure failure must not look like a rejected token: %v", err)
	}
}

func TestGate_Authorize_DoesNotMutateStore(t *testing.T) {
	f := newAuthFixture()
	res := f.signupAndLogin(t, "a@x.com", "pw", "A")
	before := f.repo.updates

	for i := 0; i < 3; i++ {
		if _, err := f.gate.Authorize(context.Background(), res.Tokens.AccessToken); err != nil {
			t.Fatalf("Authorize #%d failed: %v", i, err)
		}
	}
	if f.repo.updates != before {
		t.Fatalf("gate wrote to the store %d times", f.repo.updates-before)
	}
}
