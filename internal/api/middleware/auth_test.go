package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/readtrack/books-api/internal/api/handler"
	"github.com/readtrack/books-api/internal/api/metrics"
	"github.com/readtrack/books-api/internal/core/domain"
)

type stubGate struct {
	session *domain.Session
	err     error
	seen    string
}

func (g *stubGate) Authorize(_ context.Context, token string) (*domain.Session, error) {
	g.seen = token
	return g.session, g.err
}

func runAuth(t *testing.T, gate *stubGate, header string) (bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	h := Auth(gate, zerolog.Nop())(func(c echo.Context) error {
		called = true
		s, err := handler.SessionFrom(c)
		if err != nil {
			t.Fatalf("session not attached: %v", err)
		}
		if s != gate.session {
			t.Fatalf("unexpected session attached")
		}
		return c.NoContent(http.StatusOK)
	})
	err := h(c)
	return called, err
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	gate := &stubGate{session: &domain.Session{User: &domain.User{ID: "u1"}}}

	called, err := runAuth(t, gate, "Bearer tok-123")
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next not called")
	}
	if gate.seen != "tok-123" {
		t.Fatalf("gate saw %q", gate.seen)
	}
}

func TestAuthMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	gate := &stubGate{session: &domain.Session{User: &domain.User{ID: "u1"}}}

	if called, err := runAuth(t, gate, "bearer tok"); err != nil || !called {
		t.Fatalf("expected lowercase scheme to pass: err=%v called=%v", err, called)
	}
}

func TestAuthMiddleware_BadHeaders(t *testing.T) {
	cases := map[string]struct {
		header string
		reason string
	}{
		"missing":      {"", "missing_header"},
		"wrong scheme": {"Token abc", "malformed_header"},
		"no token":     {"Bearer ", "malformed_header"},
		"no space":     {"Bearerabc", "malformed_header"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			gate := &stubGate{}
			before := testutil.ToFloat64(metrics.GateRejectionsTotal.WithLabelValues(tc.reason))

			called, err := runAuth(t, gate, tc.header)
			if called {
				t.Fatal("should not reach next")
			}
			if !errors.Is(err, domain.ErrUnauthorized) {
				t.Fatalf("expected unauthorized, got %v", err)
			}
			if gate.seen != "" {
				t.Fatal("gate must not run for a malformed header")
			}
			if got := testutil.ToFloat64(metrics.GateRejectionsTotal.WithLabelValues(tc.reason)); got != before+1 {
				t.Fatalf("expected %s counter to increase", tc.reason)
			}
		})
	}
}

func TestAuthMiddleware_GateRejections(t *testing.T) {
	cases := []struct {
		err    error
		reason string
	}{
		{domain.ErrTokenExpired, "expired"},
		{domain.ErrTokenKind, "wrong_kind"},
		{domain.ErrTokenRevoked, "revoked"},
		{domain.ErrUnknownSubject, "unknown_user"},
		{domain.ErrInvalidToken, "invalid"},
	}

	for _, tc := range cases {
		t.Run(tc.reason, func(t *testing.T) {
			before := testutil.ToFloat64(metrics.GateRejectionsTotal.WithLabelValues(tc.reason))

			called, err := runAuth(t, &stubGate{err: tc.err}, "Bearer x")
			if called {
				t.Fatal("should not reach next")
			}
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected %v, got %v", tc.err, err)
			}
			if got := testutil.ToFloat64(metrics.GateRejectionsTotal.WithLabelValues(tc.reason)); got != before+1 {
				t.Fatalf("expected %s counter to increase", tc.reason)
			}
		})
	}
}

func TestAuthMiddleware_StoreErrorPassesThrough(t *testing.T) {
	storeErr := errors.New("mongo down")

	called, err := runAuth(t, &stubGate{err: storeErr}, "Bearer x")
	if called {
		t.Fatal("should not reach next")
	}
	if !errors.Is(err, storeErr) || errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected raw store error, got %v", err)
	}
}

func TestRejectionReason(t *testing.T) {
	if got := rejectionReason(errors.New("other")); got != "invalid" {
		t.Fatalf("expected invalid, got %s", got)
	}
}
