package handler

import (
	"errors"
	"strings"
	"testing"
)

func TestValidator_UsesWireNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&refreshTokensRequest{})
	if err == nil || err.Error() != "refreshToken is required" {
		t.Fatalf("unexpected error: %v", err)
	}

	err = v.Validate(&bookIDRequest{})
	if err == nil || err.Error() != "bookId is required" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidator_JoinsMessages(t *testing.T) {
	err := NewValidator().Validate(&signupRequest{Email: "nope", Password: strings.Repeat("x", 80)})
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"email must be a valid email", "password must be at most 72 bytes", "name is required"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}
}

func TestValidator_OptionalPointers(t *testing.T) {
	v := NewValidator()
	if err := v.Validate(&updateResumeRequest{BookID: "b1"}); err != nil {
		t.Fatalf("nil rating must pass: %v", err)
	}
	bad := 6
	if err := v.Validate(&updateResumeRequest{BookID: "b1", Rating: &bad}); err == nil {
		t.Fatal("expected out-of-range rating to fail")
	}
}

func TestValidator_ReturnsValidationError(t *testing.T) {
	err := NewValidator().Validate(&updateStatusRequest{BookID: "b1", Status: "lost"})

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(ve.Problems) != 1 || ve.Problems[0] != "status must be one of: pending active done" {
		t.Fatalf("unexpected problems: %v", ve.Problems)
	}
}

func TestValidator_PasswordLimitCountsBytes(t *testing.T) {
	v := NewValidator()

	// 40 runes, 80 bytes.
	err := v.Validate(&loginRequest{Email: "a@x.io", Password: strings.Repeat("é", 40)})
	if err == nil || err.Error() != "password must be at most 72 bytes" {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.Validate(&loginRequest{Email: "a@x.io", Password: strings.Repeat("é", 36)}); err != nil {
		t.Fatalf("72-byte password must pass: %v", err)
	}
}
