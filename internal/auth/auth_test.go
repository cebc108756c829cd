package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func mintToken(t *testing.T, subject string, expiresAt time.Time, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestVerifyValidToken(t *testing.T) {
	verifier := NewVerifier([]byte(testSecret))
	raw := mintToken(t, "u1", time.Now().Add(time.Hour), testSecret)

	principal, err := verifier.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if principal.UserID != "u1" {
		t.Errorf("user = %q, want %q", principal.UserID, "u1")
	}
	if principal.Anonymous() {
		t.Error("principal should not be anonymous")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	verifier := NewVerifier([]byte(testSecret))
	raw := mintToken(t, "u1", time.Now().Add(-time.Hour), testSecret)
	if _, err := verifier.Verify(raw); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	verifier := NewVerifier([]byte(testSecret))
	raw := mintToken(t, "u1", time.Now().Add(time.Hour), "other-secret")
	if _, err := verifier.Verify(raw); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestFromRequest(t *testing.T) {
	verifier := NewVerifier([]byte(testSecret))

	r := httptest.NewRequest("GET", "/api/notes", nil)
	if principal := verifier.FromRequest(r); !principal.Anonymous() {
		t.Error("missing header should resolve anonymous")
	}

	r.Header.Set("Authorization", "Bearer not-a-token")
	if principal := verifier.FromRequest(r); !principal.Anonymous() {
		t.Error("malformed token should resolve anonymous")
	}

	r.Header.Set("Authorization", "Bearer "+mintToken(t, "u1", time.Now().Add(time.Hour), testSecret))
	if principal := verifier.FromRequest(r); principal.UserID != "u1" {
		t.Errorf("user = %q, want %q", principal.UserID, "u1")
	}
}
