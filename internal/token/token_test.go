package token

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestService(t *testing.T, issuer string, duration time.Duration) *Service {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	return NewService(key, &key.PublicKey, issuer, duration)
}

func TestIssueAndVerify(t *testing.T) {
	svc := newTestService(t, "tripbound-auth", 2*time.Hour)

	signed, err := svc.Issue("user-1", "ann@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims, err := svc.VerifyClaims(signed)
	if err != nil {
		t.Fatalf("VerifyClaims() error = %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "user-1")
	}
	if claims.Email != "ann@example.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "ann@example.com")
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining < time.Hour || remaining > 2*time.Hour {
		t.Errorf("expiry %v from now, want about 2h", remaining)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := newTestService(t, "tripbound-auth", -time.Hour)

	signed, err := svc.Issue("user-1", "ann@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := svc.Verify(signed); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Verify() error = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyIssuerMismatch(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	issuing := NewService(key, &key.PublicKey, "someone-else", 2*time.Hour)
	verifying := NewService(key, &key.PublicKey, "tripbound-auth", 2*time.Hour)

	signed, err := issuing.Issue("user-1", "ann@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := verifying.Verify(signed); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Verify() error = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyWrongKey(t *testing.T) {
	issuing := newTestService(t, "tripbound-auth", 2*time.Hour)
	verifying := newTestService(t, "tripbound-auth", 2*time.Hour)

	signed, err := issuing.Issue("user-1", "ann@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := verifying.Verify(signed); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Verify() error = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyRejectsNonRSATokens(t *testing.T) {
	svc := newTestService(t, "tripbound-auth", 2*time.Hour)

	// A token signed with HS256 must never pass, even if an attacker
	// guessed a shared secret
	hmacToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    "tripbound-auth",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := hmacToken.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("Failed to sign HMAC token: %v", err)
	}

	if _, err := svc.Verify(signed); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Verify() error = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	svc := newTestService(t, "tripbound-auth", 2*time.Hour)

	for _, tokenString := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Verify(tokenString); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("Verify(%q) error = %v, want ErrTokenInvalid", tokenString, err)
		}
	}
}

func TestIssueWithoutPrivateKey(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	svc := NewService(nil, &key.PublicKey, "tripbound-auth", 2*time.Hour)

	if _, err := svc.Issue("user-1", "ann@example.com"); !errors.Is(err, ErrSigning) {
		t.Errorf("Issue() error = %v, want ErrSigning", err)
	}
}
