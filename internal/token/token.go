package token

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid = errors.New("token is invalid")
	ErrSigning      = errors.New("failed to sign token")
)

// Claims carried by a tripbound identity token.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Service issues and verifies RS256-signed identity tokens. Verification
// is stateless; there is no refresh or rotation.
type Service struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
	duration   time.Duration
}

// NewService creates a token service. The private key may be nil for
// verify-only deployments (the gateway never issues tokens).
func NewService(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey, issuer string, duration time.Duration) *Service {
	return &Service{
		privateKey: privateKey,
		publicKey:  publicKey,
		issuer:     issuer,
		duration:   duration,
	}
}

// Issue produces a signed token asserting the subject's identity with an
// absolute expiration.
func (s *Service) Issue(userID, email string) (string, error) {
	if s.privateKey == nil {
		return "", fmt.Errorf("%w: no signing key configured", ErrSigning)
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.duration)),
		},
		Email: email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(s.privateKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigning, err)
	}
	return signed, nil
}

// Verify checks signature, issuer and expiry, and returns the subject's
// email.
func (s *Service) Verify(tokenString string) (string, error) {
	claims, err := s.VerifyClaims(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Email, nil
}

// VerifyClaims checks signature, issuer and expiry, and returns the full
// claim set.
func (s *Service) VerifyClaims(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.publicKey, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	if claims.Issuer != s.issuer {
		return nil, fmt.Errorf("%w: issuer mismatch", ErrTokenInvalid)
	}

	return claims, nil
}
