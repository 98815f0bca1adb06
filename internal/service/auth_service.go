package service

import (
	"errors"
	"fmt"

	"tripbound/internal/models"
	"tripbound/internal/repository"
	"tripbound/internal/security"
	"tripbound/internal/token"
	"tripbound/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService handles account registration, credential checks, token
// issuance and token validation for the gateway.
type AuthService struct {
	userRepo *repository.UserRepository
	tokens   *token.Service
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, tokens *token.Service) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register creates a new user account
func (s *AuthService) Register(email, password, name string) (*models.User, error) {
	var errs validation.Errors
	for _, err := range []error{
		validation.ValidateEmail(email),
		validation.ValidatePassword(password),
		validation.ValidateName(name),
	} {
		var fieldErr validation.FieldError
		if errors.As(err, &fieldErr) {
			errs = append(errs, fieldErr)
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	existing, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.CreateUser(email, name, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login checks credentials and issues an identity token
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return signed, user, nil
}

// Validate verifies a token and returns the validated identity the
// gateway turns into trusted headers. The identity is transient and
// never persisted.
func (s *AuthService) Validate(tokenString string) (*models.ValidatedIdentity, error) {
	claims, err := s.tokens.VerifyClaims(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, token.ErrTokenInvalid
	}

	return &models.ValidatedIdentity{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		IssuedAt: claims.IssuedAt.Time,
		Expiry:   claims.ExpiresAt.Time,
	}, nil
}

// LookupByEmail resolves an email to the canonical user record; this is
// the user-directory endpoint the invite workflow depends on.
func (s *AuthService) LookupByEmail(email string) (*models.User, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
