package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tmarin7/messagely/internal/domain"
	"github.com/tmarin7/messagely/internal/repository"
	"github.com/tmarin7/messagely/internal/token"
)

type AuthService struct {
	userRepo   repository.UserRepository
	issuer     *token.Issuer
	bcryptCost int
}

func NewAuthService(userRepo repository.UserRepository, issuer *token.Issuer, bcryptCost int) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		issuer:     issuer,
		bcryptCost: bcryptCost,
	}
}

type RegisterInput struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

// Register creates a user with a bcrypt hash of the password and logs
// them in. The returned profile never carries hash material.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	existing, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		Username:     input.Username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		PasswordHash: string(hash),
		JoinAt:       time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Two concurrent registrations can both pass the pre-check; the
		// unique constraint settles it.
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	accessToken, err := s.issuer.Issue(user.Username)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	return &AuthResponse{User: user, AccessToken: accessToken}, nil
}

// Authenticate checks the password against the stored hash. Unknown
// username and wrong password are the same ErrInvalidCreds outcome.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) error {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidCreds
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return ErrInvalidCreds
	}

	return nil
}

// UpdateLoginTimestamp sets last_login_at to the current server time.
func (s *AuthService) UpdateLoginTimestamp(ctx context.Context, username string) (*time.Time, error) {
	lastLogin, err := s.userRepo.TouchLastLogin(ctx, username)
	if err != nil {
		return nil, err
	}
	if lastLogin == nil {
		return nil, ErrUserNotFound
	}
	return lastLogin, nil
}

// Login authenticates, records the login time and issues a token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	if err := s.Authenticate(ctx, input.Username, input.Password); err != nil {
		return nil, err
	}

	lastLogin, err := s.UpdateLoginTimestamp(ctx, input.Username)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCreds
	}
	user.LastLoginAt = lastLogin

	accessToken, err := s.issuer.Issue(user.Username)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	return &AuthResponse{User: user, AccessToken: accessToken}, nil
}
