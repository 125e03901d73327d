// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/mercato/mercato/internal/auth"
	"github.com/mercato/mercato/internal/metrics"
	"github.com/mercato/mercato/internal/model"
	"github.com/mercato/mercato/internal/repository"
)

// User service errors.
var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrMissingField = errors.New("missing required field")
	ErrWeakPassword = errors.New("password too short")
	ErrEmailTaken   = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong
	// password; callers must not distinguish the two.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const minPasswordLength = 8

// UserService handles registration and login.
type UserService struct {
	repo    *repository.Repository
	tokens  *auth.TokenService
	metrics metrics.Recorder
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.Repository, tokens *auth.TokenService, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{repo: repo, tokens: tokens, metrics: recorder}
}

// RegisterInput defines input for creating an account.
type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	FullAddress string
}

// Register validates the input, hashes the password, and creates the user.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        input.Email,
		PasswordHash: hash,
		FullAddress:  strings.TrimSpace(input.FullAddress),
		CreatedAt:    time.Now(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.metrics.IncUserRegistered()
	return user, nil
}

// LoginResult carries the issued token and account details.
type LoginResult struct {
	Token     string
	TokenType string
	User      *model.User
}

// Login checks the credentials and issues a bearer token.
// Unknown email and wrong password both yield ErrInvalidCredentials to
// avoid account enumeration.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncLoginFailed()
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// A malformed stored hash fails closed here.
	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !match {
		s.metrics.IncLoginFailed()
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncLoginSucceeded()
	return &LoginResult{Token: token, TokenType: "bearer", User: user}, nil
}

func validateRegisterInput(input RegisterInput) error {
	if strings.TrimSpace(input.FirstName) == "" ||
		strings.TrimSpace(input.LastName) == "" ||
		strings.TrimSpace(input.FullAddress) == "" {
		return ErrMissingField
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return ErrInvalidEmail
	}
	if len(input.Password) < minPasswordLength {
		return ErrWeakPassword
	}
	return nil
}
