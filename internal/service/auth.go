package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/voyage/backend/internal/auth"
	"github.com/pkordes/voyage/backend/internal/domain"
	"github.com/pkordes/voyage/backend/internal/repo"
)

// TokenIssuer mints bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID uuid.UUID, email string) (string, error)
}

// Session is what a successful register or login returns.
type Session struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// AuthService registers users and checks their credentials.
type AuthService struct {
	users  repo.UserRepo
	tokens TokenIssuer
}

// NewAuthService constructs an AuthService.
func NewAuthService(users repo.UserRepo, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates an account and signs the new user in.
// Returns domain.ErrValidation for a missing name, a malformed email or a
// short password, and domain.ErrConflict if the email is taken.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Session{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return Session{}, err
	}
	hash, err := auth.HashPassword(password)
	if errors.Is(err, auth.ErrWeakPassword) || errors.Is(err, auth.ErrPasswordTooLong) {
		return Session{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err != nil {
		return Session{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}

	user, err := s.users.Create(ctx, domain.User{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		return Session{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}
	return s.session(user)
}

// Login checks credentials. An unknown email and a wrong password both
// return domain.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return Session{}, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return Session{}, fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)
	}
	if err != nil {
		return Session{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return Session{}, fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)
	}
	return s.session(user)
}

// Me returns the account behind a verified token. A token whose user has
// since been deleted is domain.ErrUnauthorized.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, fmt.Errorf("%w: user no longer exists", domain.ErrUnauthorized)
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Me: %w", err)
	}
	return user, nil
}

func (s *AuthService) session(user domain.User) (Session, error) {
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return Session{}, fmt.Errorf("service.AuthService: %w", err)
	}
	return Session{Token: token, User: user}, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: a valid email is required", domain.ErrValidation)
	}
	return email, nil
}
