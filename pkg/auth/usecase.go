package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the fixed work factor for password hashing.
const BcryptCost = 10

// AuthUseCase describes authentication/registration behavior.
type AuthUseCase interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (User, error)
}

type AuthResult struct {
	User  User
	Token string
}

type authService struct {
	repo   UserRepository
	tokens TokenGenerator
	log    *zap.Logger
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(repo UserRepository, tokens TokenGenerator, log *zap.Logger) AuthUseCase {
	return &authService{repo: repo, tokens: tokens, log: log}
}

func (s *authService) Register(ctx context.Context, email, password, firstName, lastName string) (AuthResult, error) {
	if email == "" || password == "" || strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return AuthResult{}, ErrInvalidCredentials
	}

	// If user exists, fail fast; the unique constraint still backstops races.
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return AuthResult{}, ErrUserAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return AuthResult{}, err
	}

	now := time.Now().UTC()
	user := User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(passwordHash),
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return AuthResult{}, err
	}
	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	s.log.Info("user registered", zap.String("email", email))
	return AuthResult{User: user, Token: token}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	// Unknown email and wrong password are logged apart but surfaced as the
	// same error so callers cannot probe which emails are registered.
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		s.log.Debug("login failed: no such user", zap.String("email", email))
		return AuthResult{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.log.Debug("login failed: password mismatch", zap.String("email", email))
		return AuthResult{}, ErrInvalidCredentials
	}
	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	s.log.Info("user logged in", zap.String("email", email))
	return AuthResult{User: user, Token: token}, nil
}

func (s *authService) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	return s.repo.GetByID(ctx, id)
}
