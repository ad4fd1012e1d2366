package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 8

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Add(ctx context.Context, user *models.User) error
	UpdateCredentials(ctx context.Context, user *models.User) error
}

type Options struct {
	AllowRegistration bool
	// BcryptCost defaults to bcrypt.DefaultCost
	BcryptCost int
}

type Service struct {
	users   UserStore
	tokens  *TokenIssuer
	options Options
}

func NewService(users UserStore, tokens *TokenIssuer, options Options) *Service {
	if options.BcryptCost == 0 {
		options.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{users: users, tokens: tokens, options: options}
}

func (s *Service) Tokens() *TokenIssuer {
	return s.tokens
}

func credentialsRequired() *errs.ApiErr {
	return errs.NewBadRequestError("Email and password are required")
}

// Login checks the credentials and returns the user with a fresh token. An
// unknown email and a wrong password fail the same way.
func (s *Service) Login(ctx context.Context, email, password string) (models.UserInfo, string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return models.UserInfo{}, "", credentialsRequired()
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errs.IsNotFound(err) {
		return models.UserInfo{}, "", errs.NewInvalidCredentialsError()
	}
	if err != nil {
		return models.UserInfo{}, "", errs.NewStoreError("find", "user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.UserInfo{}, "", errs.NewInvalidCredentialsError()
	}

	return s.issue(user.Info())
}

// Register creates an admin account. It is refused unless registration is open.
func (s *Service) Register(ctx context.Context, email, password, name string) (models.UserInfo, string, error) {
	if !s.options.AllowRegistration {
		return models.UserInfo{}, "", errs.NewRegistrationClosedError()
	}
	if strings.TrimSpace(email) == "" || password == "" {
		return models.UserInfo{}, "", credentialsRequired()
	}
	if !strings.Contains(email, "@") {
		return models.UserInfo{}, "", errs.NewInvalidFieldError("email", "is not an email address")
	}
	if len(password) < MinPasswordLength {
		return models.UserInfo{}, "", errs.NewInvalidFieldError("password", "must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.options.BcryptCost)
	if err != nil {
		return models.UserInfo{}, "", errs.NewInternalErrorWithCause("failed to hash password", err)
	}

	user := &models.User{
		Email:        database.NormalizeEmail(email),
		Name:         strings.TrimSpace(name),
		Role:         models.RoleAdmin,
		PasswordHash: string(hash),
	}
	if err := s.users.Add(ctx, user); err != nil {
		if errs.IsAlreadyExists(err) {
			return models.UserInfo{}, "", err
		}
		return models.UserInfo{}, "", errs.NewStoreError("create", "user", err)
	}

	return s.issue(user.Info())
}

// Verify returns the claims of a valid token
func (s *Service) Verify(token string) (*Claims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errs.NewMissingTokenError()
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, errs.NewInvalidTokenError()
	}
	return claims, nil
}

// EnsureAdmin creates or refreshes the configured admin account. passwordHash
// wins over password; with neither set nothing is seeded.
func (s *Service) EnsureAdmin(ctx context.Context, email, name, passwordHash, password string) (bool, error) {
	if strings.TrimSpace(email) == "" {
		return false, nil
	}

	hash := passwordHash
	if hash == "" {
		if password == "" {
			return false, errors.New("admin email set without ADMIN_PASSWORD_HASH or ADMIN_PASSWORD")
		}
		generated, err := bcrypt.GenerateFromPassword([]byte(password), s.options.BcryptCost)
		if err != nil {
			return false, err
		}
		hash = string(generated)
	} else if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return false, errors.New("ADMIN_PASSWORD_HASH is not a bcrypt hash")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if errs.IsNotFound(err) {
		return true, s.users.Add(ctx, &models.User{
			Email:        email,
			Name:         name,
			Role:         models.RoleAdmin,
			PasswordHash: hash,
		})
	}
	if err != nil {
		return false, err
	}

	existing.Name = name
	existing.PasswordHash = hash
	return false, s.users.UpdateCredentials(ctx, existing)
}

func (s *Service) issue(user models.UserInfo) (models.UserInfo, string, error) {
	token, err := s.tokens.Issue(user)
	if errors.Is(err, ErrNotConfigured) {
		return models.UserInfo{}, "", errs.NewServiceNotConfiguredError("authentication")
	}
	if err != nil {
		return models.UserInfo{}, "", errs.NewInternalErrorWithCause("failed to issue token", err)
	}
	return user, token, nil
}
