package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/book_service/internal/blocklist"
	"github.com/Skotchmaster/book_service/internal/hash"
	"github.com/Skotchmaster/book_service/internal/logging"
	"github.com/Skotchmaster/book_service/internal/models"
	"github.com/Skotchmaster/book_service/internal/repo"
	"github.com/Skotchmaster/book_service/internal/tokens"
	"github.com/Skotchmaster/book_service/internal/transport"
)

const (
	maxUsernameLen = 16
	maxEmailLen    = 32
	maxNameLen     = 32
	minPasswordLen = 8
)

type AuthService struct {
	Repo      repo.GormRepo
	Codec     tokens.Codec
	Blocklist blocklist.Blocklist
}

func (s *AuthService) Register(ctx context.Context, req transport.SignupRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if err := validateSignup(req); err != nil {
		return nil, err
	}

	exists, err := s.Repo.UserExists(ctx, req.Email)
	if err != nil {
		l.Error("register_error", "status", 500, "error", err)
		return nil, err
	}
	if exists {
		l.Warn("register_error", "status", 409, "reason", "email already taken")
		return nil, &AlreadyExistsError{Resource: "user"}
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		UID:          uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: pwHash,
		Role:         models.RoleUser,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		l.Error("register_error", "status", 500, "error", err)
		return nil, err
	}

	return &user, nil
}

// Login verifies credentials and issues a token pair. Unknown email and
// wrong password are indistinguishable to the caller so the endpoint cannot
// be used to enumerate users.
func (s *AuthService) Login(ctx context.Context, email, password string) (*tokens.Pair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if email == "" || password == "" {
		return nil, ErrValidation
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "status", 401, "reason", "unknown email")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "password mismatch")
		return nil, ErrInvalidCredentials
	}

	pair, err := s.Codec.IssuePair(tokens.UserClaims{
		Email:   user.Email,
		UserUID: user.UID.String(),
		Role:    user.Role,
	})
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot sign tokens", "error", err)
		return nil, err
	}
	return pair, nil
}

// RefreshPair mints a new access/refresh pair for the identity snapshot
// carried by an already verified refresh token.
func (s *AuthService) RefreshPair(user tokens.UserClaims) (*tokens.Pair, error) {
	return s.Codec.IssuePair(user)
}

// Revoke blocklists jti. Revoking the same jti twice is a no-op beyond the
// first call.
func (s *AuthService) Revoke(ctx context.Context, jti string) error {
	if err := s.Blocklist.Add(ctx, jti); err != nil {
		return fmt.Errorf("blocklist add: %w", err)
	}
	return nil
}

func (s *AuthService) CurrentUser(ctx context.Context, email string) (*models.User, error) {
	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "user"}
		}
		return nil, err
	}
	return user, nil
}

func validateSignup(req transport.SignupRequest) error {
	switch {
	case req.Username == "" || len(req.Username) > maxUsernameLen:
		return ErrValidation
	case req.Email == "" || len(req.Email) > maxEmailLen:
		return ErrValidation
	case len(req.FirstName) > maxNameLen || len(req.LastName) > maxNameLen:
		return ErrValidation
	case len(req.Password) < minPasswordLen:
		return ErrValidation
	}
	return nil
}
