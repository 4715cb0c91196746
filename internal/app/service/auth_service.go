package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/marcochiappo/Crimcuts/internal/app/model"
	"github.com/marcochiappo/Crimcuts/internal/app/repository"
	apperrors "github.com/marcochiappo/Crimcuts/internal/errors"
	"github.com/marcochiappo/Crimcuts/pkg/logger"
	"github.com/marcochiappo/Crimcuts/pkg/util"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, username, password, confirm string) (*model.User, error)
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
	GetUserByID(ctx context.Context, id uint) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	policy   util.PasswordPolicy
}

func NewAuthService(userRepo repository.UserRepository, policy util.PasswordPolicy) AuthService {
	return &authService{
		userRepo: userRepo,
		policy:   policy,
	}
}

// Register validates the form and creates the account. Uniqueness is left to
// the unique index on username.
func (s *authService) Register(ctx context.Context, username, password, confirm string) (*model.User, error) {
	username = strings.TrimSpace(username)

	if username == "" || password == "" || confirm == "" {
		return nil, ErrMissingFields
	}
	if password != confirm {
		return nil, ErrPasswordMismatch
	}
	if err := s.policy.Check(password); err != nil {
		logger.Info("Registration rejected by password policy", logger.Fields{
			"username": username,
			"reason":   err.Error(),
		})
		return nil, err
	}

	// Hash password
	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err, logger.Fields{
			"username": username,
		})
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// Create user
	user := &model.User{
		Username:     username,
		PasswordHash: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if apperrors.IsUniqueViolation(err) {
			logger.Warn("Registration failed: username already exists", logger.Fields{
				"username": username,
			})
			return nil, ErrUsernameExists
		}
		logger.Error("Failed to create user", err, logger.Fields{
			"username": username,
		})
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.Info("User registered successfully", logger.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return user, nil
}

// Authenticate answers unknown users and wrong passwords with the same error.
func (s *authService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingFields
	}

	// Find user by username
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", logger.Fields{
				"username": username,
			})
			return nil, ErrInvalidCredentials
		}
		logger.Error("Failed to look up user", err, logger.Fields{
			"username": username,
		})
		return nil, fmt.Errorf("find user: %w", err)
	}

	// Verify password
	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", logger.Fields{
			"user_id": user.ID,
		})
		return nil, ErrInvalidCredentials
	}

	logger.Info("User logged in successfully", logger.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return user, nil
}

// GetUserByID returns the repository error unchanged, including gorm.ErrRecordNotFound.
func (s *authService) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user, nil
}
