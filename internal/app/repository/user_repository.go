package repository

import (
	"context"

	"github.com/marcochiappo/Crimcuts/internal/app/model"
	"github.com/marcochiappo/Crimcuts/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts the user. A taken username surfaces as the driver's unique
// violation; callers translate it.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	logger.Debug("Creating user in database", logger.Fields{
		"username": user.Username,
	})

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		logger.Debug("Failed to create user in database", logger.Fields{
			"username": user.Username,
			"error":    err.Error(),
		})
		return err
	}

	logger.Debug("User created in database", logger.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return nil
}

// FindByID returns gorm.ErrRecordNotFound when no user has the id.
func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername matches the username exactly.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	logger.Debug("Finding user by username in database", logger.Fields{
		"username": username,
	})

	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
