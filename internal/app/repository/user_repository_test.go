package repository

import (
	"context"
	"testing"

	"github.com/marcochiappo/Crimcuts/internal/app/model"
	"github.com/marcochiappo/Crimcuts/internal/db"
	apperrors "github.com/marcochiappo/Crimcuts/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUserTest(t *testing.T) (*gorm.DB, UserRepository) {
	testDB := db.SetupTestDB(t)
	return testDB, NewUserRepository(testDB)
}

func TestUserRepository_Create(t *testing.T) {
	testDB, repo := setupUserTest(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		user       *model.User
		wantUnique bool
	}{
		{
			name: "Valid user",
			user: &model.User{Username: "alice", PasswordHash: "hash"},
		},
		{
			name: "Case differs",
			user: &model.User{Username: "Alice", PasswordHash: "hash"},
		},
		{
			name:       "Duplicate username",
			user:       &model.User{Username: "alice", PasswordHash: "other"},
			wantUnique: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, tt.user)

			if tt.wantUnique {
				require.Error(t, err)
				assert.True(t, apperrors.IsUniqueViolation(err))
			} else {
				require.NoError(t, err)
				assert.NotZero(t, tt.user.ID)
			}
		})
	}

	var count int64
	require.NoError(t, testDB.Model(&model.User{}).Where("username = ?", "alice").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUserRepository_FindByUsername(t *testing.T) {
	_, repo := setupUserTest(t)
	ctx := context.Background()

	user := &model.User{Username: "bob", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.FindByUsername(ctx, "BOB")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_FindByID(t *testing.T) {
	_, repo := setupUserTest(t)
	ctx := context.Background()

	user := &model.User{Username: "carol", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol", found.Username)

	_, err = repo.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
