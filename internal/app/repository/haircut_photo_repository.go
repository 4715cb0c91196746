package repository

import (
	"context"

	"github.com/marcochiappo/Crimcuts/internal/app/model"
	"gorm.io/gorm"
)

type HaircutPhotoRepository interface {
	Create(ctx context.Context, photo *model.HaircutPhoto) error
	ListByBarber(ctx context.Context, barberID uint) ([]model.HaircutPhoto, error)
	ListPhotoPaths(ctx context.Context) ([]string, error)
}

type haircutPhotoRepository struct {
	db *gorm.DB
}

func NewHaircutPhotoRepository(db *gorm.DB) HaircutPhotoRepository {
	return &haircutPhotoRepository{db: db}
}

// Create inserts a haircut photo row.
func (r *haircutPhotoRepository) Create(ctx context.Context, photo *model.HaircutPhoto) error {
	return r.db.WithContext(ctx).Omit("Barber").Create(photo).Error
}

// ListByBarber returns the barber's photos, newest first.
func (r *haircutPhotoRepository) ListByBarber(ctx context.Context, barberID uint) ([]model.HaircutPhoto, error) {
	var photos []model.HaircutPhoto
	err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

// ListPhotoPaths returns every stored photo path.
func (r *haircutPhotoRepository) ListPhotoPaths(ctx context.Context) ([]string, error) {
	var paths []string
	err := r.db.WithContext(ctx).
		Model(&model.HaircutPhoto{}).
		Where("photo IS NOT NULL AND photo <> ''").
		Pluck("photo", &paths).Error
	if err != nil {
		return nil, err
	}
	return paths, nil
}
