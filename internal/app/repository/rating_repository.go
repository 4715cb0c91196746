package repository

import (
	"context"
	"time"

	"github.com/marcochiappo/Crimcuts/internal/app/model"
	"github.com/marcochiappo/Crimcuts/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository interface {
	Upsert(ctx context.Context, rating *model.Rating, replacePhoto bool) (created bool, err error)
	Delete(ctx context.Context, userID, barberID uint) (bool, error)
	FindByUserAndBarber(ctx context.Context, userID, barberID uint) (*model.Rating, error)
	ListByBarber(ctx context.Context, barberID uint) ([]model.Rating, error)
	GetAggregate(ctx context.Context, barberID uint) (model.Aggregate, error)
	ListPhotoPaths(ctx context.Context) ([]string, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert writes the rating with a single INSERT ... ON CONFLICT statement keyed
// on (user_id, barber_id). The photo column is only overwritten when
// replacePhoto is set. On return rating holds the stored row.
func (r *ratingRepository) Upsert(ctx context.Context, rating *model.Rating, replacePhoto bool) (bool, error) {
	now := time.Now()
	rating.ID = 0
	rating.CreatedAt = now
	rating.UpdatedAt = now

	columns := []string{"rating", "comment", "updated_at"}
	if replacePhoto {
		columns = append(columns, "photo")
	}

	logger.Debug("Upserting rating in database", logger.Fields{
		"user_id":       rating.UserID,
		"barber_id":     rating.BarberID,
		"replace_photo": replacePhoto,
	})

	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "barber_id"}},
			DoUpdates: clause.AssignmentColumns(columns),
		}).
		Create(rating).Error
	if err != nil {
		return false, err
	}

	// Re-read stored row
	stored, err := r.FindByUserAndBarber(ctx, rating.UserID, rating.BarberID)
	if err != nil {
		return false, err
	}
	*rating = *stored

	// An insert writes both timestamps from the same instant; the update path
	// only moves updated_at.
	return stored.CreatedAt.Equal(stored.UpdatedAt), nil
}

// Delete removes the pair's rating and reports whether a row existed.
func (r *ratingRepository) Delete(ctx context.Context, userID, barberID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND barber_id = ?", userID, barberID).
		Delete(&model.Rating{})
	if result.Error != nil {
		return false, result.Error
	}

	logger.Debug("Deleted rating from database", logger.Fields{
		"user_id":   userID,
		"barber_id": barberID,
		"rows":      result.RowsAffected,
	})
	return result.RowsAffected > 0, nil
}

// FindByUserAndBarber returns gorm.ErrRecordNotFound when the user has not rated the barber.
func (r *ratingRepository) FindByUserAndBarber(ctx context.Context, userID, barberID uint) (*model.Rating, error) {
	var rating model.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND barber_id = ?", userID, barberID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// ListByBarber returns the barber's ratings newest first with their authors.
func (r *ratingRepository) ListByBarber(ctx context.Context, barberID uint) ([]model.Rating, error) {
	var ratings []model.Rating
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("barber_id = ?", barberID).
		Order("id DESC").
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// GetAggregate computes average and count on every call.
func (r *ratingRepository) GetAggregate(ctx context.Context, barberID uint) (model.Aggregate, error) {
	var row struct {
		Average *float64
		Count   int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Rating{}).
		Select("CAST(AVG(rating) AS FLOAT) AS average, COUNT(*) AS count").
		Where("barber_id = ?", barberID).
		Scan(&row).Error
	if err != nil {
		return model.Aggregate{}, err
	}
	return model.Aggregate{Average: row.Average, Count: row.Count}, nil
}

// ListPhotoPaths returns the photo paths still referenced by ratings.
func (r *ratingRepository) ListPhotoPaths(ctx context.Context) ([]string, error) {
	var paths []string
	err := r.db.WithContext(ctx).
		Model(&model.Rating{}).
		Where("photo IS NOT NULL AND photo <> ''").
		Pluck("photo", &paths).Error
	if err != nil {
		return nil, err
	}
	return paths, nil
}
