package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/marcochiappo/Crimcuts/internal/app/model"
	"github.com/marcochiappo/Crimcuts/internal/app/repository"
	"github.com/marcochiappo/Crimcuts/internal/storage"
	"github.com/marcochiappo/Crimcuts/pkg/logger"
	"gorm.io/gorm"
)

type SubmitRatingInput struct {
	UserID    uint
	BarberID  uint
	RawRating string
	Comment   string
	Photo     *PhotoUpload
}

// RatingResult is the stored rating and whether it was newly created.
type RatingResult struct {
	Rating  *model.Rating
	Created bool
}

type RatingService interface {
	SubmitRating(ctx context.Context, input SubmitRatingInput) (*RatingResult, error)
	DeleteRating(ctx context.Context, userID, barberID uint) (bool, error)
	GetAggregate(ctx context.Context, barberID uint) (model.Aggregate, error)
	ListRatings(ctx context.Context, barberID uint) ([]model.Rating, error)
}

type ratingService struct {
	ratingRepo  repository.RatingRepository
	catalogRepo repository.CatalogRepository
	photos      storage.PhotoStorage
}

// NewRatingService creates the rating service. photos stores uploaded rating photos.
func NewRatingService(
	ratingRepo repository.RatingRepository,
	catalogRepo repository.CatalogRepository,
	photos storage.PhotoStorage,
) RatingService {
	return &ratingService{
		ratingRepo:  ratingRepo,
		catalogRepo: catalogRepo,
		photos:      photos,
	}
}

// ParseRating accepts the trimmed decimal integers 1 through 5.
func ParseRating(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < model.MinRating || value > model.MaxRating {
		return 0, ErrInvalidRating
	}
	return value, nil
}

// SubmitRating creates or replaces the user's rating of a barber. A stored
// photo is kept when the resubmission has none.
func (s *ratingService) SubmitRating(ctx context.Context, input SubmitRatingInput) (*RatingResult, error) {
	value, err := ParseRating(input.RawRating)
	if err != nil {
		return nil, err
	}

	// Check barber exists
	if _, err := s.catalogRepo.FindBarberByID(ctx, input.BarberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBarberNotFound
		}
		return nil, fmt.Errorf("find barber: %w", err)
	}

	rating := &model.Rating{
		UserID:   input.UserID,
		BarberID: input.BarberID,
		Rating:   value,
		Comment:  strings.TrimSpace(input.Comment),
	}

	// Store photo
	var photoPath string
	if base := input.Photo.baseName(); base != "" {
		name := fmt.Sprintf("%d_%d_%s", input.BarberID, input.UserID, base)
		photoPath, err = s.photos.Save(ctx, name, input.Photo.Content, input.Photo.ContentType)
		if err != nil {
			logger.Error("Failed to store rating photo", err, logger.Fields{
				"barber_id": input.BarberID,
				"user_id":   input.UserID,
			})
			return nil, fmt.Errorf("store photo: %w", err)
		}
		rating.Photo = &photoPath
	}

	// Save rating
	created, err := s.ratingRepo.Upsert(ctx, rating, photoPath != "")
	if err != nil {
		if !s.photoReferenced(ctx, input.UserID, input.BarberID, photoPath) {
			discardPhoto(ctx, s.photos, photoPath)
		}
		logger.Error("Failed to save rating", err, logger.Fields{
			"barber_id": input.BarberID,
			"user_id":   input.UserID,
		})
		return nil, fmt.Errorf("save rating: %w", err)
	}

	logger.Info("Rating saved", logger.Fields{
		"rating_id": rating.ID,
		"barber_id": rating.BarberID,
		"user_id":   rating.UserID,
		"rating":    rating.Rating,
		"created":   created,
		"has_photo": rating.Photo != nil,
	})
	return &RatingResult{Rating: rating, Created: created}, nil
}

// photoReferenced reports whether the stored rating for the pair already points
// at path. Lookup failures count as referenced so the file is kept.
func (s *ratingService) photoReferenced(ctx context.Context, userID, barberID uint, path string) bool {
	if path == "" {
		return false
	}
	existing, err := s.ratingRepo.FindByUserAndBarber(ctx, userID, barberID)
	if err != nil {
		return !errors.Is(err, gorm.ErrRecordNotFound)
	}
	return existing.Photo != nil && *existing.Photo == path
}

// DeleteRating removes the user's rating if present. Photo files are left in place.
func (s *ratingService) DeleteRating(ctx context.Context, userID, barberID uint) (bool, error) {
	deleted, err := s.ratingRepo.Delete(ctx, userID, barberID)
	if err != nil {
		logger.Error("Failed to delete rating", err, logger.Fields{
			"barber_id": barberID,
			"user_id":   userID,
		})
		return false, fmt.Errorf("delete rating: %w", err)
	}

	logger.Info("Rating delete requested", logger.Fields{
		"barber_id": barberID,
		"user_id":   userID,
		"deleted":   deleted,
	})
	return deleted, nil
}

// GetAggregate returns the barber's average and count.
func (s *ratingService) GetAggregate(ctx context.Context, barberID uint) (model.Aggregate, error) {
	return s.ratingRepo.GetAggregate(ctx, barberID)
}

// ListRatings returns the barber's ratings with their authors.
func (s *ratingService) ListRatings(ctx context.Context, barberID uint) ([]model.Rating, error) {
	return s.ratingRepo.ListByBarber(ctx, barberID)
}
