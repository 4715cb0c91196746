package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/marcochiappo/Crimcuts/internal/app/model"
	"github.com/marcochiappo/Crimcuts/internal/app/repository"
	"github.com/marcochiappo/Crimcuts/internal/storage"
	"github.com/marcochiappo/Crimcuts/pkg/logger"
)

const invalidBarberMessage = "Please enter a valid barber: format is First_name Last_name"

type HaircutService interface {
	UploadHaircut(ctx context.Context, barberName string, photo *PhotoUpload) (*model.HaircutPhoto, error)
	ListByBarber(ctx context.Context, barberID uint) ([]model.HaircutPhoto, error)
}

type haircutService struct {
	catalog     CatalogService
	haircutRepo repository.HaircutPhotoRepository
	photos      storage.PhotoStorage
}

func NewHaircutService(
	catalog CatalogService,
	haircutRepo repository.HaircutPhotoRepository,
	photos storage.PhotoStorage,
) HaircutService {
	return &haircutService{
		catalog:     catalog,
		haircutRepo: haircutRepo,
		photos:      photos,
	}
}

// UploadHaircut attaches a gallery photo to the barber with exactly the given
// name. The barber is resolved before anything is stored.
func (s *haircutService) UploadHaircut(ctx context.Context, barberName string, photo *PhotoUpload) (*model.HaircutPhoto, error) {
	// Resolve barber
	barber, err := s.catalog.FindBarberByName(ctx, barberName)
	if err != nil {
		if errors.Is(err, ErrBarberNotFound) {
			return nil, newValidationError("barber", invalidBarberMessage)
		}
		return nil, err
	}

	entry := &model.HaircutPhoto{BarberID: barber.ID}

	var photoPath string
	if base := photo.baseName(); base != "" {
		name := fmt.Sprintf("haircut_%d_%s", barber.ID, base)
		photoPath, err = s.photos.Save(ctx, name, photo.Content, photo.ContentType)
		if err != nil {
			return nil, fmt.Errorf("store haircut photo: %w", err)
		}
		entry.Photo = &photoPath
	}

	// Save gallery entry
	if err := s.haircutRepo.Create(ctx, entry); err != nil {
		discardPhoto(ctx, s.photos, photoPath)
		logger.Error("Failed to save haircut photo", err, logger.Fields{
			"barber_id": barber.ID,
		})
		return nil, fmt.Errorf("save haircut photo: %w", err)
	}

	logger.Info("Haircut photo uploaded", logger.Fields{
		"barber_id": barber.ID,
		"photo_id":  entry.ID,
		"has_photo": entry.Photo != nil,
	})
	return entry, nil
}

// ListByBarber returns the barber's haircut photos.
func (s *haircutService) ListByBarber(ctx context.Context, barberID uint) ([]model.HaircutPhoto, error) {
	return s.haircutRepo.ListByBarber(ctx, barberID)
}
