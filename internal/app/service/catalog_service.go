package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/marcochiappo/Crimcuts/internal/app/model"
	"github.com/marcochiappo/Crimcuts/internal/app/repository"
	"github.com/marcochiappo/Crimcuts/pkg/logger"
	"gorm.io/gorm"
)

// ShopInput carries the raw upload_shop form. Coordinates stay strings until
// validated.
type ShopInput struct {
	Name        string
	Location    string
	Latitude    string
	Longitude   string
	Website     string
	Description string
}

type CatalogService interface {
	AddShop(ctx context.Context, input ShopInput) (*model.Shop, error)
	AddBarber(ctx context.Context, name, rawShopID string) (*model.Barber, error)
	ListShopsWithBarbers(ctx context.Context) ([]model.Shop, error)
	ListShops(ctx context.Context) ([]model.Shop, error)
	GetBarber(ctx context.Context, id uint) (*model.Barber, error)
	FindBarberByName(ctx context.Context, name string) (*model.Barber, error)
	FindShopByName(ctx context.Context, name string) (*model.Shop, error)
	SearchShops(ctx context.Context, query string) ([]model.ShopSearchResult, error)
}

type catalogService struct {
	catalogRepo repository.CatalogRepository
}

// NewCatalogService creates the shop and barber service.
func NewCatalogService(catalogRepo repository.CatalogRepository) CatalogService {
	return &catalogService{catalogRepo: catalogRepo}
}

// AddShop validates the form input and stores a new shop.
func (s *catalogService) AddShop(ctx context.Context, input ShopInput) (*model.Shop, error) {
	shop := &model.Shop{
		Name:        strings.TrimSpace(input.Name),
		Location:    strings.TrimSpace(input.Location),
		Website:     strings.TrimSpace(input.Website),
		Description: strings.TrimSpace(input.Description),
	}
	if shop.Name == "" || shop.Location == "" {
		return nil, newValidationError("shop", "Shop name and address are required.")
	}

	// Coordinates are optional
	var err error
	if shop.Latitude, err = parseCoordinate(input.Latitude); err != nil {
		return nil, newValidationError("latitude", "Latitude must be a number.")
	}
	if shop.Longitude, err = parseCoordinate(input.Longitude); err != nil {
		return nil, newValidationError("longitude", "Longitude must be a number.")
	}

	if err := s.catalogRepo.CreateShop(ctx, shop); err != nil {
		logger.Error("Failed to create shop", err, logger.Fields{
			"name": shop.Name,
		})
		return nil, fmt.Errorf("create shop: %w", err)
	}

	logger.Info("Shop added", logger.Fields{
		"shop_id": shop.ID,
		"name":    shop.Name,
	})
	return shop, nil
}

func parseCoordinate(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// AddBarber stores a barber under the shop named by rawShopID.
func (s *catalogService) AddBarber(ctx context.Context, name, rawShopID string) (*model.Barber, error) {
	name = strings.TrimSpace(name)
	rawShopID = strings.TrimSpace(rawShopID)
	if name == "" || rawShopID == "" {
		return nil, newValidationError("barber", "Barber name and shop are required.")
	}

	shopID, err := strconv.ParseUint(rawShopID, 10, 64)
	if err != nil || shopID == 0 {
		return nil, newValidationError("shop_id", "Please choose an existing shop.")
	}

	// Check the shop exists
	if _, err := s.catalogRepo.FindShopByID(ctx, uint(shopID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newValidationError("shop_id", "Please choose an existing shop.")
		}
		return nil, fmt.Errorf("find shop: %w", err)
	}

	barber := &model.Barber{Name: name, ShopID: uint(shopID)}
	if err := s.catalogRepo.CreateBarber(ctx, barber); err != nil {
		logger.Error("Failed to create barber", err, logger.Fields{
			"name":    name,
			"shop_id": shopID,
		})
		return nil, fmt.Errorf("create barber: %w", err)
	}

	logger.Info("Barber added", logger.Fields{
		"barber_id": barber.ID,
		"shop_id":   barber.ShopID,
	})
	return barber, nil
}

// ListShopsWithBarbers returns shops with their barbers preloaded.
func (s *catalogService) ListShopsWithBarbers(ctx context.Context) ([]model.Shop, error) {
	return s.catalogRepo.ListShopsWithBarbers(ctx)
}

// ListShops returns shops without their barbers.
func (s *catalogService) ListShops(ctx context.Context) ([]model.Shop, error) {
	return s.catalogRepo.ListShops(ctx)
}

// GetBarber returns ErrBarberNotFound for unknown ids.
func (s *catalogService) GetBarber(ctx context.Context, id uint) (*model.Barber, error) {
	barber, err := s.catalogRepo.FindBarberByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBarberNotFound
		}
		return nil, fmt.Errorf("find barber: %w", err)
	}
	return barber, nil
}

// FindBarberByName returns ErrBarberNotFound when no barber has the trimmed name.
func (s *catalogService) FindBarberByName(ctx context.Context, name string) (*model.Barber, error) {
	barber, err := s.catalogRepo.FindBarberByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBarberNotFound
		}
		return nil, fmt.Errorf("find barber: %w", err)
	}
	return barber, nil
}

// FindShopByName looks up a shop by its trimmed name.
func (s *catalogService) FindShopByName(ctx context.Context, name string) (*model.Shop, error) {
	return s.catalogRepo.FindShopByName(ctx, strings.TrimSpace(name))
}

// SearchShops never returns a nil slice so the JSON body is always an array.
func (s *catalogService) SearchShops(ctx context.Context, query string) ([]model.ShopSearchResult, error) {
	results := []model.ShopSearchResult{}

	query = strings.TrimSpace(query)
	if query == "" {
		return results, nil
	}

	shops, err := s.catalogRepo.SearchShopsWithCoordinates(ctx, query)
	if err != nil {
		return results, fmt.Errorf("search shops: %w", err)
	}

	for i := range shops {
		results = append(results, model.ShopSearchResult{
			Name:     shops[i].Name,
			Location: shops[i].Coordinates(),
		})
	}
	return results, nil
}
