package repository

import (
	"context"
	"strings"

	"github.com/marcochiappo/Crimcuts/internal/app/model"
	"github.com/marcochiappo/Crimcuts/pkg/logger"
	"gorm.io/gorm"
)

// CatalogRepository stores shops and the barbers working at them.
type CatalogRepository interface {
	CreateShop(ctx context.Context, shop *model.Shop) error
	FindShopByID(ctx context.Context, id uint) (*model.Shop, error)
	FindShopByName(ctx context.Context, name string) (*model.Shop, error)
	ListShops(ctx context.Context) ([]model.Shop, error)
	ListShopsWithBarbers(ctx context.Context) ([]model.Shop, error)
	SearchShopsWithCoordinates(ctx context.Context, query string) ([]model.Shop, error)

	CreateBarber(ctx context.Context, barber *model.Barber) error
	FindBarberByID(ctx context.Context, id uint) (*model.Barber, error)
	FindBarberByName(ctx context.Context, name string) (*model.Barber, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// CreateShop inserts a shop row.
func (r *catalogRepository) CreateShop(ctx context.Context, shop *model.Shop) error {
	logger.Debug("Creating shop in database", logger.Fields{
		"name": shop.Name,
	})

	if err := r.db.WithContext(ctx).Omit("Barbers").Create(shop).Error; err != nil {
		return err
	}

	logger.Debug("Shop created in database", logger.Fields{
		"shop_id": shop.ID,
	})
	return nil
}

// FindShopByID returns gorm.ErrRecordNotFound when no shop has the id.
func (r *catalogRepository) FindShopByID(ctx context.Context, id uint) (*model.Shop, error) {
	var shop model.Shop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// FindShopByName returns the oldest shop with exactly this name.
func (r *catalogRepository) FindShopByName(ctx context.Context, name string) (*model.Shop, error) {
	var shop model.Shop
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("id ASC").First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// ListShops returns every shop ordered by name.
func (r *catalogRepository) ListShops(ctx context.Context) ([]model.Shop, error) {
	var shops []model.Shop
	if err := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

// ListShopsWithBarbers loads shops and their barbers in two queries, both
// ordered by name.
func (r *catalogRepository) ListShopsWithBarbers(ctx context.Context) ([]model.Shop, error) {
	var shops []model.Shop
	err := r.db.WithContext(ctx).
		Preload("Barbers", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC").Order("id ASC")
		}).
		Order("name ASC").
		Order("id ASC").
		Find(&shops).Error
	if err != nil {
		return nil, err
	}

	logger.Debug("Listed shops with barbers", logger.Fields{
		"shops": len(shops),
	})
	return shops, nil
}

// SearchShopsWithCoordinates matches shop names case-insensitively. Matching
// runs in Go so non-ASCII names fold the same way on every driver.
func (r *catalogRepository) SearchShopsWithCoordinates(ctx context.Context, query string) ([]model.Shop, error) {
	var shops []model.Shop
	err := r.db.WithContext(ctx).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Order("name ASC").
		Order("id ASC").
		Find(&shops).Error
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matched := make([]model.Shop, 0, len(shops))
	for _, shop := range shops {
		if strings.Contains(strings.ToLower(shop.Name), needle) {
			matched = append(matched, shop)
		}
	}
	return matched, nil
}

// CreateBarber inserts a barber under an existing shop.
func (r *catalogRepository) CreateBarber(ctx context.Context, barber *model.Barber) error {
	logger.Debug("Creating barber in database", logger.Fields{
		"name":    barber.Name,
		"shop_id": barber.ShopID,
	})

	if err := r.db.WithContext(ctx).Omit("Shop").Create(barber).Error; err != nil {
		return err
	}
	return nil
}

// FindBarberByID loads a barber with its shop.
func (r *catalogRepository) FindBarberByID(ctx context.Context, id uint) (*model.Barber, error) {
	var barber model.Barber
	if err := r.db.WithContext(ctx).Preload("Shop").First(&barber, id).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

// FindBarberByName returns the oldest barber with exactly this name.
func (r *catalogRepository) FindBarberByName(ctx context.Context, name string) (*model.Barber, error) {
	var barber model.Barber
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("id ASC").First(&barber).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

