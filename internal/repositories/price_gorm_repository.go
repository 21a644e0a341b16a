package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"gudang/internal/apperr"
	"gudang/internal/models"
)

// GORMPriceRepository is a GORM implementation of PriceRepository.
type GORMPriceRepository struct {
	db *gorm.DB
}

// NewGORMPriceRepository creates a new instance of GORMPriceRepository.
func NewGORMPriceRepository(db *gorm.DB) *GORMPriceRepository {
	return &GORMPriceRepository{db: db}
}

// GetAll retrieves prices in insertion order, only those of productID when it
// is set.
func (r *GORMPriceRepository) GetAll(ctx context.Context, productID *uint) ([]models.Price, error) {
	q := r.db.WithContext(ctx)
	if productID != nil {
		q = q.Where("product_id = ?", *productID)
	}

	prices := []models.Price{}
	if err := q.Order("id").Find(&prices).Error; err != nil {
		return nil, fmt.Errorf("failed to get all prices: %w", err)
	}
	return prices, nil
}

// GetByID retrieves a single price by its ID.
func (r *GORMPriceRepository) GetByID(ctx context.Context, id uint) (*models.Price, error) {
	var price models.Price
	if err := r.db.WithContext(ctx).First(&price, id).Error; err != nil {
		return nil, notFound(err, "price", id)
	}
	return &price, nil
}

// Create inserts a new price.
func (r *GORMPriceRepository) Create(ctx context.Context, price *models.Price) error {
	if err := r.db.WithContext(ctx).Create(price).Error; err != nil {
		if refErr := referenceError(err, "product"); refErr != nil {
			return refErr
		}
		return fmt.Errorf("failed to create price: %w", err)
	}
	return nil
}

// Update overwrites every editable column of an existing price.
func (r *GORMPriceRepository) Update(ctx context.Context, price *models.Price) error {
	res := r.db.WithContext(ctx).Model(price).Select("currency", "amount", "product_id").Updates(price)
	if res.Error != nil {
		if refErr := referenceError(res.Error, "product"); refErr != nil {
			return refErr
		}
		return fmt.Errorf("failed to update price: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("price", price.ID)
	}
	return nil
}

// Delete removes a price.
func (r *GORMPriceRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Price{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete price: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("price", id)
	}
	return nil
}
