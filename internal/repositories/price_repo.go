package repositories

import (
	"context"

	"gudang/internal/models"
)

// PriceRepository defines the interface for price data access.
type PriceRepository interface {
	// GetAll lists prices, restricted to one product when productID is set.
	GetAll(ctx context.Context, productID *uint) ([]models.Price, error)
	GetByID(ctx context.Context, id uint) (*models.Price, error)
	Create(ctx context.Context, price *models.Price) error
	Update(ctx context.Context, price *models.Price) error
	Delete(ctx context.Context, id uint) error
}
