package repositories

import (
	"context"

	"gudang/internal/models"
)

// ProductFilter narrows a product listing. Zero values mean no filtering.
type ProductFilter struct {
	// Search matches product or category name, case-insensitively.
	Search     string
	CategoryID *uint
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
	// ReduceQuantity atomically subtracts amount from the stock of product id
	// if at least amount is on hand, and returns the updated product.
	ReduceQuantity(ctx context.Context, id uint, amount int) (*models.Product, error)
}
