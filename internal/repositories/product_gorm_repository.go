package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"gudang/internal/apperr"
	"gudang/internal/models"
)

const (
	msgDuplicateBarcode = "product with this barcode already exists"
	msgNotEnoughStock   = "not enough stock"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves products matching filter in insertion order.
func (r *GORMProductRepository) GetAll(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{})

	if filter.CategoryID != nil {
		q = q.Where("products.category_id = ?", *filter.CategoryID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Joins("LEFT JOIN categories ON categories.id = products.category_id").
			Where("LOWER(products.name) LIKE ? OR LOWER(categories.name) LIKE ?", pattern, pattern)
	}

	products := []models.Product{}
	if err := q.Select("products.*").Order("products.id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, notFound(err, "product", id)
	}
	return &product, nil
}

// Exists reports whether a product with id is stored.
func (r *GORMProductRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check product %d: %w", id, err)
	}
	return count > 0, nil
}

// Create inserts a new product.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return r.writeError("create", err)
	}
	return nil
}

// Update overwrites every editable column of an existing product and bumps
// updated_at even when nothing else changed.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).
		Model(product).
		Select("name", "quantity", "barcode", "category_id", "updated_at").
		Updates(product)
	if res.Error != nil {
		return r.writeError("update", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("product", product.ID)
	}
	return nil
}

// Delete removes a product together with all of its prices.
func (r *GORMProductRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.Price{}).Error; err != nil {
			return fmt.Errorf("failed to delete prices of product %d: %w", id, err)
		}

		res := tx.Delete(&models.Product{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete product: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("product", id)
		}
		return nil
	})
}

// ReduceQuantity runs the check and the decrement as one conditional UPDATE,
// so concurrent reductions can never take quantity below zero.
func (r *GORMProductRepository) ReduceQuantity(ctx context.Context, id uint, amount int) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).
			Where("id = ? AND quantity >= ?", id, amount).
			Updates(map[string]any{
				"quantity":   gorm.Expr("quantity - ?", amount),
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to reduce quantity of product %d: %w", id, res.Error)
		}

		if err := tx.First(&product, id).Error; err != nil {
			return notFound(err, "product", id)
		}
		if res.RowsAffected == 0 {
			return apperr.InsufficientStock(msgNotEnoughStock)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GORMProductRepository) writeError(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict("barcode", msgDuplicateBarcode).Wrap(err)
	}
	if refErr := referenceError(err, "category"); refErr != nil {
		return refErr
	}
	return fmt.Errorf("failed to %s product: %w", op, err)
}
