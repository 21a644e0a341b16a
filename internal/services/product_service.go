package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"gudang/internal/apperr"
	"gudang/internal/models"
	"gudang/internal/repositories"
)

const msgAmountNotPositive = "reduction amount must be positive"

// ProductInput is the writable shape of a product. Nil fields (and an unset
// Category) are absent from the request.
type ProductInput struct {
	Name     *string        `json:"name" validate:"required,min=1,max=100"`
	Quantity *int           `json:"quantity" validate:"required,gte=0,lte=2147483647"`
	Barcode  *string        `json:"barcode" validate:"required,min=1,max=50"`
	Category Nullable[uint] `json:"category"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo       repositories.ProductRepository
	categories repositories.CategoryRepository
	events     EventPublisher
	log        *slog.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(
	repo repositories.ProductRepository,
	categories repositories.CategoryRepository,
	events EventPublisher,
	log *slog.Logger,
) *ProductService {
	if events == nil {
		events = NoopPublisher{}
	}
	return &ProductService{
		repo:       repo,
		categories: categories,
		events:     events,
		log:        log.With(slog.String("component", "product_service")),
	}
}

// GetAllProducts retrieves the products matching filter.
func (s *ProductService) GetAllProducts(ctx context.Context, filter repositories.ProductFilter) ([]models.Product, error) {
	return s.repo.GetAll(ctx, filter)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct validates in and stores a new product.
func (s *ProductService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:       *in.Name,
		Quantity:   *in.Quantity,
		Barcode:    *in.Barcode,
		CategoryID: in.Category.Ptr(),
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "product created",
		slog.Uint64("product_id", uint64(product.ID)), slog.String("barcode", product.Barcode))
	s.publish(ctx, EventProductCreated, ProductEvent{
		ProductID: product.ID,
		Barcode:   product.Barcode,
		Quantity:  product.Quantity,
		At:        product.UpdatedAt,
	})
	return product, nil
}

// UpdateProduct replaces the product fields. When partial is set, absent
// fields keep their stored values. An absent category is always kept; only an
// explicit null clears it. updated_at is always refreshed.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, in ProductInput, partial bool) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if partial {
		if in.Name == nil {
			name := product.Name
			in.Name = &name
		}
		if in.Quantity == nil {
			quantity := product.Quantity
			in.Quantity = &quantity
		}
		if in.Barcode == nil {
			barcode := product.Barcode
			in.Barcode = &barcode
		}
	}
	if !in.Category.Set && product.CategoryID != nil {
		in.Category = Some(*product.CategoryID)
	}
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	product.Name = *in.Name
	product.Quantity = *in.Quantity
	product.Barcode = *in.Barcode
	product.CategoryID = in.Category.Ptr()
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}
	return product, nil
}

// DeleteProduct deletes a product along with its prices.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "product deleted", slog.Uint64("product_id", uint64(id)))
	s.publish(ctx, EventProductDeleted, ProductEvent{ProductID: id, At: time.Now()})
	return nil
}

// ReduceQuantity takes amount units out of the stock of product id.
//
// It fails with KindNotFound for an unknown product, KindInvalidArgument when
// amount is not positive and KindInsufficientStock when fewer than amount
// units are on hand. Failed calls leave the stock untouched.
func (s *ProductService) ReduceQuantity(ctx context.Context, id uint, amount int) (*models.Product, error) {
	if amount <= 0 {
		if _, err := s.repo.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, apperr.InvalidArgument(msgAmountNotPositive)
	}
	if amount > math.MaxInt32 {
		// Larger than any storable quantity.
		if _, err := s.repo.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, apperr.InsufficientStock("not enough stock")
	}

	product, err := s.repo.ReduceQuantity(ctx, id, amount)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "product stock reduced",
		slog.Uint64("product_id", uint64(id)),
		slog.Int("amount", amount),
		slog.Int("quantity", product.Quantity))
	s.publish(ctx, EventProductStockReduced, StockReducedEvent{
		ProductID: product.ID,
		Amount:    amount,
		Quantity:  product.Quantity,
		At:        product.UpdatedAt,
	})
	return product, nil
}

func (s *ProductService) validate(ctx context.Context, in ProductInput) error {
	extra := map[string]string{}
	if in.Category.Valid {
		exists, err := s.categories.Exists(ctx, in.Category.Value)
		if err != nil {
			return err
		}
		if !exists {
			extra["category"] = fmt.Sprintf("category %d does not exist", in.Category.Value)
		}
	}
	return validateInput(in, extra)
}

// publish never fails the caller; the stock change is already committed.
func (s *ProductService) publish(ctx context.Context, routingKey string, payload any) {
	if err := s.events.Publish(ctx, routingKey, payload); err != nil {
		s.log.WarnContext(ctx, "failed to publish event",
			slog.String("routing_key", routingKey), slog.Any("error", err))
	}
}
