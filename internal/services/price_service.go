package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"gudang/internal/models"
	"gudang/internal/repositories"
)

// Column is decimal(10,2).
var maxPriceAmount = decimal.New(1, 8)

// PriceInput is the writable shape of a price. Nil fields are absent from the
// request.
type PriceInput struct {
	Currency *string          `json:"currency" validate:"required,min=1,max=10"`
	Amount   *decimal.Decimal `json:"amount"`
	Product  *uint            `json:"product" validate:"required"`
}

// PriceService handles business logic related to prices.
type PriceService struct {
	repo     repositories.PriceRepository
	products repositories.ProductRepository
	log      *slog.Logger
}

// NewPriceService creates a new PriceService.
func NewPriceService(repo repositories.PriceRepository, products repositories.ProductRepository, log *slog.Logger) *PriceService {
	return &PriceService{
		repo:     repo,
		products: products,
		log:      log.With(slog.String("component", "price_service")),
	}
}

// GetAllPrices lists prices, only those of productID when it is set.
func (s *PriceService) GetAllPrices(ctx context.Context, productID *uint) ([]models.Price, error) {
	return s.repo.GetAll(ctx, productID)
}

// GetPriceByID retrieves a single price by its ID.
func (s *PriceService) GetPriceByID(ctx context.Context, id uint) (*models.Price, error) {
	return s.repo.GetByID(ctx, id)
}

// CreatePrice validates in and stores a new price.
func (s *PriceService) CreatePrice(ctx context.Context, in PriceInput) (*models.Price, error) {
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	price := &models.Price{
		Currency:  *in.Currency,
		Amount:    *in.Amount,
		ProductID: *in.Product,
	}
	if err := s.repo.Create(ctx, price); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "price created",
		slog.Uint64("price_id", uint64(price.ID)), slog.Uint64("product_id", uint64(price.ProductID)))
	return price, nil
}

// UpdatePrice replaces the price fields. When partial is set, absent fields
// keep their stored values.
func (s *PriceService) UpdatePrice(ctx context.Context, id uint, in PriceInput, partial bool) (*models.Price, error) {
	price, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if partial {
		if in.Currency == nil {
			currency := price.Currency
			in.Currency = &currency
		}
		if in.Amount == nil {
			amount := price.Amount
			in.Amount = &amount
		}
		if in.Product == nil {
			productID := price.ProductID
			in.Product = &productID
		}
	}
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	price.Currency = *in.Currency
	price.Amount = *in.Amount
	price.ProductID = *in.Product
	if err := s.repo.Update(ctx, price); err != nil {
		return nil, fmt.Errorf("failed to update price %d: %w", id, err)
	}
	return price, nil
}

// DeletePrice deletes a price.
func (s *PriceService) DeletePrice(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *PriceService) validate(ctx context.Context, in PriceInput) error {
	extra := map[string]string{}

	switch {
	case in.Amount == nil:
		extra["amount"] = "this field is required"
	case !in.Amount.Equal(in.Amount.Round(2)):
		extra["amount"] = "ensure that there are no more than 2 decimal places"
	case in.Amount.Abs().GreaterThanOrEqual(maxPriceAmount):
		extra["amount"] = "ensure that there are no more than 10 digits in total"
	}

	if in.Product != nil {
		exists, err := s.products.Exists(ctx, *in.Product)
		if err != nil {
			return err
		}
		if !exists {
			extra["product"] = fmt.Sprintf("product %d does not exist", *in.Product)
		}
	}
	return validateInput(in, extra)
}
