package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gudang/internal/apperr"
	"gudang/internal/logging"
	"gudang/internal/models"
	"gudang/internal/repositories"
	"gudang/internal/services"
)

type productDeps struct {
	products   *MockProductRepository
	categories *MockCategoryRepository
	events     *MockEventPublisher
	service    *services.ProductService
}

func newProductService() productDeps {
	d := productDeps{
		products:   new(MockProductRepository),
		categories: new(MockCategoryRepository),
		events:     new(MockEventPublisher),
	}
	d.service = services.NewProductService(d.products, d.categories, d.events, logging.Discard())
	return d
}

func TestProductService_GetAllProducts(t *testing.T) {
	d := newProductService()
	ctx := context.Background()

	expected := []models.Product{
		{ID: 1, Name: "Product A", Quantity: 100, Barcode: "A"},
		{ID: 2, Name: "Product B", Quantity: 50, Barcode: "B"},
	}
	filter := repositories.ProductFilter{Search: "product"}
	d.products.On("GetAll", ctx, filter).Return(expected, nil).Once()

	products, err := d.service.GetAllProducts(ctx, filter)

	assert.NoError(t, err)
	assert.Equal(t, expected, products)
	d.products.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	d := newProductService()
	ctx := context.Background()

	expected := &models.Product{ID: 1, Name: "Product A", Quantity: 100, Barcode: "A"}
	d.products.On("GetByID", ctx, uint(1)).Return(expected, nil).Once()
	product, err := d.service.GetProductByID(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, expected, product)

	d.products.On("GetByID", ctx, uint(99)).Return(nil, apperr.NotFound("product", 99)).Once()
	product, err = d.service.GetProductByID(ctx, 99)
	assert.Nil(t, product)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	d.products.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("valid input", func(t *testing.T) {
		d := newProductService()
		d.categories.On("Exists", ctx, uint(3)).Return(true, nil).Once()
		d.products.On("Create", ctx, mock.MatchedBy(func(p *models.Product) bool {
			return p.Name == "Test" && p.Quantity == 10 && p.Barcode == "111" && p.CategoryID != nil && *p.CategoryID == 3
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Product).ID = 7
		}).Return(nil).Once()
		d.events.On("Publish", ctx, services.EventProductCreated, mock.AnythingOfType("services.ProductEvent")).Return(nil).Once()

		product, err := d.service.CreateProduct(ctx, services.ProductInput{
			Name:     strPtr("Test"),
			Quantity: intPtr(10),
			Barcode:  strPtr("111"),
			Category: services.Some[uint](3),
		})

		require.NoError(t, err)
		assert.Equal(t, uint(7), product.ID)
		d.products.AssertExpectations(t)
		d.categories.AssertExpectations(t)
		d.events.AssertExpectations(t)
	})

	t.Run("missing fields", func(t *testing.T) {
		d := newProductService()

		_, err := d.service.CreateProduct(ctx, services.ProductInput{Name: strPtr("")})

		appErr, ok := apperr.As(err)
		require.True(t, ok)
		assert.Equal(t, apperr.KindValidation, appErr.Kind)
		assert.Contains(t, appErr.Fields, "name")
		assert.Contains(t, appErr.Fields, "quantity")
		assert.Contains(t, appErr.Fields, "barcode")
		d.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("negative quantity", func(t *testing.T) {
		d := newProductService()

		_, err := d.service.CreateProduct(ctx, services.ProductInput{
			Name: strPtr("Test"), Quantity: intPtr(-1), Barcode: strPtr("111"),
		})

		appErr, ok := apperr.As(err)
		require.True(t, ok)
		assert.Contains(t, appErr.Fields, "quantity")
	})

	t.Run("unknown category", func(t *testing.T) {
		d := newProductService()
		d.categories.On("Exists", ctx, uint(42)).Return(false, nil).Once()

		_, err := d.service.CreateProduct(ctx, services.ProductInput{
			Name: strPtr("Test"), Quantity: intPtr(1), Barcode: strPtr("111"), Category: services.Some[uint](42),
		})

		appErr, ok := apperr.As(err)
		require.True(t, ok)
		assert.Equal(t, "category 42 does not exist", appErr.Fields["category"])
		d.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("publish failure does not fail the request", func(t *testing.T) {
		d := newProductService()
		d.products.On("Create", ctx, mock.Anything).Return(nil).Once()
		d.events.On("Publish", ctx, services.EventProductCreated, mock.Anything).Return(errors.New("broker down")).Once()

		_, err := d.service.CreateProduct(ctx, services.ProductInput{
			Name: strPtr("Test"), Quantity: intPtr(1), Barcode: strPtr("111"),
		})
		assert.NoError(t, err)
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.Background()

	existing := func() *models.Product {
		return &models.Product{ID: 1, Name: "Old", Quantity: 5, Barcode: "B1", CategoryID: uintPtr(2)}
	}

	t.Run("partial keeps absent fields", func(t *testing.T) {
		d := newProductService()
		d.products.On("GetByID", ctx, uint(1)).Return(existing(), nil).Once()
		d.categories.On("Exists", ctx, uint(2)).Return(true, nil).Once()
		d.products.On("Update", ctx, mock.Anything).Return(nil).Once()

		product, err := d.service.UpdateProduct(ctx, 1, services.ProductInput{Quantity: intPtr(9)}, true)

		require.NoError(t, err)
		assert.Equal(t, "Old", product.Name)
		assert.Equal(t, 9, product.Quantity)
		require.NotNil(t, product.CategoryID)
		assert.Equal(t, uint(2), *product.CategoryID)
		d.products.AssertExpectations(t)
	})

	t.Run("partial null clears category", func(t *testing.T) {
		d := newProductService()
		d.products.On("GetByID", ctx, uint(1)).Return(existing(), nil).Once()
		d.products.On("Update", ctx, mock.Anything).Return(nil).Once()

		product, err := d.service.UpdateProduct(ctx, 1, services.ProductInput{Category: services.Null[uint]()}, true)

		require.NoError(t, err)
		assert.Nil(t, product.CategoryID)
	})

	t.Run("full update keeps absent category", func(t *testing.T) {
		d := newProductService()
		d.products.On("GetByID", ctx, uint(1)).Return(existing(), nil).Once()
		d.categories.On("Exists", ctx, uint(2)).Return(true, nil).Once()
		d.products.On("Update", ctx, mock.MatchedBy(func(p *models.Product) bool {
			return p.Name == "New" && p.CategoryID != nil && *p.CategoryID == 2
		})).Return(nil).Once()

		product, err := d.service.UpdateProduct(ctx, 1, services.ProductInput{
			Name: strPtr("New"), Quantity: intPtr(5), Barcode: strPtr("B1"),
		}, false)

		require.NoError(t, err)
		require.NotNil(t, product.CategoryID)
		assert.Equal(t, uint(2), *product.CategoryID)
		d.products.AssertExpectations(t)
	})

	t.Run("full update with null category clears it", func(t *testing.T) {
		d := newProductService()
		d.products.On("GetByID", ctx, uint(1)).Return(existing(), nil).Once()
		d.products.On("Update", ctx, mock.Anything).Return(nil).Once()

		product, err := d.service.UpdateProduct(ctx, 1, services.ProductInput{
			Name: strPtr("New"), Quantity: intPtr(5), Barcode: strPtr("B1"), Category: services.Null[uint](),
		}, false)

		require.NoError(t, err)
		assert.Nil(t, product.CategoryID)
	})

	t.Run("full update requires every field", func(t *testing.T) {
		d := newProductService()
		d.products.On("GetByID", ctx, uint(1)).Return(existing(), nil).Once()
		d.categories.On("Exists", ctx, uint(2)).Return(true, nil).Maybe()

		_, err := d.service.UpdateProduct(ctx, 1, services.ProductInput{Name: strPtr("New")}, false)

		assert.True(t, apperr.Is(err, apperr.KindValidation))
		d.products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		d := newProductService()
		d.products.On("GetByID", ctx, uint(9)).Return(nil, apperr.NotFound("product", 9)).Once()

		_, err := d.service.UpdateProduct(ctx, 9, services.ProductInput{}, true)
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
	})
}

func TestProductService_DeleteProduct(t *testing.T) {
	d := newProductService()
	ctx := context.Background()

	d.products.On("Delete", ctx, uint(1)).Return(nil).Once()
	d.events.On("Publish", ctx, services.EventProductDeleted, mock.Anything).Return(nil).Once()
	assert.NoError(t, d.service.DeleteProduct(ctx, 1))

	d.products.On("Delete", ctx, uint(2)).Return(apperr.NotFound("product", 2)).Once()
	assert.True(t, apperr.Is(d.service.DeleteProduct(ctx, 2), apperr.KindNotFound))

	d.products.AssertExpectations(t)
	d.events.AssertNumberOfCalls(t, "Publish", 1)
}

func TestProductService_ReduceQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("success publishes event", func(t *testing.T) {
		d := newProductService()
		updated := &models.Product{ID: 1, Quantity: 5, Barcode: "B1", UpdatedAt: time.Now()}
		d.products.On("ReduceQuantity", ctx, uint(1), 5).Return(updated, nil).Once()
		d.events.On("Publish", ctx, services.EventProductStockReduced, mock.MatchedBy(func(e services.StockReducedEvent) bool {
			return e.ProductID == 1 && e.Amount == 5 && e.Quantity == 5
		})).Return(nil).Once()

		product, err := d.service.ReduceQuantity(ctx, 1, 5)

		require.NoError(t, err)
		assert.Equal(t, 5, product.Quantity)
		d.products.AssertExpectations(t)
		d.events.AssertExpectations(t)
	})

	for _, amount := range []int{0, -3} {
		t.Run("non-positive amount", func(t *testing.T) {
			d := newProductService()
			d.products.On("GetByID", ctx, uint(1)).Return(&models.Product{ID: 1, Quantity: 10}, nil).Once()

			_, err := d.service.ReduceQuantity(ctx, 1, amount)

			appErr, ok := apperr.As(err)
			require.True(t, ok)
			assert.Equal(t, apperr.KindInvalidArgument, appErr.Kind)
			assert.Equal(t, "reduction amount must be positive", appErr.Message)
			d.products.AssertNotCalled(t, "ReduceQuantity", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("non-positive amount on unknown product", func(t *testing.T) {
		d := newProductService()
		d.products.On("GetByID", ctx, uint(9)).Return(nil, apperr.NotFound("product", 9)).Once()

		_, err := d.service.ReduceQuantity(ctx, 9, 0)
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
	})

	t.Run("insufficient stock", func(t *testing.T) {
		d := newProductService()
		d.products.On("ReduceQuantity", ctx, uint(1), 11).Return(nil, apperr.InsufficientStock("not enough stock")).Once()

		_, err := d.service.ReduceQuantity(ctx, 1, 11)

		appErr, ok := apperr.As(err)
		require.True(t, ok)
		assert.Equal(t, apperr.KindInsufficientStock, appErr.Kind)
		assert.Equal(t, "not enough stock", appErr.Message)
		d.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("amount beyond any stock", func(t *testing.T) {
		d := newProductService()
		d.products.On("GetByID", ctx, uint(1)).Return(&models.Product{ID: 1, Quantity: 10}, nil).Once()

		_, err := d.service.ReduceQuantity(ctx, 1, 1<<40)
		assert.True(t, apperr.Is(err, apperr.KindInsufficientStock))
	})
}
