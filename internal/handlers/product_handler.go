package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"gudang/internal/apperr"
	"gudang/internal/repositories"
	"gudang/internal/services"
)

// ReduceQuantityRequest is the body of the reduce-quantity action. Amount is an
// integer or its decimal string form.
type ReduceQuantityRequest struct {
	Amount json.RawMessage `json:"amount"`
}

// ParseAmount returns the requested amount or a field validation error.
func (r ReduceQuantityRequest) ParseAmount() (int, error) {
	raw := bytes.TrimSpace(r.Amount)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, apperr.Validation(map[string]string{"amount": "this field is required"})
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n, nil
		}
	}
	return 0, apperr.Validation(map[string]string{"amount": "a valid integer is required"})
}

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	log     *slog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, log *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log.With(slog.String("component", "product_handler")),
	}
}

// RegisterRoutes registers the product routes on router.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleList)
	productRoutes.Post("/", h.HandleCreate)
	productRoutes.Get("/:id", h.HandleGet)
	productRoutes.Put("/:id", h.HandleUpdate)
	productRoutes.Patch("/:id", h.HandlePartialUpdate)
	productRoutes.Delete("/:id", h.HandleDelete)
	productRoutes.Post("/:id/reduce-quantity", h.HandleReduceQuantity)
}

// HandleList lists products, optionally filtered by ?search= and ?category=.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	categoryID, err := queryID(c, "category")
	if err != nil {
		return writeError(c, h.log, err)
	}
	filter := repositories.ProductFilter{
		Search:     strings.TrimSpace(c.Query("search")),
		CategoryID: categoryID,
	}

	products, err := h.service.GetAllProducts(c.UserContext(), filter)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(products)
}

// HandleGet retrieves a single product.
func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(product)
}

// HandleCreate creates a product.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	product, err := h.service.CreateProduct(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdate replaces a product.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	return h.update(c, false)
}

// HandlePartialUpdate updates the fields present in the body.
func (h *ProductHandler) HandlePartialUpdate(c *fiber.Ctx) error {
	return h.update(c, true)
}

func (h *ProductHandler) update(c *fiber.Ctx, partial bool) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in services.ProductInput
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	product, err := h.service.UpdateProduct(c.UserContext(), id, in, partial)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(product)
}

// HandleDelete deletes a product and its prices.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleReduceQuantity takes stock out of a product.
func (h *ProductHandler) HandleReduceQuantity(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}

	var req ReduceQuantityRequest
	if err := bindJSON(c, &req); err != nil {
		return writeError(c, h.log, err)
	}
	amount, err := req.ParseAmount()
	if err != nil {
		return writeError(c, h.log, err)
	}

	product, err := h.service.ReduceQuantity(c.UserContext(), id, amount)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(product)
}
