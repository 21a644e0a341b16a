package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"gudang/internal/services"
)

// PriceHandler handles HTTP requests for prices.
type PriceHandler struct {
	service *services.PriceService
	log     *slog.Logger
}

// NewPriceHandler creates a new PriceHandler.
func NewPriceHandler(service *services.PriceService, log *slog.Logger) *PriceHandler {
	return &PriceHandler{
		service: service,
		log:     log.With(slog.String("component", "price_handler")),
	}
}

// RegisterRoutes registers the price routes on router.
func (h *PriceHandler) RegisterRoutes(router fiber.Router) {
	priceRoutes := router.Group("/prices")
	priceRoutes.Get("/", h.HandleList)
	priceRoutes.Post("/", h.HandleCreate)
	priceRoutes.Get("/:id", h.HandleGet)
	priceRoutes.Put("/:id", h.HandleUpdate)
	priceRoutes.Patch("/:id", h.HandlePartialUpdate)
	priceRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList lists prices, only those of one product with ?product=.
func (h *PriceHandler) HandleList(c *fiber.Ctx) error {
	productID, err := queryID(c, "product")
	if err != nil {
		return writeError(c, h.log, err)
	}
	prices, err := h.service.GetAllPrices(c.UserContext(), productID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(prices)
}

func (h *PriceHandler) HandleGet(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	price, err := h.service.GetPriceByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(price)
}

func (h *PriceHandler) HandleCreate(c *fiber.Ctx) error {
	var in services.PriceInput
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	price, err := h.service.CreatePrice(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(price)
}

func (h *PriceHandler) HandleUpdate(c *fiber.Ctx) error {
	return h.update(c, false)
}

func (h *PriceHandler) HandlePartialUpdate(c *fiber.Ctx) error {
	return h.update(c, true)
}

func (h *PriceHandler) update(c *fiber.Ctx, partial bool) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in services.PriceInput
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	price, err := h.service.UpdatePrice(c.UserContext(), id, in, partial)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(price)
}

func (h *PriceHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if err := h.service.DeletePrice(c.UserContext(), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
