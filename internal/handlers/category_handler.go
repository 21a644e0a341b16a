package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"gudang/internal/services"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service *services.CategoryService
	log     *slog.Logger
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService, log *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		log:     log.With(slog.String("component", "category_handler")),
	}
}

// RegisterRoutes registers the category routes on router.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleList)
	categoryRoutes.Post("/", h.HandleCreate)
	categoryRoutes.Get("/:id", h.HandleGet)
	categoryRoutes.Put("/:id", h.HandleUpdate)
	categoryRoutes.Patch("/:id", h.HandlePartialUpdate)
	categoryRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList lists all categories.
func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(categories)
}

// HandleGet retrieves a single category.
func (h *CategoryHandler) HandleGet(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	category, err := h.service.GetCategoryByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(category)
}

// HandleCreate creates a category.
func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	var in services.CategoryInput
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	category, err := h.service.CreateCategory(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleUpdate replaces a category.
func (h *CategoryHandler) HandleUpdate(c *fiber.Ctx) error {
	return h.update(c, false)
}

// HandlePartialUpdate updates the fields present in the body.
func (h *CategoryHandler) HandlePartialUpdate(c *fiber.Ctx) error {
	return h.update(c, true)
}

func (h *CategoryHandler) update(c *fiber.Ctx, partial bool) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in services.CategoryInput
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	category, err := h.service.UpdateCategory(c.UserContext(), id, in, partial)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(category)
}

// HandleDelete deletes a category. Its products are kept without category.
func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if err := h.service.DeleteCategory(c.UserContext(), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
