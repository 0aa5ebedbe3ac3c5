package handlers

import (
	"rikky/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service *services.CategoryService
	logger  zerolog.Logger
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  logger.With().Str("handler", "category").Logger(),
	}
}

// RegisterRoutes registers the category routes.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	categoryRoutes := router.Group("/category")
	categoryRoutes.Get("/list", h.HandleList)
	categoryRoutes.Get("/:id<int>", auth, h.HandleGetByID)
}

// HandleList returns the categories, optionally only those of ?type=.
func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	categoryType, err := optionalInt(c, "type")
	if err != nil {
		return writeError(c, h.logger, err)
	}
	categories, err := h.service.List(c.UserContext(), categoryType)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return writeOK(c, "", categories)
}

func (h *CategoryHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	category, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return writeOK(c, "", category)
}
