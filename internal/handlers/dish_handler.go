package handlers

import (
	"rikky/internal/models"
	"rikky/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// DishHandler handles HTTP requests for dishes.
type DishHandler struct {
	service *services.DishService
	logger  zerolog.Logger
}

// NewDishHandler creates a new DishHandler.
func NewDishHandler(service *services.DishService, logger zerolog.Logger) *DishHandler {
	return &DishHandler{
		service: service,
		logger:  logger.With().Str("handler", "dish").Logger(),
	}
}

// RegisterRoutes registers the dish routes. Only the list is public; every
// other route goes through auth.
func (h *DishHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	dishRoutes := router.Group("/dish")
	dishRoutes.Get("/list", h.HandleList)
	dishRoutes.Get("/page", auth, h.HandlePage)
	dishRoutes.Get("/:id<int>", auth, h.HandleGetByID)
	dishRoutes.Post("/", auth, h.HandleSave)
	dishRoutes.Put("/", auth, h.HandleUpdate)
	dishRoutes.Post("/status/:status", auth, h.HandleStatus)
	dishRoutes.Delete("/", auth, h.HandleDelete)
	dishRoutes.Post("/import", auth, h.HandleImport)
}

// HandleSave creates a dish with its flavors.
func (h *DishHandler) HandleSave(c *fiber.Ctx) error {
	var dto models.DishDto
	if err := c.BodyParser(&dto); err != nil {
		return writeError(c, h.logger, invalidBody(err))
	}
	if err := h.service.SaveWithFlavors(c.UserContext(), &dto); err != nil {
		return writeError(c, h.logger, err)
	}
	return writeOK(c, "dish created", dto)
}

// HandlePage returns one page of dishes.
func (h *DishHandler) HandlePage(c *fiber.Ctx) error {
	query, err := parsePageQuery(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	page, err := h.service.Page(c.UserContext(), query)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return writeOK(c, "", page)
}

// HandleGetByID returns a dish with its flavors.
func (h *DishHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	dto, err := h.service.GetByIDWithFlavors(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return writeOK(c, "", dto)
}

// HandleUpdate updates a dish and replaces its flavors.
func (h *DishHandler) HandleUpdate(c *fiber.Ctx) error {
	var dto models.DishDto
	if err := c.BodyParser(&dto); err != nil {
		return writeError(c, h.logger, invalidBody(err))
	}
	if err := h.service.UpdateWithFlavors(c.UserContext(), &dto); err != nil {
		return writeError(c, h.logger, err)
	}
	return writeOK(c, "dish updated", dto)
}

// HandleStatus puts dishes on sale or sells them out.
func (h *DishHandler) HandleStatus(c *fiber.Ctx) error {
	status, err := parseStatus(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	ids, err := parseIDs(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	if err := h.service.UpdateDishStatus(c.UserContext(), ids, status); err != nil {
		return writeError(c, h.logger, err)
	}
	return writeOK[any](c, "dish status updated", nil)
}

// HandleDelete logically deletes dishes.
func (h *DishHandler) HandleDelete(c *fiber.Ctx) error {
	ids, err := parseIDs(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	if err := h.service.DeleteByIDs(c.UserContext(), ids); err != nil {
		return writeError(c, h.logger, err)
	}
	return writeOK[any](c, "dishes deleted", nil)
}

// HandleList returns the dishes matching categoryId, status and name, with flavors.
func (h *DishHandler) HandleList(c *fiber.Ctx) error {
	categoryID, err := optionalUint(c, "categoryId")
	if err != nil {
		return writeError(c, h.logger, err)
	}
	status, err := optionalInt(c, "status")
	if err != nil {
		return writeError(c, h.logger, err)
	}
	filter := models.DishFilter{CategoryID: categoryID, Status: status, Name: c.Query("name")}
	dishes, err := h.service.ListWithFlavors(c.UserContext(), filter)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return writeOK(c, "", dishes)
}

// HandleImport creates dishes from an uploaded xlsx file in the "file" field.
func (h *DishHandler) HandleImport(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return writeError(c, h.logger, services.NewDomainError(services.KindValidation, "Excel file is required"))
	}
	file, err := header.Open()
	if err != nil {
		return writeError(c, h.logger, err)
	}
	defer file.Close()

	n, err := h.service.Import(c.UserContext(), file)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	h.logger.Info().Int("count", n).Str("file", header.Filename).Msg("dishes imported")
	return writeOK(c, "dishes imported", fiber.Map{"count": n})
}
