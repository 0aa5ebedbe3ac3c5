package handlers

import (
	"rikky/internal/models"
	"rikky/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// SetmealHandler handles HTTP requests for setmeals.
type SetmealHandler struct {
	service *services.SetmealService
	logger  zerolog.Logger
}

// NewSetmealHandler creates a new SetmealHandler.
func NewSetmealHandler(service *services.SetmealService, logger zerolog.Logger) *SetmealHandler {
	return &SetmealHandler{
		service: service,
		logger:  logger.With().Str("handler", "setmeal").Logger(),
	}
}

// RegisterRoutes registers the setmeal routes. Only the list is public.
func (h *SetmealHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	setmealRoutes := router.Group("/setmeal")
	setmealRoutes.Get("/list", h.HandleList)
	setmealRoutes.Get("/page", auth, h.HandlePage)
	setmealRoutes.Get("/dish/:id<int>", auth, h.HandleListDishes)
	setmealRoutes.Get("/:id<int>", auth, h.HandleGetByID)
	setmealRoutes.Post("/", auth, h.HandleSave)
	setmealRoutes.Put("/", auth, h.HandleUpdate)
	setmealRoutes.Post("/status/:status", auth, h.HandleStatus)
	setmealRoutes.Delete("/", auth, h.HandleDelete)
}

func (h *SetmealHandler) HandleSave(c *fiber.Ctx) error {
	var dto models.SetmealDto
	if err := c.BodyParser(&dto); err != nil {
		return writeError(c, h.logger, invalidBody(err))
	}
	if err := h.service.SaveWithDishes(c.UserContext(), &dto); err != nil {
		return writeError(c, h.logger, err)
	}
	return writeOK(c, "setmeal created", dto)
}

func (h *SetmealHandler) HandlePage(c *fiber.Ctx) error {
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

func (h *SetmealHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	dto, err := h.service.GetByIDWithDishes(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return writeOK(c, "", dto)
}

func (h *SetmealHandler) HandleUpdate(c *fiber.Ctx) error {
	var dto models.SetmealDto
	if err := c.BodyParser(&dto); err != nil {
		return writeError(c, h.logger, invalidBody(err))
	}
	if err := h.service.UpdateWithDishes(c.UserContext(), &dto); err != nil {
		return writeError(c, h.logger, err)
	}
	return writeOK(c, "setmeal updated", dto)
}

func (h *SetmealHandler) HandleStatus(c *fiber.Ctx) error {
	status, err := parseStatus(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	ids, err := parseIDs(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	if err := h.service.ChangeStatus(c.UserContext(), ids, status); err != nil {
		return writeError(c, h.logger, err)
	}
	return writeOK[any](c, "setmeal status updated", nil)
}

// HandleDelete logically deletes setmeals. The batch is refused while any
// of them is on sale.
func (h *SetmealHandler) HandleDelete(c *fiber.Ctx) error {
	ids, err := parseIDs(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	if err := h.service.RemoveWithDishes(c.UserContext(), ids); err != nil {
		return writeError(c, h.logger, err)
	}
	return writeOK[any](c, "setmeals deleted", nil)
}

func (h *SetmealHandler) HandleList(c *fiber.Ctx) error {
	categoryID, err := optionalUint(c, "categoryId")
	if err != nil {
		return writeError(c, h.logger, err)
	}
	status, err := optionalInt(c, "status")
	if err != nil {
		return writeError(c, h.logger, err)
	}
	filter := models.SetmealFilter{CategoryID: categoryID, Status: status, Name: c.Query("name")}
	setmeals, err := h.service.ListWithDishes(c.UserContext(), filter)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return writeOK(c, "", setmeals)
}

// HandleListDishes returns the member dishes of a setmeal with their copies.
func (h *SetmealHandler) HandleListDishes(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	dishes, err := h.service.ListDishes(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return writeOK(c, "", dishes)
}
