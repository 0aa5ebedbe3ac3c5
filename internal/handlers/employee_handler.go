package handlers

import (
	"fmt"
	"strings"

	"rikky/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// EmployeeHandler handles HTTP requests for employee authentication.
type EmployeeHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
	logger      zerolog.Logger
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(authService *services.AuthService, logger zerolog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		authService: authService,
		validate:    validator.New(),
		logger:      logger.With().Str("handler", "employee").Logger(),
	}
}

// RegisterRoutes registers the employee routes with the Fiber app.
func (h *EmployeeHandler) RegisterRoutes(router fiber.Router) {
	employeeRoutes := router.Group("/employee")
	employeeRoutes.Post("/login", h.HandleLogin)
	employeeRoutes.Post("/logout", h.HandleLogout)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles employee login and issues a JWT token.
func (h *EmployeeHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, h.logger, invalidBody(err))
	}

	if err := h.validate.Struct(req); err != nil {
		var messages []string
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, e := range validationErrors {
				messages = append(messages, fmt.Sprintf("field '%s' failed on the '%s' tag", e.Field(), e.Tag()))
			}
		}
		return writeError(c, h.logger, services.NewDomainError(services.KindValidation, "%s", strings.Join(messages, "; ")))
	}

	result, err := h.authService.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		h.logger.Warn().Str("username", req.Username).Err(err).Msg("login failed")
		return writeError(c, h.logger, err)
	}
	return writeOK(c, "login successful", result)
}

// HandleLogout acknowledges a logout. Tokens are stateless, so the client
// simply discards its token.
func (h *EmployeeHandler) HandleLogout(c *fiber.Ctx) error {
	return writeOK[any](c, "logout successful", nil)
}
