package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"rikky/internal/config"
	"rikky/internal/database"
	"rikky/internal/handlers"
	"rikky/internal/middleware"
	"rikky/internal/repositories"
	"rikky/internal/services"
	"rikky/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
	"gorm.io/gorm"
)

// App is the wired menu service.
type App struct {
	Fiber       *fiber.App
	DB          *gorm.DB
	AuthService *services.AuthService

	mqClient *rabbitmq.Client
	logger   zerolog.Logger
}

// NewApp connects the database and, when configured, RabbitMQ, seeds the
// reference data and registers every route.
func NewApp(cfg *config.Config, logger zerolog.Logger) (*App, error) {
	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	// --- Repositories ---
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	dishRepo := repositories.NewGORMDishRepository(db)
	setmealRepo := repositories.NewGORMSetmealRepository(db)
	employeeRepo := repositories.NewGORMEmployeeRepository(db)

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	var events *services.MenuEvents
	if cfg.EventsEnabled() {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{
			URL:      cfg.RabbitMQ.URL,
			Exchange: cfg.RabbitMQ.Exchange,
			Queue:    cfg.RabbitMQ.Queue,
		}, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("RabbitMQ unavailable, menu events disabled")
		} else {
			events = services.NewMenuEvents(mqClient, logger)
		}
	}

	// --- Services ---
	authService := services.NewAuthService(employeeRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	categoryService := services.NewCategoryService(categoryRepo)
	dishService := services.NewDishService(dishRepo, categoryRepo, events)
	setmealService := services.NewSetmealService(setmealRepo, dishRepo, categoryRepo, events)

	ctx := context.Background()
	if err := seedCategories(ctx, categoryRepo, logger); err != nil {
		return nil, err
	}
	if err := seedAdmin(ctx, authService, employeeRepo, cfg.Auth, logger); err != nil {
		return nil, err
	}

	// --- Fiber ---
	app := fiber.New(fiber.Config{
		AppName:      "rikky",
		ErrorHandler: handlers.ErrorHandler(logger),
	})
	app.Use(requestid.New())
	app.Use(middleware.Logging(logger))
	app.Use(recover.New(recover.Config{
		EnableStackTrace:  true,
		StackTraceHandler: middleware.Recovery(logger),
	}))

	a := &App{
		Fiber:       app,
		DB:          db,
		AuthService: authService,
		mqClient:    mqClient,
		logger:      logger,
	}
	app.Get("/health", a.handleHealth)

	auth := middleware.AuthRequired(authService, logger)
	handlers.NewEmployeeHandler(authService, logger).RegisterRoutes(app)
	handlers.NewCategoryHandler(categoryService, logger).RegisterRoutes(app, auth)
	handlers.NewDishHandler(dishService, logger).RegisterRoutes(app, auth)
	handlers.NewSetmealHandler(setmealService, logger).RegisterRoutes(app, auth)

	return a, nil
}

func (a *App) handleHealth(c *fiber.Ctx) error {
	status := fiber.Map{
		"status":   "healthy",
		"time":     time.Now().Format(time.RFC3339),
		"database": "up",
		"rabbitmq": "disabled",
	}
	code := fiber.StatusOK

	sqlDB, err := a.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.UserContext())
	}
	if err != nil {
		status["status"] = "unhealthy"
		status["database"] = "down"
		code = fiber.StatusServiceUnavailable
	}
	if a.mqClient != nil {
		status["rabbitmq"] = "connected"
	}
	return c.Status(code).JSON(status)
}

// StartEventConsumer logs every menu event delivered to the configured
// queue. It does nothing when RabbitMQ is not connected.
func (a *App) StartEventConsumer() error {
	if a.mqClient == nil {
		return nil
	}
	logger := a.logger.With().Str("component", "menu_consumer").Logger()
	return a.mqClient.ConsumeMenuEvents(func(msg amqp.Delivery) error {
		var event services.MenuEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			return fmt.Errorf("failed to decode menu event: %w", err)
		}
		logger.Info().
			Str("routing_key", msg.RoutingKey).
			Str("entity", event.Entity).
			Str("action", event.Action).
			Uints("ids", event.IDs).
			Time("at", event.At).
			Msg("menu event received")
		return nil
	})
}

// Close releases the broker connection and the database pool.
func (a *App) Close() error {
	var errs []error
	if a.mqClient != nil {
		errs = append(errs, a.mqClient.Close())
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		errs = append(errs, sqlDB.Close())
	}
	return errors.Join(errs...)
}
