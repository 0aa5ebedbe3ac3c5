package main

import (
	"context"
	"errors"
	"fmt"

	"rikky/internal/config"
	"rikky/internal/models"
	"rikky/internal/repositories"
	"rikky/internal/services"

	"github.com/rs/zerolog"
)

var defaultCategories = []models.Category{
	{Type: models.CategoryTypeDish, Name: "Sichuan", Sort: 1},
	{Type: models.CategoryTypeDish, Name: "Cantonese", Sort: 2},
	{Type: models.CategoryTypeDish, Name: "Staples", Sort: 3},
	{Type: models.CategoryTypeDish, Name: "Drinks", Sort: 4},
	{Type: models.CategoryTypeSetmeal, Name: "Business lunch", Sort: 10},
	{Type: models.CategoryTypeSetmeal, Name: "Family combo", Sort: 11},
}

// seedCategories creates the default categories into an empty table.
func seedCategories(ctx context.Context, repo repositories.CategoryRepository, logger zerolog.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, c := range defaultCategories {
		category := c
		if err := repo.Create(ctx, &category); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", category.Name, err)
		}
		logger.Info().Str("name", category.Name).Uint("id", category.ID).Msg("seeded category")
	}
	return nil
}

// seedAdmin registers the bootstrap employee when a password is configured
// and the username is still free.
func seedAdmin(ctx context.Context, auth *services.AuthService, repo repositories.EmployeeRepository, cfg config.AuthConfig, logger zerolog.Logger) error {
	if cfg.AdminPassword == "" {
		return nil
	}
	_, err := repo.GetByUsername(ctx, cfg.AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	admin := &models.Employee{
		Username: cfg.AdminUsername,
		Name:     "Administrator",
		Password: cfg.AdminPassword,
		Status:   models.StatusEnabled,
	}
	if err := auth.Register(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin employee: %w", err)
	}
	logger.Info().Str("username", admin.Username).Msg("seeded admin employee")
	return nil
}
