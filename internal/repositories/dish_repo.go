package repositories

import (
	"context"

	"rikky/internal/models"
)

// DishRepository defines the interface for dish and dish flavor data access.
// Every write that touches both tables runs in a single transaction.
type DishRepository interface {
	CreateWithFlavors(ctx context.Context, dish *models.Dish, flavors []models.DishFlavor) error
	CreateManyWithFlavors(ctx context.Context, dishes []models.DishDto) error
	GetByID(ctx context.Context, id uint) (*models.Dish, error)
	GetByIDs(ctx context.Context, ids []uint) ([]models.Dish, error)
	FlavorsByDishIDs(ctx context.Context, dishIDs []uint) ([]models.DishFlavor, error)
	UpdateWithFlavors(ctx context.Context, dish *models.Dish, flavors []models.DishFlavor) error
	UpdateStatus(ctx context.Context, ids []uint, status int) error
	DeleteWithFlavors(ctx context.Context, ids []uint) error
	List(ctx context.Context, filter models.DishFilter) ([]models.Dish, error)
	Page(ctx context.Context, query models.PageQuery) ([]models.Dish, int64, error)
}
