package repositories

import (
	"context"

	"rikky/internal/models"
)

// SetmealRepository defines the interface for setmeal and membership data access.
// Every write that touches both tables runs in a single transaction.
type SetmealRepository interface {
	CreateWithDishes(ctx context.Context, setmeal *models.Setmeal, dishes []models.SetmealDish) error
	GetByID(ctx context.Context, id uint) (*models.Setmeal, error)
	DishesBySetmealIDs(ctx context.Context, setmealIDs []uint) ([]models.SetmealDish, error)
	UpdateWithDishes(ctx context.Context, setmeal *models.Setmeal, dishes []models.SetmealDish) error
	UpdateStatus(ctx context.Context, ids []uint, status int) error
	DeleteWithDishes(ctx context.Context, ids []uint) error
	List(ctx context.Context, filter models.SetmealFilter) ([]models.Setmeal, error)
	Page(ctx context.Context, query models.PageQuery) ([]models.Setmeal, int64, error)
}
