package repositories

import (
	"context"

	"rikky/internal/models"
)

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	GetByIDs(ctx context.Context, ids []uint) ([]models.Category, error)
	List(ctx context.Context, categoryType *int) ([]models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Count(ctx context.Context) (int64, error)
}
