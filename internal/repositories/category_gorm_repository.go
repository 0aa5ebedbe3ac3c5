package repositories

import (
	"context"
	"errors"
	"fmt"

	"rikky/internal/models"

	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{
		db: db,
	}
}

// GetByID retrieves a single category by its ID.
func (r *GORMCategoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get category by ID %d: %w", id, err)
	}
	return &category, nil
}

// GetByIDs retrieves the categories with the given IDs. Unknown IDs are skipped.
func (r *GORMCategoryRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Category, error) {
	categories := []models.Category{}
	if len(ids) == 0 {
		return categories, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// List returns categories, optionally of one type, by sort then most recently updated.
func (r *GORMCategoryRepository) List(ctx context.Context, categoryType *int) ([]models.Category, error) {
	categories := []models.Category{}
	q := r.db.WithContext(ctx).Model(&models.Category{})
	if categoryType != nil {
		q = q.Where("type = ?", *categoryType)
	}
	if err := q.Order("sort ASC").Order("updated_at DESC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Create inserts a new category.
func (r *GORMCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// Count returns the number of live categories.
func (r *GORMCategoryRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Category{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return n, nil
}
