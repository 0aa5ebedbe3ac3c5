package services

import (
	"context"
	"errors"
	"fmt"

	"rikky/internal/models"
	"rikky/internal/repositories"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{
		repo: repo,
	}
}

// List retrieves the categories, optionally of one type only.
func (s *CategoryService) List(ctx context.Context, categoryType *int) ([]models.Category, error) {
	if categoryType != nil && *categoryType != models.CategoryTypeDish && *categoryType != models.CategoryTypeSetmeal {
		return nil, NewDomainError(KindValidation, "invalid category type %d", *categoryType)
	}
	return s.repo.List(ctx, categoryType)
}

// GetByID retrieves a single category by its ID.
func (s *CategoryService) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepository(err, "category %d not found", id)
	}
	return category, nil
}

// requireCategory checks that the category exists and classifies the given kind of record.
func requireCategory(ctx context.Context, repo repositories.CategoryRepository, id uint, categoryType int) error {
	category, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return NewDomainError(KindValidation, "category %d does not exist", id)
		}
		return fmt.Errorf("failed to check category %d: %w", id, err)
	}
	if category.Type != categoryType {
		return NewDomainError(KindValidation, "category %d is not a %s category", id, categoryTypeName(categoryType))
	}
	return nil
}

// categoryNames maps category IDs to names. Unknown IDs are absent.
func categoryNames(ctx context.Context, repo repositories.CategoryRepository, ids []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	categories, err := repo.GetByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}

func categoryTypeName(categoryType int) string {
	if categoryType == models.CategoryTypeSetmeal {
		return "setmeal"
	}
	return "dish"
}
