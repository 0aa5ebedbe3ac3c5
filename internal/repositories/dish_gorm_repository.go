package repositories

import (
	"context"
	"errors"
	"fmt"

	"rikky/internal/models"

	"gorm.io/gorm"
)

// dishColumns are the columns an update may change.
var dishColumns = []string{"name", "category_id", "price", "code", "image", "description", "status", "sort", "updated_by"}

// GORMDishRepository is a GORM implementation of DishRepository.
type GORMDishRepository struct {
	db *gorm.DB
}

// NewGORMDishRepository creates a new instance of GORMDishRepository.
func NewGORMDishRepository(db *gorm.DB) *GORMDishRepository {
	return &GORMDishRepository{
		db: db,
	}
}

// CreateWithFlavors inserts the dish and then its flavors, tagged with the
// generated dish ID. Both inserts commit together or not at all.
func (r *GORMDishRepository) CreateWithFlavors(ctx context.Context, dish *models.Dish, flavors []models.DishFlavor) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return createDish(tx, dish, flavors)
	})
}

// CreateManyWithFlavors inserts several dishes with their flavors in one transaction.
func (r *GORMDishRepository) CreateManyWithFlavors(ctx context.Context, dishes []models.DishDto) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range dishes {
			if err := createDish(tx, &dishes[i].Dish, dishes[i].Flavors); err != nil {
				return fmt.Errorf("dish %q: %w", dishes[i].Name, err)
			}
		}
		return nil
	})
}

func createDish(tx *gorm.DB, dish *models.Dish, flavors []models.DishFlavor) error {
	dish.Model = models.Model{}
	if err := tx.Create(dish).Error; err != nil {
		return fmt.Errorf("failed to create dish: %w", err)
	}
	return insertFlavors(tx, dish.ID, flavors)
}

// GetByID retrieves a single dish by its ID.
func (r *GORMDishRepository) GetByID(ctx context.Context, id uint) (*models.Dish, error) {
	var dish models.Dish
	if err := r.db.WithContext(ctx).First(&dish, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("dish with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get dish by ID %d: %w", id, err)
	}
	return &dish, nil
}

// GetByIDs retrieves the dishes with the given IDs. Unknown IDs are skipped.
func (r *GORMDishRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Dish, error) {
	dishes := []models.Dish{}
	if len(ids) == 0 {
		return dishes, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&dishes).Error; err != nil {
		return nil, fmt.Errorf("failed to get dishes: %w", err)
	}
	return dishes, nil
}

// FlavorsByDishIDs returns the flavors of the given dishes ordered by ID.
func (r *GORMDishRepository) FlavorsByDishIDs(ctx context.Context, dishIDs []uint) ([]models.DishFlavor, error) {
	flavors := []models.DishFlavor{}
	if len(dishIDs) == 0 {
		return flavors, nil
	}
	if err := r.db.WithContext(ctx).Where("dish_id IN ?", dishIDs).Order("id ASC").Find(&flavors).Error; err != nil {
		return nil, fmt.Errorf("failed to get dish flavors: %w", err)
	}
	return flavors, nil
}

// UpdateWithFlavors updates the dish row and replaces its whole flavor set:
// existing flavors are removed and the given ones inserted, atomically.
func (r *GORMDishRepository) UpdateWithFlavors(ctx context.Context, dish *models.Dish, flavors []models.DishFlavor) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(dish).Select(dishColumns).Updates(dish)
		if res.Error != nil {
			return fmt.Errorf("failed to update dish: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("dish with ID %d for update: %w", dish.ID, ErrNotFound)
		}
		if err := tx.Unscoped().Where("dish_id = ?", dish.ID).Delete(&models.DishFlavor{}).Error; err != nil {
			return fmt.Errorf("failed to delete flavors of dish %d: %w", dish.ID, err)
		}
		return insertFlavors(tx, dish.ID, flavors)
	})
}

func insertFlavors(tx *gorm.DB, dishID uint, flavors []models.DishFlavor) error {
	if len(flavors) == 0 {
		return nil
	}
	for i := range flavors {
		flavors[i].Model = models.Model{}
		flavors[i].DishID = dishID
	}
	if err := tx.Create(&flavors).Error; err != nil {
		return fmt.Errorf("failed to create flavors of dish %d: %w", dishID, err)
	}
	return nil
}

// UpdateStatus sets the status of all given dishes in one statement. If any
// ID does not match a live dish nothing is changed.
func (r *GORMDishRepository) UpdateStatus(ctx context.Context, ids []uint, status int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Dish{}).Where("id IN ?", ids).Updates(statusAssignments(ctx, status))
		if res.Error != nil {
			return fmt.Errorf("failed to update dish status: %w", res.Error)
		}
		if res.RowsAffected != int64(len(ids)) {
			return fmt.Errorf("%d of %d dishes found for status update: %w", res.RowsAffected, len(ids), ErrNotFound)
		}
		return nil
	})
}

// DeleteWithFlavors logically deletes the dishes and their flavors. If any
// ID does not match a live dish nothing is deleted.
func (r *GORMDishRepository) DeleteWithFlavors(ctx context.Context, ids []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id IN ?", ids).Delete(&models.Dish{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete dishes: %w", res.Error)
		}
		if res.RowsAffected != int64(len(ids)) {
			return fmt.Errorf("%d of %d dishes found for deletion: %w", res.RowsAffected, len(ids), ErrNotFound)
		}
		if err := tx.Where("dish_id IN ?", ids).Delete(&models.DishFlavor{}).Error; err != nil {
			return fmt.Errorf("failed to delete dish flavors: %w", err)
		}
		return nil
	})
}

// List returns the dishes matching the filter ordered by sort, then ID.
func (r *GORMDishRepository) List(ctx context.Context, filter models.DishFilter) ([]models.Dish, error) {
	dishes := []models.Dish{}
	err := r.db.WithContext(ctx).
		Scopes(dishFilterScope(filter)).
		Order("sort ASC").Order("id ASC").
		Find(&dishes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list dishes: %w", err)
	}
	return dishes, nil
}

// Page returns one page of dishes, most recently updated first, and the
// total number of matching dishes.
func (r *GORMDishRepository) Page(ctx context.Context, query models.PageQuery) ([]models.Dish, int64, error) {
	filter := dishFilterScope(models.DishFilter{Name: query.Name})

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Dish{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count dishes: %w", err)
	}

	dishes := []models.Dish{}
	err := r.db.WithContext(ctx).
		Scopes(filter).
		Order("updated_at DESC").Order("id DESC").
		Limit(query.PageSize).Offset(query.Offset()).
		Find(&dishes).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to page dishes: %w", err)
	}
	return dishes, total, nil
}

func dishFilterScope(filter models.DishFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.CategoryID != nil {
			db = db.Where("category_id = ?", *filter.CategoryID)
		}
		if filter.Status != nil {
			db = db.Where("status = ?", *filter.Status)
		}
		if filter.Name != "" {
			db = db.Where(`LOWER(name) LIKE ? ESCAPE '\'`, containsPattern(filter.Name))
		}
		return db
	}
}

// statusAssignments builds the column map of a bulk status change.
func statusAssignments(ctx context.Context, status int) map[string]any {
	values := map[string]any{"status": status}
	if op := models.OperatorFromContext(ctx); op != "" {
		values["updated_by"] = op
	}
	return values
}
