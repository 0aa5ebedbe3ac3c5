package repositories

import (
	"context"
	"errors"
	"fmt"

	"rikky/internal/models"

	"gorm.io/gorm"
)

var setmealColumns = []string{"category_id", "name", "price", "status", "code", "description", "image", "updated_by"}

// GORMSetmealRepository is a GORM implementation of SetmealRepository.
type GORMSetmealRepository struct {
	db *gorm.DB
}

// NewGORMSetmealRepository creates a new instance of GORMSetmealRepository.
func NewGORMSetmealRepository(db *gorm.DB) *GORMSetmealRepository {
	return &GORMSetmealRepository{
		db: db,
	}
}

// CreateWithDishes inserts the setmeal and its membership rows in one transaction.
func (r *GORMSetmealRepository) CreateWithDishes(ctx context.Context, setmeal *models.Setmeal, dishes []models.SetmealDish) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		setmeal.Model = models.Model{}
		if err := tx.Create(setmeal).Error; err != nil {
			return fmt.Errorf("failed to create setmeal: %w", err)
		}
		return insertSetmealDishes(tx, setmeal.ID, dishes)
	})
}

// GetByID retrieves a single setmeal by its ID.
func (r *GORMSetmealRepository) GetByID(ctx context.Context, id uint) (*models.Setmeal, error) {
	var setmeal models.Setmeal
	if err := r.db.WithContext(ctx).First(&setmeal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("setmeal with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get setmeal by ID %d: %w", id, err)
	}
	return &setmeal, nil
}

// DishesBySetmealIDs returns the membership rows of the given setmeals by sort, then ID.
func (r *GORMSetmealRepository) DishesBySetmealIDs(ctx context.Context, setmealIDs []uint) ([]models.SetmealDish, error) {
	dishes := []models.SetmealDish{}
	if len(setmealIDs) == 0 {
		return dishes, nil
	}
	err := r.db.WithContext(ctx).
		Where("setmeal_id IN ?", setmealIDs).
		Order("sort ASC").Order("id ASC").
		Find(&dishes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get setmeal dishes: %w", err)
	}
	return dishes, nil
}

// UpdateWithDishes updates the setmeal row and replaces all of its
// membership rows, atomically.
func (r *GORMSetmealRepository) UpdateWithDishes(ctx context.Context, setmeal *models.Setmeal, dishes []models.SetmealDish) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(setmeal).Select(setmealColumns).Updates(setmeal)
		if res.Error != nil {
			return fmt.Errorf("failed to update setmeal: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("setmeal with ID %d for update: %w", setmeal.ID, ErrNotFound)
		}
		if err := tx.Unscoped().Where("setmeal_id = ?", setmeal.ID).Delete(&models.SetmealDish{}).Error; err != nil {
			return fmt.Errorf("failed to delete dishes of setmeal %d: %w", setmeal.ID, err)
		}
		return insertSetmealDishes(tx, setmeal.ID, dishes)
	})
}

func insertSetmealDishes(tx *gorm.DB, setmealID uint, dishes []models.SetmealDish) error {
	if len(dishes) == 0 {
		return nil
	}
	for i := range dishes {
		dishes[i].Model = models.Model{}
		dishes[i].SetmealID = setmealID
	}
	if err := tx.Create(&dishes).Error; err != nil {
		return fmt.Errorf("failed to create dishes of setmeal %d: %w", setmealID, err)
	}
	return nil
}

// UpdateStatus sets the status of all given setmeals in one statement. If
// any ID does not match a live setmeal nothing is changed.
func (r *GORMSetmealRepository) UpdateStatus(ctx context.Context, ids []uint, status int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Setmeal{}).Where("id IN ?", ids).Updates(statusAssignments(ctx, status))
		if res.Error != nil {
			return fmt.Errorf("failed to update setmeal status: %w", res.Error)
		}
		if res.RowsAffected != int64(len(ids)) {
			return fmt.Errorf("%d of %d setmeals found for status update: %w", res.RowsAffected, len(ids), ErrNotFound)
		}
		return nil
	})
}

// DeleteWithDishes logically deletes the setmeals and their membership rows.
// The batch is rejected as a whole with ErrOnSale if any setmeal is still on
// sale (an *OnSaleError), and with ErrNotFound if any ID does not match a live setmeal.
func (r *GORMSetmealRepository) DeleteWithDishes(ctx context.Context, ids []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var found int64
		if err := tx.Model(&models.Setmeal{}).Where("id IN ?", ids).Count(&found).Error; err != nil {
			return fmt.Errorf("failed to count setmeals: %w", err)
		}
		if found != int64(len(ids)) {
			return fmt.Errorf("%d of %d setmeals found for deletion: %w", found, len(ids), ErrNotFound)
		}

		var onSale int64
		err := tx.Model(&models.Setmeal{}).
			Where("id IN ? AND status = ?", ids, models.StatusEnabled).
			Count(&onSale).Error
		if err != nil {
			return fmt.Errorf("failed to count setmeals on sale: %w", err)
		}
		if onSale > 0 {
			return &OnSaleError{OnSale: onSale, Total: len(ids)}
		}

		if err := tx.Where("id IN ?", ids).Delete(&models.Setmeal{}).Error; err != nil {
			return fmt.Errorf("failed to delete setmeals: %w", err)
		}
		if err := tx.Where("setmeal_id IN ?", ids).Delete(&models.SetmealDish{}).Error; err != nil {
			return fmt.Errorf("failed to delete setmeal dishes: %w", err)
		}
		return nil
	})
}

// List returns the setmeals matching the filter ordered by ID.
func (r *GORMSetmealRepository) List(ctx context.Context, filter models.SetmealFilter) ([]models.Setmeal, error) {
	setmeals := []models.Setmeal{}
	err := r.db.WithContext(ctx).
		Scopes(setmealFilterScope(filter)).
		Order("id ASC").
		Find(&setmeals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list setmeals: %w", err)
	}
	return setmeals, nil
}

// Page returns one page of setmeals, most recently updated first, and the
// total number of matching setmeals.
func (r *GORMSetmealRepository) Page(ctx context.Context, query models.PageQuery) ([]models.Setmeal, int64, error) {
	filter := setmealFilterScope(models.SetmealFilter{Name: query.Name})

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Setmeal{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count setmeals: %w", err)
	}

	setmeals := []models.Setmeal{}
	err := r.db.WithContext(ctx).
		Scopes(filter).
		Order("updated_at DESC").Order("id DESC").
		Limit(query.PageSize).Offset(query.Offset()).
		Find(&setmeals).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to page setmeals: %w", err)
	}
	return setmeals, total, nil
}

func setmealFilterScope(filter models.SetmealFilter) func(*gorm.DB) *gorm.DB {
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
