package repositories

import (
	"context"
	"errors"
	"fmt"

	"rikky/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMEmployeeRepository is a GORM implementation of EmployeeRepository.
type GORMEmployeeRepository struct {
	db *gorm.DB
}

// NewGORMEmployeeRepository creates a new instance of GORMEmployeeRepository.
func NewGORMEmployeeRepository(db *gorm.DB) *GORMEmployeeRepository {
	return &GORMEmployeeRepository{
		db: db,
	}
}

// Create inserts a new employee, assigning a UUID when none is set.
func (r *GORMEmployeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	if employee.ID == "" {
		employee.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(employee).Error; err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}
	return nil
}

// GetByUsername retrieves an employee by username.
func (r *GORMEmployeeRepository) GetByUsername(ctx context.Context, username string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.WithContext(ctx).First(&employee, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("employee with username %s: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get employee by username %s: %w", username, err)
	}
	return &employee, nil
}

// GetByID retrieves an employee by ID.
func (r *GORMEmployeeRepository) GetByID(ctx context.Context, id string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.WithContext(ctx).First(&employee, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("employee with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get employee by ID %s: %w", id, err)
	}
	return &employee, nil
}
