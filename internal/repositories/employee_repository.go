package repositories

import (
	"context"

	"rikky/internal/models"
)

// EmployeeRepository defines the interface for employee data access.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByUsername(ctx context.Context, username string) (*models.Employee, error)
	GetByID(ctx context.Context, id string) (*models.Employee, error)
}
