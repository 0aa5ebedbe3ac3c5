package models

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Status values shared by dishes and setmeals.
const (
	StatusDisabled = 0 // sold out / off sale
	StatusEnabled  = 1 // on sale
)

// Model is the common base embedded in every menu record.
// DeletedAt turns Delete into a logical delete.
type Model struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"createTime"`
	UpdatedAt time.Time      `json:"updateTime"`
	CreatedBy string         `json:"createUser" gorm:"type:varchar(36)"`
	UpdatedBy string         `json:"updateUser" gorm:"type:varchar(36)"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate stamps the operator carried by the statement context.
func (m *Model) BeforeCreate(tx *gorm.DB) error {
	if op := OperatorFromContext(tx.Statement.Context); op != "" {
		m.CreatedBy = op
		m.UpdatedBy = op
	}
	return nil
}

// BeforeUpdate stamps the operator on struct-based updates.
func (m *Model) BeforeUpdate(tx *gorm.DB) error {
	if op := OperatorFromContext(tx.Statement.Context); op != "" {
		m.UpdatedBy = op
	}
	return nil
}

type operatorKey struct{}

// WithOperator returns a context carrying the id of the employee performing the request.
func WithOperator(ctx context.Context, employeeID string) context.Context {
	return context.WithValue(ctx, operatorKey{}, employeeID)
}

// OperatorFromContext returns the employee id stored by WithOperator, or "".
func OperatorFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(operatorKey{}).(string)
	return id
}
