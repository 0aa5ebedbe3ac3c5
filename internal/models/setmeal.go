package models

import "github.com/shopspring/decimal"

// Setmeal is a fixed-price bundle of dishes.
type Setmeal struct {
	Model
	CategoryID  uint            `json:"categoryId" gorm:"not null;index" validate:"required"`
	Name        string          `json:"name" gorm:"type:varchar(64);not null" validate:"required,max=64"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Status      int             `json:"status" gorm:"not null" validate:"oneof=0 1"`
	Code        string          `json:"code" gorm:"type:varchar(32)" validate:"max=32"`
	Description string          `json:"description" gorm:"type:varchar(512)" validate:"max=512"`
	Image       string          `json:"image" gorm:"type:varchar(255)" validate:"max=255"`
}

// SetmealDish links a setmeal to one of its dishes. Name, Price and Image
// are copies of the dish taken when the setmeal was assembled.
type SetmealDish struct {
	Model
	SetmealID uint            `json:"setmealId" gorm:"not null;index"`
	DishID    uint            `json:"dishId" gorm:"not null;index" validate:"required"`
	Name      string          `json:"name" gorm:"type:varchar(64)"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Image     string          `json:"image" gorm:"type:varchar(200)"`
	Copies    int             `json:"copies" gorm:"not null;default:1" validate:"gte=1"`
	Sort      int             `json:"sort" gorm:"not null;default:0"`
}
