package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Dish is a single menu item.
type Dish struct {
	Model
	Name        string          `json:"name" gorm:"type:varchar(64);not null" validate:"required,max=64"`
	CategoryID  uint            `json:"categoryId" gorm:"not null;index" validate:"required"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Code        string          `json:"code" gorm:"type:varchar(64)" validate:"max=64"`
	Image       string          `json:"image" gorm:"type:varchar(200)" validate:"max=200"`
	Description string          `json:"description" gorm:"type:varchar(400)" validate:"max=400"`
	Status      int             `json:"status" gorm:"not null" validate:"oneof=0 1"`
	Sort        int             `json:"sort" gorm:"not null;default:0"`
}

// DishFlavor is one customization axis of a dish, e.g. spice level,
// with the values a customer may pick from.
type DishFlavor struct {
	Model
	DishID uint                        `json:"dishId" gorm:"not null;index"`
	Name   string                      `json:"name" gorm:"type:varchar(64);not null" validate:"required,max=64"`
	Value  datatypes.JSONSlice[string] `json:"value" validate:"required,min=1,dive,required"`
}
