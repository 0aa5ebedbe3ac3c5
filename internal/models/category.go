package models

// Category types.
const (
	CategoryTypeDish    = 1
	CategoryTypeSetmeal = 2
)

// Category classifies dishes (type 1) and setmeals (type 2).
type Category struct {
	Model
	Type int    `json:"type" gorm:"not null;index"`
	Name string `json:"name" gorm:"type:varchar(64);not null;uniqueIndex"`
	Sort int    `json:"sort" gorm:"not null;default:0"`
}
