package models

import "time"

// Employee is a back-office user allowed to manage the menu.
type Employee struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(32)" validate:"required,min=3,max=32"`
	Name      string    `json:"name" gorm:"type:varchar(32)" validate:"required,max=32"`
	Password  string    `json:"-" gorm:"type:varchar(64)"` // bcrypt hash
	Phone     string    `json:"phone" gorm:"type:varchar(11)" validate:"omitempty,len=11,numeric"`
	Status    int       `json:"status" gorm:"not null"`
	CreatedAt time.Time `json:"createTime"`
	UpdatedAt time.Time `json:"updateTime"`
}
