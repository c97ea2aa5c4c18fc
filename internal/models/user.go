package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the account record consulted before aggregating statistics. The
// engine never mutates users; account lifecycle belongs to the auth layer.
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	FullName string `json:"full_name" gorm:"size:100"`
	Email    string `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email"`

	IsActive    bool       `json:"is_active" gorm:"default:true"`
	LastLoginAt *time.Time `json:"last_login_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
