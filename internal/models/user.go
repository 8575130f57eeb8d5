package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a staff account (admin, cashier or waiter).
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"uniqueIndex;type:varchar(50);not null" json:"username"`
	PasswordHash string         `gorm:"not null" json:"-"`
	FullName     string         `gorm:"type:varchar(100)" json:"full_name"`
	Role         string         `gorm:"type:varchar(20);not null;default:'waiter'" json:"role"` // admin|cashier|waiter
	Active       bool           `gorm:"not null" json:"active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}
