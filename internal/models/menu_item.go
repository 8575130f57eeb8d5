package models

import (
	"time"

	"gorm.io/gorm"
)

// MenuItem is one dish on the menu.
type MenuItem struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(100);not null" json:"name"`
	Price       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	Category    string         `gorm:"type:varchar(50);index;not null" json:"category"`
	Description string         `gorm:"type:text" json:"description"`
	Available   bool           `gorm:"not null" json:"available"`
	ImageURL    string         `gorm:"type:varchar(255)" json:"image_url"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (MenuItem) TableName() string {
	return "menu_items"
}
