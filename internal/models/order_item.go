package models

import "time"

// OrderItem is one line of a ticket. The unit price is snapshotted at order
// time so later menu edits never change a printed ticket.
type OrderItem struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	OrderID    uint      `gorm:"index;not null" json:"order_id"`
	MenuItemID uint      `gorm:"index;not null" json:"menu_item_id"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	UnitPrice  Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`
	Subtotal   Money     `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`
	Notes      *string   `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
}

// TableName sets the table name.
func (OrderItem) TableName() string {
	return "order_items"
}
