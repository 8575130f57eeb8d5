package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is one ticket. It stays open while the table keeps ordering and is
// closed by completing (with a payment method) or cancelling.
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	TicketNumber    int            `gorm:"uniqueIndex;not null" json:"ticket_number"`
	CustomerName    string         `gorm:"type:varchar(100);default:'Cliente General'" json:"customer_name"`
	OrderType       string         `gorm:"type:varchar(20);index;default:'local'" json:"order_type"` // local|takeout|delivery
	DeliveryPhone   *string        `gorm:"type:varchar(20)" json:"delivery_phone"`
	DeliveryAddress *string        `gorm:"type:text" json:"delivery_address"`
	Subtotal        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`
	IVA             Money          `gorm:"type:decimal(20,2);not null;default:0" json:"iva"`
	Total           Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total"`
	Status          string         `gorm:"type:varchar(20);index;default:'open'" json:"status"`          // open|completed|cancelled
	PaymentMethod   string         `gorm:"type:varchar(20);default:'cash'" json:"payment_method"`        // cash|card|transfer
	Printed         bool           `gorm:"not null;default:false" json:"printed"`
	CreatedByUserID *uint          `gorm:"index" json:"created_by_user_id,omitempty"`
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	CompletedAt     *time.Time     `json:"completed_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	CreatedBy *User       `gorm:"foreignKey:CreatedByUserID" json:"created_by,omitempty"`
	Items     []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}
