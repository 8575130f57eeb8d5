package models

import "time"

// DailySales is the per-day sales rollup, updated when orders complete.
type DailySales struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Date        time.Time `gorm:"type:date;uniqueIndex;not null" json:"date"`
	TotalOrders int       `gorm:"not null;default:0" json:"total_orders"`
	TotalSales  Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_sales"`
	TotalIVA    Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_iva"`
	CashSales   Money     `gorm:"type:decimal(20,2);not null;default:0" json:"cash_sales"`
	CardSales   Money     `gorm:"type:decimal(20,2);not null;default:0" json:"card_sales"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName sets the table name.
func (DailySales) TableName() string {
	return "daily_sales"
}
