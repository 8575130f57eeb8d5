package repository

import (
	"errors"
	"time"

	"github.com/cantina-pos/internal/constants"
	"github.com/cantina-pos/internal/models"

	"gorm.io/gorm"
)

// BestSellerRow is one aggregated best-seller entry.
type BestSellerRow struct {
	Name         string       `json:"name"`
	Category     string       `json:"category"`
	TotalSold    int          `json:"total_sold"`
	TotalRevenue models.Money `json:"total_revenue"`
}

// CategorySalesRow is one aggregated per-category sales entry.
type CategorySalesRow struct {
	Category     string       `json:"category"`
	ItemsSold    int          `json:"items_sold"`
	TotalRevenue models.Money `json:"total_revenue"`
}

// ReportRepository aggregates sales figures for reporting views.
type ReportRepository interface {
	DailySalesByDate(date time.Time) (*models.DailySales, error)
	UpsertDailySales(fn func(row *models.DailySales)) error
	BestSellers(since time.Time, limit int) ([]BestSellerRow, error)
	SalesByCategory(since time.Time) ([]CategorySalesRow, error)
}

// GormReportRepository is the GORM implementation.
type GormReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a report repository.
func NewReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// DailySalesByDate loads the rollup row for one day, nil when absent.
func (r *GormReportRepository) DailySalesByDate(date time.Time) (*models.DailySales, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	var row models.DailySales
	err := r.db.Where("date = ?", day).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// UpsertDailySales loads or creates today's rollup row, applies fn and saves
// the result inside one transaction.
func (r *GormReportRepository) UpsertDailySales(fn func(row *models.DailySales)) error {
	now := time.Now().UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return r.db.Transaction(func(tx *gorm.DB) error {
		var row models.DailySales
		err := tx.Where("date = ?", day).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = models.DailySales{Date: day}
		} else if err != nil {
			return err
		}
		fn(&row)
		return tx.Save(&row).Error
	})
}

// BestSellers aggregates the most sold items of completed orders since the
// given time.
func (r *GormReportRepository) BestSellers(since time.Time, limit int) ([]BestSellerRow, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []BestSellerRow
	err := r.db.Model(&models.OrderItem{}).
		Select("menu_items.name as name, menu_items.category as category, SUM(order_items.quantity) as total_sold, SUM(order_items.subtotal) as total_revenue").
		Joins("JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.created_at >= ? AND orders.status = ?", since, constants.OrderStatusCompleted).
		Group("menu_items.id, menu_items.name, menu_items.category").
		Order("total_sold desc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SalesByCategory aggregates completed sales per menu category since the
// given time.
func (r *GormReportRepository) SalesByCategory(since time.Time) ([]CategorySalesRow, error) {
	var rows []CategorySalesRow
	err := r.db.Model(&models.OrderItem{}).
		Select("menu_items.category as category, COUNT(order_items.id) as items_sold, SUM(order_items.subtotal) as total_revenue").
		Joins("JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.created_at >= ? AND orders.status = ?", since, constants.OrderStatusCompleted).
		Group("menu_items.category").
		Order("menu_items.category asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
