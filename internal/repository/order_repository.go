package repository

import (
	"errors"
	"time"

	"github.com/cantina-pos/internal/constants"
	"github.com/cantina-pos/internal/models"

	"gorm.io/gorm"
)

// OrderFilter narrows order listings.
type OrderFilter struct {
	Date   *time.Time
	Status string
}

// OrderRepository is the order data access interface.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	List(filter OrderFilter) ([]models.Order, error)
	ListOpen() ([]models.Order, error)
	NextTicketNumber() (int, error)
	Save(order *models.Order) error
	AddItem(item *models.OrderItem) error
	GetItem(orderID, itemID uint) (*models.OrderItem, error)
	SaveItem(item *models.OrderItem) error
	DeleteItem(orderID, itemID uint) error
	WithTx(tx *gorm.DB) *GormOrderRepository
	Transaction(fn func(tx *gorm.DB) error) error
}

// GormOrderRepository is the GORM implementation.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates an order repository.
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Transaction runs fn inside a database transaction.
func (r *GormOrderRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// Create inserts an order together with its items.
func (r *GormOrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// GetByID loads one order with its items and menu snapshots, nil when absent.
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_items.id asc")
	}).Preload("Items.MenuItem").Preload("CreatedBy").First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns orders newest first, optionally filtered by day and status.
func (r *GormOrderRepository) List(filter OrderFilter) ([]models.Order, error) {
	query := r.db.Model(&models.Order{}).
		Preload("Items").
		Preload("Items.MenuItem")
	if filter.Date != nil {
		dayStart := time.Date(filter.Date.Year(), filter.Date.Month(), filter.Date.Day(), 0, 0, 0, 0, filter.Date.Location())
		query = query.Where("created_at >= ? AND created_at < ?", dayStart, dayStart.AddDate(0, 0, 1))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	var orders []models.Order
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ListOpen returns open tickets oldest first, the order a kitchen works them.
func (r *GormOrderRepository) ListOpen() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Model(&models.Order{}).
		Preload("Items").
		Preload("Items.MenuItem").
		Where("status = ?", constants.OrderStatusOpen).
		Order("created_at asc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// NextTicketNumber returns the next sequential ticket number.
func (r *GormOrderRepository) NextTicketNumber() (int, error) {
	var last models.Order
	err := r.db.Unscoped().Order("ticket_number desc").First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return last.TicketNumber + 1, nil
}

// Save persists all fields of an order.
func (r *GormOrderRepository) Save(order *models.Order) error {
	return r.db.Save(order).Error
}

// AddItem appends a line item to an existing order.
func (r *GormOrderRepository) AddItem(item *models.OrderItem) error {
	return r.db.Create(item).Error
}

// GetItem loads one order line, nil when absent.
func (r *GormOrderRepository) GetItem(orderID, itemID uint) (*models.OrderItem, error) {
	var item models.OrderItem
	err := r.db.Where("order_id = ? AND id = ?", orderID, itemID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SaveItem persists all fields of an order line.
func (r *GormOrderRepository) SaveItem(item *models.OrderItem) error {
	return r.db.Save(item).Error
}

// DeleteItem removes one order line.
func (r *GormOrderRepository) DeleteItem(orderID, itemID uint) error {
	return r.db.Where("order_id = ? AND id = ?", orderID, itemID).Delete(&models.OrderItem{}).Error
}
