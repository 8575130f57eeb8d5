package repository

import (
	"errors"
	"strings"

	"github.com/cantina-pos/internal/constants"
	"github.com/cantina-pos/internal/models"

	"gorm.io/gorm"
)

// MenuRepository is the menu data access interface.
type MenuRepository interface {
	List(category string, onlyAvailable bool) ([]models.MenuItem, error)
	Categories() ([]string, error)
	GetByID(id uint) (*models.MenuItem, error)
	Create(item *models.MenuItem) error
	Update(item *models.MenuItem) error
	Delete(id uint) error
}

// GormMenuRepository is the GORM implementation.
type GormMenuRepository struct {
	db *gorm.DB
}

// NewMenuRepository creates a menu repository.
func NewMenuRepository(db *gorm.DB) *GormMenuRepository {
	return &GormMenuRepository{db: db}
}

// List returns menu items, optionally filtered by category. The pseudo
// category "Todos" disables filtering.
func (r *GormMenuRepository) List(category string, onlyAvailable bool) ([]models.MenuItem, error) {
	query := r.db.Model(&models.MenuItem{})
	if onlyAvailable {
		query = query.Where("available = ?", true)
	}
	category = strings.TrimSpace(category)
	if category != "" && category != constants.MenuCategoryAll {
		query = query.Where("category = ?", category)
	}
	var items []models.MenuItem
	if err := query.Order("category asc, name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Categories returns the distinct category names in use.
func (r *GormMenuRepository) Categories() ([]string, error) {
	var categories []string
	err := r.db.Model(&models.MenuItem{}).
		Distinct("category").
		Order("category asc").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// GetByID loads one menu item, nil when absent.
func (r *GormMenuRepository) GetByID(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a menu item.
func (r *GormMenuRepository) Create(item *models.MenuItem) error {
	return r.db.Create(item).Error
}

// Update saves all fields of a menu item.
func (r *GormMenuRepository) Update(item *models.MenuItem) error {
	return r.db.Save(item).Error
}

// Delete soft-deletes a menu item.
func (r *GormMenuRepository) Delete(id uint) error {
	return r.db.Delete(&models.MenuItem{}, id).Error
}
