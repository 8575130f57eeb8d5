package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cantina-pos/internal/cache"
	"github.com/cantina-pos/internal/logger"
	"github.com/cantina-pos/internal/models"
	"github.com/cantina-pos/internal/repository"
)

// MenuItemInput describes a menu item create request.
type MenuItemInput struct {
	Name        string
	Price       models.Money
	Category    string
	Description string
	Available   *bool
	ImageURL    string
}

// MenuItemUpdateInput carries a partial menu item update. Nil fields keep
// their current value.
type MenuItemUpdateInput struct {
	Name        *string
	Price       *models.Money
	Category    *string
	Description *string
	Available   *bool
	ImageURL    *string
}

// MenuService serves the menu catalog. Reads go through the redis cache;
// any write invalidates it.
type MenuService struct {
	menuRepo repository.MenuRepository
	cacheTTL time.Duration
}

// NewMenuService creates a menu service.
func NewMenuService(menuRepo repository.MenuRepository, cacheTTLSeconds int) *MenuService {
	ttl := time.Duration(cacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &MenuService{menuRepo: menuRepo, cacheTTL: ttl}
}

// List returns available menu items, optionally filtered by category.
func (s *MenuService) List(ctx context.Context, category string) ([]models.MenuItem, error) {
	key := fmt.Sprintf("menu:list:%s", strings.TrimSpace(category))
	var cached []models.MenuItem
	if hit, err := cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	items, err := s.menuRepo.List(category, true)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, key, items, s.cacheTTL); err != nil {
		logger.Warnw("menu_cache_set_failed", "error", err)
	}
	return items, nil
}

// ListAll returns every menu item including unavailable ones, for admin use.
func (s *MenuService) ListAll(category string) ([]models.MenuItem, error) {
	return s.menuRepo.List(category, false)
}

// Categories returns the category names in use.
func (s *MenuService) Categories(ctx context.Context) ([]string, error) {
	const key = "menu:categories"
	var cached []string
	if hit, err := cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	categories, err := s.menuRepo.Categories()
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, key, categories, s.cacheTTL); err != nil {
		logger.Warnw("menu_cache_set_failed", "error", err)
	}
	return categories, nil
}

// GetByID loads one menu item.
func (s *MenuService) GetByID(id uint) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}
	return item, nil
}

// Create adds a menu item.
func (s *MenuService) Create(ctx context.Context, input MenuItemInput) (*models.MenuItem, error) {
	name := strings.TrimSpace(input.Name)
	category := strings.TrimSpace(input.Category)
	if name == "" || category == "" || input.Price.IsNegative() {
		return nil, ErrInvalidMenuItem
	}
	available := true
	if input.Available != nil {
		available = *input.Available
	}
	item := &models.MenuItem{
		Name:        name,
		Price:       input.Price,
		Category:    category,
		Description: strings.TrimSpace(input.Description),
		Available:   available,
		ImageURL:    strings.TrimSpace(input.ImageURL),
	}
	if err := s.menuRepo.Create(item); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return item, nil
}

// Update applies a partial update to a menu item.
func (s *MenuService) Update(ctx context.Context, id uint, input MenuItemUpdateInput) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrInvalidMenuItem
		}
		item.Name = name
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, ErrInvalidMenuItem
		}
		item.Price = *input.Price
	}
	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			return nil, ErrInvalidMenuItem
		}
		item.Category = category
	}
	if input.Description != nil {
		item.Description = strings.TrimSpace(*input.Description)
	}
	if input.Available != nil {
		item.Available = *input.Available
	}
	if input.ImageURL != nil {
		item.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if err := s.menuRepo.Update(item); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return item, nil
}

// Delete removes a menu item.
func (s *MenuService) Delete(ctx context.Context, id uint) error {
	item, err := s.menuRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrMenuItemNotFound
	}
	if err := s.menuRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *MenuService) invalidateCache(ctx context.Context) {
	if err := cache.DelPattern(ctx, "menu:*"); err != nil {
		logger.Warnw("menu_cache_invalidate_failed", "error", err)
	}
}
