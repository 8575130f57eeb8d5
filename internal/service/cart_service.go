package service

import (
	"github.com/cantina-pos/internal/cart"
	"github.com/cantina-pos/internal/logger"
	"github.com/cantina-pos/internal/models"
)

// CartView is the full cart state returned to the register UI.
type CartView struct {
	Items  []cart.LineItem `json:"items"`
	Info   cart.OrderInfo  `json:"order_info"`
	Totals cart.Totals     `json:"totals"`
}

// CartService exposes one cart per staff session on top of the composition
// engine, and hands validated submissions to the order service.
type CartService struct {
	store        *cart.Store
	menuService  *MenuService
	orderService *OrderService
}

// NewCartService creates a cart service.
func NewCartService(store *cart.Store, menuService *MenuService, orderService *OrderService) *CartService {
	return &CartService{store: store, menuService: menuService, orderService: orderService}
}

// View returns the current cart state for one user.
func (s *CartService) View(userID uint) CartView {
	c := s.store.Get(userID)
	return CartView{Items: c.Items(), Info: c.Info(), Totals: c.Totals()}
}

// AddItem puts a menu item into the user's cart, snapshotting its price.
func (s *CartService) AddItem(userID, menuItemID uint, quantity int, notes string) (CartView, error) {
	menuItem, err := s.menuService.GetByID(menuItemID)
	if err != nil {
		return s.View(userID), err
	}
	if !menuItem.Available {
		return s.View(userID), ErrMenuItemNotAvailable
	}
	c := s.store.Get(userID)
	err = c.AddItem(cart.MenuItemSnapshot{
		ID:       menuItem.ID,
		Name:     menuItem.Name,
		Price:    menuItem.Price,
		Category: menuItem.Category,
	}, quantity, notes)
	return s.View(userID), err
}

// UpdateQuantity changes one line's quantity; zero or less removes the line.
func (s *CartService) UpdateQuantity(userID uint, index, quantity int) (CartView, error) {
	err := s.store.Get(userID).UpdateItemQuantity(index, quantity)
	return s.View(userID), err
}

// UpdateNotes replaces one line's notes.
func (s *CartService) UpdateNotes(userID uint, index int, notes string) (CartView, error) {
	err := s.store.Get(userID).UpdateItemNotes(index, notes)
	return s.View(userID), err
}

// RemoveItem deletes one line.
func (s *CartService) RemoveItem(userID uint, index int) (CartView, error) {
	err := s.store.Get(userID).RemoveItem(index)
	return s.View(userID), err
}

// SetOrderInfo merges the given fields into the cart's order metadata.
func (s *CartService) SetOrderInfo(userID uint, patch cart.OrderInfoPatch) CartView {
	s.store.Get(userID).SetOrderInfo(patch)
	return s.View(userID)
}

// Clear empties the user's cart and resets its order metadata.
func (s *CartService) Clear(userID uint) CartView {
	s.store.Get(userID).Clear()
	return s.View(userID)
}

// Totals returns the current monetary summary.
func (s *CartService) Totals(userID uint) cart.Totals {
	return s.store.Get(userID).Totals()
}

// Submit validates the cart, creates the ticket and clears the cart on
// success. On failure the cart is left intact so the cashier can fix it and
// retry.
func (s *CartService) Submit(userID uint) (*models.Order, error) {
	c := s.store.Get(userID)
	payload, err := c.BeginSubmission()
	if err != nil {
		return nil, err
	}

	order, err := s.orderService.CreateFromPayload(payload, &userID)
	if err != nil {
		c.FinishSubmission(false)
		logger.Errorw("cart_submit_failed", "user_id", userID, "error", err)
		return nil, err
	}

	c.FinishSubmission(true)
	return order, nil
}
