package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cantina-pos/internal/cart"
	"github.com/cantina-pos/internal/constants"
	"github.com/cantina-pos/internal/models"
	"github.com/cantina-pos/internal/queue"
	"github.com/cantina-pos/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.MenuItem{}, &models.Order{}, &models.OrderItem{}, &models.DailySales{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	menuRepo := repository.NewMenuRepository(db)
	orderSvc := NewOrderService(
		repository.NewOrderRepository(db),
		menuRepo,
		repository.NewReportRepository(db),
		queueClient,
		0,
	)
	menuSvc := NewMenuService(menuRepo, 60)
	return NewCartService(cart.NewStore(), menuSvc, orderSvc), db
}

func TestCartServiceAddAndView(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	item := seedMenuItem(t, db, "Tacos al Pastor", 45.00, true)

	view, err := svc.AddItem(1, item.ID, 2, "sin cebolla")
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("items want 1 got %d", len(view.Items))
	}
	if got := view.Totals.Subtotal.String(); got != "90.00" {
		t.Fatalf("subtotal want 90.00 got %s", got)
	}

	// another user's cart stays empty
	other := svc.View(2)
	if len(other.Items) != 0 {
		t.Fatalf("user 2 cart should be empty, got %d items", len(other.Items))
	}
}

func TestCartServiceRejectsUnavailableItem(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	item := seedMenuItem(t, db, "Chiles en Nogada", 120.00, false)

	if _, err := svc.AddItem(1, item.ID, 1, ""); !errors.Is(err, ErrMenuItemNotAvailable) {
		t.Fatalf("want ErrMenuItemNotAvailable got %v", err)
	}
	if _, err := svc.AddItem(1, 9999, 1, ""); !errors.Is(err, ErrMenuItemNotFound) {
		t.Fatalf("want ErrMenuItemNotFound got %v", err)
	}
}

func TestCartServiceSubmitClearsCartOnSuccess(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	item := seedMenuItem(t, db, "Quesadillas", 55.00, true)

	if _, err := svc.AddItem(1, item.ID, 2, ""); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	svc.SetOrderInfo(1, cart.OrderInfoPatch{CustomerName: strPtr("Mesa 4")})

	order, err := svc.Submit(1)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if order.TicketNumber != 1 {
		t.Fatalf("ticket number want 1 got %d", order.TicketNumber)
	}
	if got := order.Total.String(); got != "127.60" {
		t.Fatalf("total want 127.60 got %s", got)
	}

	view := svc.View(1)
	if len(view.Items) != 0 {
		t.Fatalf("cart should be empty after submit, got %d items", len(view.Items))
	}
	if view.Info.CustomerName != "" || view.Info.OrderType != constants.OrderTypeLocal {
		t.Fatalf("order info should reset after submit: %+v", view.Info)
	}
}

func TestCartServiceSubmitPreservesCartOnFailure(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	item := seedMenuItem(t, db, "Pozole Rojo", 95.00, true)

	if _, err := svc.AddItem(1, item.ID, 1, ""); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	svc.SetOrderInfo(1, cart.OrderInfoPatch{CustomerName: strPtr("Mesa 2")})

	// the item goes off menu between add and submit
	if err := db.Model(&models.MenuItem{}).Where("id = ?", item.ID).Update("available", false).Error; err != nil {
		t.Fatalf("update menu item failed: %v", err)
	}

	if _, err := svc.Submit(1); !errors.Is(err, ErrMenuItemNotAvailable) {
		t.Fatalf("want ErrMenuItemNotAvailable got %v", err)
	}

	view := svc.View(1)
	if len(view.Items) != 1 {
		t.Fatalf("cart must survive a failed submit, got %d items", len(view.Items))
	}

	// and the operator can fix it and retry
	if err := db.Model(&models.MenuItem{}).Where("id = ?", item.ID).Update("available", true).Error; err != nil {
		t.Fatalf("update menu item failed: %v", err)
	}
	if _, err := svc.Submit(1); err != nil {
		t.Fatalf("retry submit failed: %v", err)
	}
	if got := len(svc.View(1).Items); got != 0 {
		t.Fatalf("cart should clear after successful retry, got %d items", got)
	}
}

func TestCartServiceSubmitValidationErrors(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	item := seedMenuItem(t, db, "Guacamole", 45.00, true)

	if _, err := svc.Submit(1); !errors.Is(err, cart.ErrEmptyCart) {
		t.Fatalf("empty cart submit want ErrEmptyCart got %v", err)
	}

	if _, err := svc.AddItem(1, item.ID, 1, ""); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	svc.SetOrderInfo(1, cart.OrderInfoPatch{
		CustomerName: strPtr("Juan"),
		OrderType:    strPtr(constants.OrderTypeDelivery),
	})
	if _, err := svc.Submit(1); !errors.Is(err, cart.ErrMissingDeliveryPhone) {
		t.Fatalf("want ErrMissingDeliveryPhone got %v", err)
	}
}
