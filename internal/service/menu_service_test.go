package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cantina-pos/internal/models"
	"github.com/cantina-pos/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupMenuServiceTest(t *testing.T) (*MenuService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.MenuItem{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewMenuService(repository.NewMenuRepository(db), 60), db
}

func TestMenuServiceCreatePersistsUnavailable(t *testing.T) {
	svc, _ := setupMenuServiceTest(t)
	ctx := context.Background()

	unavailable := false
	created, err := svc.Create(ctx, MenuItemInput{
		Name:      "Chiles en Nogada",
		Price:     models.NewMoneyFromFloat(180),
		Category:  "Platos Fuertes",
		Available: &unavailable,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stored, err := svc.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Available {
		t.Fatal("item created unavailable but stored as available")
	}

	// the staff menu hides it, the admin listing shows it
	listed, err := svc.List(ctx, "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, item := range listed {
		if item.ID == created.ID {
			t.Fatal("unavailable item leaked into the staff menu")
		}
	}
	all, err := svc.ListAll("")
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	found := false
	for _, item := range all {
		if item.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("unavailable item missing from the admin listing")
	}
}

func TestMenuServiceUpdateTogglesAvailability(t *testing.T) {
	svc, _ := setupMenuServiceTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, MenuItemInput{
		Name:     "Pozole Rojo",
		Price:    models.NewMoneyFromFloat(95),
		Category: "Platos Fuertes",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !created.Available {
		t.Fatal("items default to available")
	}

	off := false
	if _, err := svc.Update(ctx, created.ID, MenuItemUpdateInput{Available: &off}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	stored, err := svc.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Available {
		t.Fatal("availability toggle did not persist")
	}

	on := true
	if _, err := svc.Update(ctx, created.ID, MenuItemUpdateInput{Available: &on}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	stored, err = svc.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !stored.Available {
		t.Fatal("availability re-enable did not persist")
	}
}
