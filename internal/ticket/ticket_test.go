package ticket

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/cantina-pos/internal/models"
)

func TestGenerateWritesTicketFile(t *testing.T) {
	dir := t.TempDir()
	gen, err := NewGenerator(dir)
	if err != nil {
		t.Fatalf("new generator failed: %v", err)
	}

	notes := "sin cebolla"
	order := &models.Order{
		ID:           1,
		TicketNumber: 7,
		CustomerName: "Cliente General",
		OrderType:    "local",
		Subtotal:     models.NewMoneyFromFloat(150),
		IVA:          models.NewMoneyFromFloat(24),
		Total:        models.NewMoneyFromFloat(174),
		CreatedAt:    time.Now(),
		Items: []models.OrderItem{
			{
				Quantity:  3,
				UnitPrice: models.NewMoneyFromFloat(45),
				Subtotal:  models.NewMoneyFromFloat(135),
				Notes:     &notes,
				MenuItem:  &models.MenuItem{Name: "Tacos al Pastor"},
			},
			{
				Quantity:  1,
				UnitPrice: models.NewMoneyFromFloat(15),
				Subtotal:  models.NewMoneyFromFloat(15),
				MenuItem:  &models.MenuItem{Name: "Agua de Horchata"},
			},
		},
	}

	path, err := gen.Generate(order)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if filepath.Base(path) != "ticket_0007.pdf" {
		t.Fatalf("ticket filename want ticket_0007.pdf got %s", filepath.Base(path))
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat ticket failed: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("ticket file is empty")
	}
}

func TestTruncateRunesKeepsValidUTF8(t *testing.T) {
	// a two-byte rune straddles the 25-byte boundary
	name := strings.Repeat("a", 24) + "ñata"
	got := truncateRunes(name, 25)
	if !utf8.ValidString(got) {
		t.Fatalf("truncation produced invalid UTF-8: %q", got)
	}
	if utf8.RuneCountInString(got) != 25 {
		t.Fatalf("want 25 runes, got %d (%q)", utf8.RuneCountInString(got), got)
	}
	if short := truncateRunes("Flan", 25); short != "Flan" {
		t.Fatalf("short names must pass through, got %q", short)
	}
}

func TestGenerateHandlesLongAccentedNames(t *testing.T) {
	gen, err := NewGenerator(t.TempDir())
	if err != nil {
		t.Fatalf("new generator failed: %v", err)
	}
	order := &models.Order{
		ID:           2,
		TicketNumber: 8,
		CustomerName: "Cliente General",
		OrderType:    "local",
		Subtotal:     models.NewMoneyFromFloat(120),
		IVA:          models.NewMoneyFromFloat(19.20),
		Total:        models.NewMoneyFromFloat(139.20),
		CreatedAt:    time.Now(),
		Items: []models.OrderItem{
			{
				Quantity:  1,
				UnitPrice: models.NewMoneyFromFloat(120),
				Subtotal:  models.NewMoneyFromFloat(120),
				MenuItem:  &models.MenuItem{Name: "Enchiladas Suizas Tradición Jalisciense"},
			},
		},
	}
	path, err := gen.Generate(order)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("ticket not written: %v", err)
	}
}
