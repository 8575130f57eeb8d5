package cart

import (
	"errors"
	"testing"

	"github.com/cantina-pos/internal/constants"
	"github.com/cantina-pos/internal/models"
)

func menuItem(id uint, name string, price float64) MenuItemSnapshot {
	return MenuItemSnapshot{
		ID:       id,
		Name:     name,
		Price:    models.NewMoneyFromFloat(price),
		Category: "Platos",
	}
}

func TestAddItemMergesSameItemAndNotes(t *testing.T) {
	c := New()
	tacos := menuItem(1, "Tacos al pastor", 50)

	if err := c.AddItem(tacos, 2, "sin cebolla"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := c.AddItem(tacos, 3, "sin cebolla"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 merged line item, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", items[0].Quantity)
	}
	if items[0].Subtotal.String() != "250.00" {
		t.Fatalf("expected subtotal 250.00, got %s", items[0].Subtotal)
	}
}

func TestAddItemDifferentNotesStayDistinct(t *testing.T) {
	c := New()
	tacos := menuItem(1, "Tacos al pastor", 50)

	if err := c.AddItem(tacos, 2, "sin cebolla"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := c.AddItem(tacos, 1, ""); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	items := c.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(items))
	}
	if items[0].Notes != "sin cebolla" || items[0].Quantity != 2 {
		t.Fatalf("unexpected first line: %+v", items[0])
	}
	if items[1].Notes != "" || items[1].Quantity != 1 {
		t.Fatalf("unexpected second line: %+v", items[1])
	}
	if items[0].Subtotal.String() != "100.00" || items[1].Subtotal.String() != "50.00" {
		t.Fatalf("unexpected subtotals: %s / %s", items[0].Subtotal, items[1].Subtotal)
	}
}

func TestAddItemMergePreservesPosition(t *testing.T) {
	c := New()
	if err := c.AddItem(menuItem(1, "Tacos", 50), 1, ""); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := c.AddItem(menuItem(2, "Quesadilla", 35), 1, ""); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := c.AddItem(menuItem(1, "Tacos", 50), 2, ""); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	items := c.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(items))
	}
	if items[0].MenuItem.ID != 1 || items[0].Quantity != 3 {
		t.Fatalf("merged line must keep its position: %+v", items[0])
	}
}

func TestAddItemRejectsBadInput(t *testing.T) {
	c := New()
	if err := c.AddItem(menuItem(1, "Tacos", 50), 0, ""); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if err := c.AddItem(menuItem(1, "Tacos", -1), 1, ""); !errors.Is(err, ErrInvalidUnitPrice) {
		t.Fatalf("expected ErrInvalidUnitPrice, got %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("rejected adds must not mutate the cart, len=%d", c.Len())
	}
}

func TestUpdateItemQuantityRecomputesSubtotal(t *testing.T) {
	c := New()
	if err := c.AddItem(menuItem(1, "Tacos", 50), 1, ""); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := c.UpdateItemQuantity(0, 4); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	items := c.Items()
	if items[0].Quantity != 4 || items[0].Subtotal.String() != "200.00" {
		t.Fatalf("unexpected line after update: %+v", items[0])
	}
}

func TestUpdateItemQuantityZeroRemovesLine(t *testing.T) {
	c := New()
	_ = c.AddItem(menuItem(1, "Tacos", 50), 1, "")
	_ = c.AddItem(menuItem(2, "Quesadilla", 35), 1, "")
	_ = c.AddItem(menuItem(3, "Pozole", 80), 1, "")

	if err := c.UpdateItemQuantity(1, 0); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	items := c.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(items))
	}
	if items[0].MenuItem.ID != 1 || items[1].MenuItem.ID != 3 {
		t.Fatalf("later items must shift down by one: %+v", items)
	}
}

func TestIndexOutOfRangeIsRejectedWithoutCorruption(t *testing.T) {
	c := New()
	_ = c.AddItem(menuItem(1, "Tacos", 50), 1, "")

	if err := c.UpdateItemQuantity(5, 2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if err := c.RemoveItem(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if err := c.UpdateItemNotes(1, "x"); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("sequence must stay intact, len=%d", c.Len())
	}
}

func TestRemoveAllItemsYieldsEmptyCart(t *testing.T) {
	c := New()
	_ = c.AddItem(menuItem(1, "Tacos", 50), 1, "")
	if err := c.RemoveItem(0); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty cart, len=%d", c.Len())
	}
}

func TestUpdateItemNotesNeverRemerges(t *testing.T) {
	c := New()
	_ = c.AddItem(menuItem(1, "Tacos", 50), 2, "sin cebolla")
	_ = c.AddItem(menuItem(1, "Tacos", 50), 1, "")

	// Editing notes into a colliding key keeps both lines.
	if err := c.UpdateItemNotes(1, "sin cebolla"); err != nil {
		t.Fatalf("update notes failed: %v", err)
	}
	items := c.Items()
	if len(items) != 2 {
		t.Fatalf("notes edit must not merge lines, got %d", len(items))
	}
	if items[1].Notes != "sin cebolla" {
		t.Fatalf("notes not updated: %+v", items[1])
	}
}

func TestTotalsWithMergedAndSeparateLines(t *testing.T) {
	c := New()
	itemA := menuItem(7, "Enchiladas", 50)
	_ = c.AddItem(itemA, 2, "sin cebolla")
	_ = c.AddItem(itemA, 1, "")

	totals := c.Totals()
	if totals.Subtotal.String() != "150.00" {
		t.Fatalf("expected subtotal 150.00, got %s", totals.Subtotal)
	}
	if totals.IVA.String() != "24.00" {
		t.Fatalf("expected IVA 24.00, got %s", totals.IVA)
	}
	if totals.Total.String() != "174.00" {
		t.Fatalf("expected total 174.00, got %s", totals.Total)
	}
}

func TestTotalsInvariantsAcrossEdits(t *testing.T) {
	c := New()
	_ = c.AddItem(menuItem(1, "Agua fresca", 19.99), 3, "")
	_ = c.AddItem(menuItem(2, "Pozole", 80.50), 1, "")
	for q := 1; q <= 7; q++ {
		if err := c.UpdateItemQuantity(0, q); err != nil {
			t.Fatalf("update failed: %v", err)
		}
		totals := c.Totals()
		sum := totals.Subtotal.Add(totals.IVA.Decimal)
		if !totals.Total.Decimal.Equal(sum) {
			t.Fatalf("total != subtotal+iva at q=%d: %s != %s", q, totals.Total, sum)
		}
		expectedIVA := totals.Subtotal.Mul(ivaRate).Round(2)
		if !totals.IVA.Decimal.Equal(expectedIVA) {
			t.Fatalf("iva != round(subtotal*0.16) at q=%d: %s != %s", q, totals.IVA, expectedIVA)
		}
		// Every amount must be an exact multiple of one centavo.
		if totals.Total.Exponent() < -2 || totals.Subtotal.Exponent() < -2 {
			t.Fatalf("amounts must not carry sub-centavo precision: %+v", totals)
		}
	}
}

func TestTotalsEmptyCart(t *testing.T) {
	totals := New().Totals()
	if totals.Subtotal.String() != "0.00" || totals.IVA.String() != "0.00" || totals.Total.String() != "0.00" {
		t.Fatalf("empty cart totals must be zero: %+v", totals)
	}
}

func TestClearResetsEverything(t *testing.T) {
	c := New()
	_ = c.AddItem(menuItem(1, "Tacos", 50), 2, "")
	delivery := constants.OrderTypeDelivery
	name := "Juan"
	phone := "33 1234 5678"
	address := "Av. Vallarta 123"
	c.SetOrderInfo(OrderInfoPatch{
		OrderType:       &delivery,
		CustomerName:    &name,
		DeliveryPhone:   &phone,
		DeliveryAddress: &address,
	})

	c.Clear()

	if c.Len() != 0 {
		t.Fatalf("expected empty cart after clear")
	}
	info := c.Info()
	if info.OrderType != constants.OrderTypeLocal {
		t.Fatalf("order type must reset to local, got %s", info.OrderType)
	}
	if info.CustomerName != "" || info.DeliveryPhone != "" || info.DeliveryAddress != "" {
		t.Fatalf("order info must reset to blank: %+v", info)
	}
}

func TestSetOrderInfoPartialMerge(t *testing.T) {
	c := New()
	name := "Mesa 5"
	c.SetOrderInfo(OrderInfoPatch{CustomerName: &name})

	info := c.Info()
	if info.CustomerName != "Mesa 5" {
		t.Fatalf("customer name not merged: %+v", info)
	}
	if info.OrderType != constants.OrderTypeLocal {
		t.Fatalf("untouched fields must keep their value: %+v", info)
	}
}

func TestValidateEmptyCart(t *testing.T) {
	c := New()
	name := "Mesa 5"
	c.SetOrderInfo(OrderInfoPatch{CustomerName: &name})

	if _, err := c.ValidateForSubmission(); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestValidateMissingCustomerName(t *testing.T) {
	c := New()
	_ = c.AddItem(menuItem(1, "Tacos", 50), 1, "")
	blank := "   "
	c.SetOrderInfo(OrderInfoPatch{CustomerName: &blank})

	if _, err := c.ValidateForSubmission(); !errors.Is(err, ErrMissingCustomerName) {
		t.Fatalf("expected ErrMissingCustomerName, got %v", err)
	}
}

func TestValidateDeliveryFields(t *testing.T) {
	c := New()
	_ = c.AddItem(menuItem(1, "Tacos", 50), 1, "")
	delivery := constants.OrderTypeDelivery
	name := "Juan"
	phone := "33 1234 5678"
	c.SetOrderInfo(OrderInfoPatch{OrderType: &delivery, CustomerName: &name})

	if _, err := c.ValidateForSubmission(); !errors.Is(err, ErrMissingDeliveryPhone) {
		t.Fatalf("expected ErrMissingDeliveryPhone, got %v", err)
	}

	c.SetOrderInfo(OrderInfoPatch{DeliveryPhone: &phone})
	if _, err := c.ValidateForSubmission(); !errors.Is(err, ErrMissingDeliveryAddress) {
		t.Fatalf("expected ErrMissingDeliveryAddress even with phone set, got %v", err)
	}
}

func TestValidationErrorsIdentifyField(t *testing.T) {
	var ve *ValidationError
	if !errors.As(error(ErrMissingDeliveryAddress), &ve) {
		t.Fatal("validation errors must expose their field")
	}
	if ve.Field != "delivery_address" {
		t.Fatalf("unexpected field: %s", ve.Field)
	}
}

func TestPayloadNullsDeliveryFieldsForLocalOrders(t *testing.T) {
	c := New()
	_ = c.AddItem(menuItem(1, "Tacos", 50), 1, "")

	// Stale delivery text from a previous delivery-mode edit.
	delivery := constants.OrderTypeDelivery
	phone := "33 1234 5678"
	address := "Av. Vallarta 123"
	c.SetOrderInfo(OrderInfoPatch{OrderType: &delivery, DeliveryPhone: &phone, DeliveryAddress: &address})

	local := constants.OrderTypeLocal
	name := "Mesa 5"
	c.SetOrderInfo(OrderInfoPatch{OrderType: &local, CustomerName: &name})

	payload, err := c.ValidateForSubmission()
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if payload.DeliveryPhone != nil || payload.DeliveryAddress != nil {
		t.Fatalf("delivery fields must be nulled for non-delivery orders: %+v", payload)
	}
	if payload.CustomerName != "Mesa 5" || payload.OrderType != constants.OrderTypeLocal {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestPayloadKeepsInsertionOrderAndNotes(t *testing.T) {
	c := New()
	_ = c.AddItem(menuItem(3, "Pozole", 80), 1, "extra oregano")
	_ = c.AddItem(menuItem(1, "Tacos", 50), 2, "")
	name := "Mesa 2"
	c.SetOrderInfo(OrderInfoPatch{CustomerName: &name})

	payload, err := c.ValidateForSubmission()
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if len(payload.Items) != 2 {
		t.Fatalf("expected 2 payload items, got %d", len(payload.Items))
	}
	if payload.Items[0].ID != 3 || payload.Items[1].ID != 1 {
		t.Fatalf("payload must keep insertion order: %+v", payload.Items)
	}
	if payload.Items[0].Notes == nil || *payload.Items[0].Notes != "extra oregano" {
		t.Fatalf("notes lost: %+v", payload.Items[0])
	}
	if payload.Items[1].Notes != nil {
		t.Fatalf("empty notes must be null on the wire: %+v", payload.Items[1])
	}
}

func TestValidationNeverMutatesCart(t *testing.T) {
	c := New()
	_ = c.AddItem(menuItem(1, "Tacos", 50), 2, "sin cebolla")

	_, _ = c.ValidateForSubmission()
	items := c.Items()
	if len(items) != 1 || items[0].Quantity != 2 || items[0].Notes != "sin cebolla" {
		t.Fatalf("validation mutated the cart: %+v", items)
	}
}

func TestSubmissionLifecycle(t *testing.T) {
	c := New()
	_ = c.AddItem(menuItem(1, "Tacos", 50), 2, "")
	name := "Mesa 5"
	c.SetOrderInfo(OrderInfoPatch{CustomerName: &name})

	payload, err := c.BeginSubmission()
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if payload == nil || len(payload.Items) != 1 {
		t.Fatalf("unexpected payload: %+v", payload)
	}

	// A second submission attempt while one is in flight is blocked.
	if _, err := c.BeginSubmission(); !errors.Is(err, ErrSubmissionInFlight) {
		t.Fatalf("expected ErrSubmissionInFlight, got %v", err)
	}

	// Failure preserves the cart exactly as it was, and unblocks retries.
	c.FinishSubmission(false)
	if c.Len() != 1 || c.Info().CustomerName != "Mesa 5" {
		t.Fatalf("failed submission must preserve cart state")
	}
	if _, err := c.BeginSubmission(); err != nil {
		t.Fatalf("retry after failure must be allowed: %v", err)
	}

	// Success clears everything.
	c.FinishSubmission(true)
	if c.Len() != 0 || c.Info().CustomerName != "" {
		t.Fatalf("successful submission must clear the cart")
	}
}

func TestStoreOneCartPerUser(t *testing.T) {
	store := NewStore()
	a := store.Get(1)
	b := store.Get(2)
	if a == b {
		t.Fatal("different users must not share a cart")
	}
	if store.Get(1) != a {
		t.Fatal("same user must keep the same cart")
	}

	_ = a.AddItem(menuItem(1, "Tacos", 50), 1, "")
	store.Drop(1)
	if store.Get(1).Len() != 0 {
		t.Fatal("dropped session must start with a fresh cart")
	}
}
