// Package cart implements the order composition engine: the in-memory
// structure that accumulates menu selections into line items, merges
// duplicates, keeps monetary totals exact and gates ticket submission.
package cart

import (
	"strings"
	"sync"

	"github.com/cantina-pos/internal/constants"
	"github.com/cantina-pos/internal/models"

	"github.com/shopspring/decimal"
)

// ivaRate is the fixed 16% value-added tax applied to every ticket.
var ivaRate = decimal.New(16, -2)

// MenuItemSnapshot is the menu data captured when an item enters the cart.
// Later catalog edits never alter an in-progress cart.
type MenuItemSnapshot struct {
	ID       uint         `json:"id"`
	Name     string       `json:"name"`
	Price    models.Money `json:"price"`
	Category string       `json:"category"`
}

// LineItem is one distinct (menu item, notes) entry with its own quantity.
type LineItem struct {
	MenuItem  MenuItemSnapshot `json:"menu_item"`
	Quantity  int              `json:"quantity"`
	Notes     string           `json:"notes"`
	UnitPrice models.Money     `json:"unit_price"`
	Subtotal  models.Money     `json:"subtotal"`
}

// OrderInfo carries the ticket's delivery metadata. CustomerName is the table
// identifier for local orders and the person's name otherwise.
type OrderInfo struct {
	OrderType       string `json:"order_type"`
	CustomerName    string `json:"customer_name"`
	DeliveryPhone   string `json:"delivery_phone"`
	DeliveryAddress string `json:"delivery_address"`
}

// OrderInfoPatch updates a subset of OrderInfo fields. Nil fields are left
// unchanged; nothing is validated until submission so partially typed form
// state stays representable.
type OrderInfoPatch struct {
	OrderType       *string
	CustomerName    *string
	DeliveryPhone   *string
	DeliveryAddress *string
}

// Totals is the monetary summary of the current cart.
type Totals struct {
	Subtotal models.Money `json:"subtotal"`
	IVA      models.Money `json:"iva"`
	Total    models.Money `json:"total"`
}

// Payload is the order creation contract. Field names are fixed wire format.
type Payload struct {
	CustomerName    string        `json:"customer_name"`
	OrderType       string        `json:"order_type"`
	DeliveryPhone   *string       `json:"delivery_phone"`
	DeliveryAddress *string       `json:"delivery_address"`
	Items           []PayloadItem `json:"items"`
}

// PayloadItem is one submitted line item.
type PayloadItem struct {
	ID       uint    `json:"id"`
	Quantity int     `json:"quantity"`
	Notes    *string `json:"notes"`
}

// Cart owns the ordered line item sequence and order metadata for the ticket
// being built. One instance exists per staff session; all operations are
// safe for concurrent handlers.
type Cart struct {
	mu         sync.Mutex
	items      []LineItem
	info       OrderInfo
	submitting bool
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{
		info: OrderInfo{OrderType: constants.OrderTypeLocal},
	}
}

// AddItem adds a menu selection. A line item with the same menu item id and
// byte-identical notes absorbs the quantity in place; otherwise a new line is
// appended with the price snapshotted from the menu item.
func (c *Cart) AddItem(item MenuItemSnapshot, quantity int, notes string) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if item.Price.IsNegative() {
		return ErrInvalidUnitPrice
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].MenuItem.ID == item.ID && c.items[i].Notes == notes {
			c.items[i].Quantity += quantity
			c.items[i].Subtotal = lineSubtotal(c.items[i].UnitPrice, c.items[i].Quantity)
			return nil
		}
	}

	c.items = append(c.items, LineItem{
		MenuItem:  item,
		Quantity:  quantity,
		Notes:     notes,
		UnitPrice: item.Price,
		Subtotal:  lineSubtotal(item.Price, quantity),
	})
	return nil
}

// UpdateItemQuantity sets the quantity of the line item at index. A quantity
// of zero or less removes the line entirely.
func (c *Cart) UpdateItemQuantity(index, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.items) {
		return ErrIndexOutOfRange
	}
	if quantity <= 0 {
		c.items = append(c.items[:index], c.items[index+1:]...)
		return nil
	}
	c.items[index].Quantity = quantity
	c.items[index].Subtotal = lineSubtotal(c.items[index].UnitPrice, quantity)
	return nil
}

// RemoveItem deletes the line item at index; later items shift down by one.
func (c *Cart) RemoveItem(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.items) {
		return ErrIndexOutOfRange
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
	return nil
}

// UpdateItemNotes replaces the notes on the line item at index. The line is
// never re-merged, even if the new notes collide with another line's key;
// only AddItem merges.
func (c *Cart) UpdateItemNotes(index int, notes string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.items) {
		return ErrIndexOutOfRange
	}
	c.items[index].Notes = notes
	return nil
}

// SetOrderInfo shallow-merges the given fields into the order metadata.
func (c *Cart) SetOrderInfo(patch OrderInfoPatch) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if patch.OrderType != nil {
		c.info.OrderType = *patch.OrderType
	}
	if patch.CustomerName != nil {
		c.info.CustomerName = *patch.CustomerName
	}
	if patch.DeliveryPhone != nil {
		c.info.DeliveryPhone = *patch.DeliveryPhone
	}
	if patch.DeliveryAddress != nil {
		c.info.DeliveryAddress = *patch.DeliveryAddress
	}
}

// Clear resets the cart to its initial empty state.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

func (c *Cart) reset() {
	c.items = nil
	c.info = OrderInfo{OrderType: constants.OrderTypeLocal}
	c.submitting = false
}

// Items returns a copy of the line item sequence in insertion order.
func (c *Cart) Items() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]LineItem, len(c.items))
	copy(items, c.items)
	return items
}

// Info returns the current order metadata.
func (c *Cart) Info() OrderInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.info
}

// Len returns the number of line items.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Totals computes subtotal, IVA and total for the current line items.
// IVA is rounded to 2 decimals after the subtotal sum, never per line.
func (c *Cart) Totals() Totals {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalsLocked()
}

func (c *Cart) totalsLocked() Totals {
	subtotal := decimal.Zero
	for i := range c.items {
		subtotal = subtotal.Add(c.items[i].Subtotal.Decimal)
	}
	iva := subtotal.Mul(ivaRate).Round(2)
	return Totals{
		Subtotal: models.NewMoneyFromDecimal(subtotal),
		IVA:      models.NewMoneyFromDecimal(iva),
		Total:    models.NewMoneyFromDecimal(subtotal.Add(iva)),
	}
}

// ValidateForSubmission checks submission preconditions and, on success,
// builds the normalized payload. Delivery fields are forced to null unless
// the order type is delivery, even when they hold stale text from a prior
// edit. The cart itself is never mutated.
func (c *Cart) ValidateForSubmission() (*Payload, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateLocked()
}

func (c *Cart) validateLocked() (*Payload, error) {
	if len(c.items) == 0 {
		return nil, ErrEmptyCart
	}
	if strings.TrimSpace(c.info.CustomerName) == "" {
		return nil, ErrMissingCustomerName
	}
	if c.info.OrderType == constants.OrderTypeDelivery {
		if strings.TrimSpace(c.info.DeliveryPhone) == "" {
			return nil, ErrMissingDeliveryPhone
		}
		if strings.TrimSpace(c.info.DeliveryAddress) == "" {
			return nil, ErrMissingDeliveryAddress
		}
	}

	payload := &Payload{
		CustomerName: c.info.CustomerName,
		OrderType:    c.info.OrderType,
		Items:        make([]PayloadItem, 0, len(c.items)),
	}
	if c.info.OrderType == constants.OrderTypeDelivery {
		phone := c.info.DeliveryPhone
		address := c.info.DeliveryAddress
		payload.DeliveryPhone = &phone
		payload.DeliveryAddress = &address
	}
	for i := range c.items {
		entry := PayloadItem{
			ID:       c.items[i].MenuItem.ID,
			Quantity: c.items[i].Quantity,
		}
		if c.items[i].Notes != "" {
			notes := c.items[i].Notes
			entry.Notes = &notes
		}
		payload.Items = append(payload.Items, entry)
	}
	return payload, nil
}

// BeginSubmission validates the cart and marks a submission in flight.
// A second call before FinishSubmission fails with ErrSubmissionInFlight.
func (c *Cart) BeginSubmission() (*Payload, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitting {
		return nil, ErrSubmissionInFlight
	}
	payload, err := c.validateLocked()
	if err != nil {
		return nil, err
	}
	c.submitting = true
	return payload, nil
}

// FinishSubmission closes the in-flight submission. On success the cart is
// wiped back to empty; on failure every line item and order field is kept so
// the operator can correct and retry.
func (c *Cart) FinishSubmission(success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if success {
		c.reset()
		return
	}
	c.submitting = false
}

func lineSubtotal(unitPrice models.Money, quantity int) models.Money {
	return models.NewMoneyFromDecimal(unitPrice.Decimal.Mul(decimal.NewFromInt(int64(quantity))))
}
