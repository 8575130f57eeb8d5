package service

import (
	"strings"
	"time"

	"github.com/cantina-pos/internal/cart"
	"github.com/cantina-pos/internal/constants"
	"github.com/cantina-pos/internal/logger"
	"github.com/cantina-pos/internal/models"
	"github.com/cantina-pos/internal/queue"
	"github.com/cantina-pos/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ivaRate is the fixed 16% value-added tax.
var ivaRate = decimal.New(16, -2)

// OrderService turns submitted carts into tickets and manages their
// lifecycle: open while the table keeps ordering, then completed with a
// payment method or cancelled.
type OrderService struct {
	orderRepo        repository.OrderRepository
	menuRepo         repository.MenuRepository
	reportRepo       repository.ReportRepository
	queueClient      *queue.Client
	staleTicketAfter time.Duration
}

// NewOrderService creates an order service. staleTicketMinutes of zero
// disables delayed auto-cancel of unattended tickets.
func NewOrderService(
	orderRepo repository.OrderRepository,
	menuRepo repository.MenuRepository,
	reportRepo repository.ReportRepository,
	queueClient *queue.Client,
	staleTicketMinutes int,
) *OrderService {
	return &OrderService{
		orderRepo:        orderRepo,
		menuRepo:         menuRepo,
		reportRepo:       reportRepo,
		queueClient:      queueClient,
		staleTicketAfter: time.Duration(staleTicketMinutes) * time.Minute,
	}
}

// CreateFromPayload creates an open ticket from a submitted cart payload.
// Every amount is recomputed server side from the current menu prices; the
// payload's quantities and notes are trusted, its money never is.
func (s *OrderService) CreateFromPayload(payload *cart.Payload, createdBy *uint) (*models.Order, error) {
	if payload == nil || len(payload.Items) == 0 {
		return nil, ErrInvalidOrderItem
	}
	if !validOrderType(payload.OrderType) {
		return nil, ErrInvalidOrderType
	}

	customerName := strings.TrimSpace(payload.CustomerName)
	if customerName == "" {
		customerName = constants.DefaultCustomerName
	}

	var deliveryPhone, deliveryAddress *string
	if payload.OrderType == constants.OrderTypeDelivery {
		phone := trimPtr(payload.DeliveryPhone)
		address := trimPtr(payload.DeliveryAddress)
		if phone == nil || address == nil {
			return nil, ErrDeliveryInfoRequired
		}
		deliveryPhone, deliveryAddress = phone, address
	}

	items := make([]models.OrderItem, 0, len(payload.Items))
	subtotal := decimal.Zero
	for _, line := range payload.Items {
		if line.Quantity <= 0 {
			return nil, ErrInvalidOrderItem
		}
		menuItem, err := s.menuRepo.GetByID(line.ID)
		if err != nil {
			return nil, err
		}
		if menuItem == nil {
			return nil, ErrMenuItemNotFound
		}
		if !menuItem.Available {
			return nil, ErrMenuItemNotAvailable
		}
		lineSubtotal := menuItem.Price.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
		subtotal = subtotal.Add(lineSubtotal)
		items = append(items, models.OrderItem{
			MenuItemID: menuItem.ID,
			Quantity:   line.Quantity,
			UnitPrice:  menuItem.Price,
			Subtotal:   models.NewMoneyFromDecimal(lineSubtotal),
			Notes:      trimPtr(line.Notes),
		})
	}

	iva := subtotal.Mul(ivaRate).Round(2)
	order := &models.Order{
		CustomerName:    customerName,
		OrderType:       payload.OrderType,
		DeliveryPhone:   deliveryPhone,
		DeliveryAddress: deliveryAddress,
		Subtotal:        models.NewMoneyFromDecimal(subtotal),
		IVA:             models.NewMoneyFromDecimal(iva),
		Total:           models.NewMoneyFromDecimal(subtotal.Add(iva)),
		Status:          constants.OrderStatusOpen,
		CreatedByUserID: createdBy,
		Items:           items,
	}

	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.orderRepo.WithTx(tx)
		ticketNumber, err := repo.NextTicketNumber()
		if err != nil {
			return err
		}
		order.TicketNumber = ticketNumber
		return repo.Create(order)
	})
	if err != nil {
		logger.Errorw("order_create_failed", "error", err)
		return nil, ErrOrderCreateFailed
	}

	if s.staleTicketAfter > 0 {
		if err := s.queueClient.EnqueueStaleOrderCancel(queue.StaleOrderCancelPayload{OrderID: order.ID}, s.staleTicketAfter); err != nil {
			logger.Warnw("stale_cancel_enqueue_failed", "order_id", order.ID, "error", err)
		}
	}

	logger.Infow("order_created", "order_id", order.ID, "ticket_number", order.TicketNumber, "total", order.Total.String())
	return order, nil
}

// Get loads one order with its lines.
func (s *OrderService) Get(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// List returns orders, optionally narrowed to one day and one status.
func (s *OrderService) List(filter repository.OrderFilter) ([]models.Order, error) {
	return s.orderRepo.List(filter)
}

// ListOpen returns open tickets oldest first.
func (s *OrderService) ListOpen() ([]models.Order, error) {
	return s.orderRepo.ListOpen()
}

// AddItems appends lines to an open ticket and recomputes its totals.
func (s *OrderService) AddItems(orderID uint, lines []cart.PayloadItem) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, ErrInvalidOrderItem
	}
	order, err := s.openOrder(orderID)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, ErrInvalidOrderItem
		}
		menuItem, err := s.menuRepo.GetByID(line.ID)
		if err != nil {
			return nil, err
		}
		if menuItem == nil {
			return nil, ErrMenuItemNotFound
		}
		if !menuItem.Available {
			return nil, ErrMenuItemNotAvailable
		}
		lineSubtotal := menuItem.Price.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
		item := &models.OrderItem{
			OrderID:    order.ID,
			MenuItemID: menuItem.ID,
			Quantity:   line.Quantity,
			UnitPrice:  menuItem.Price,
			Subtotal:   models.NewMoneyFromDecimal(lineSubtotal),
			Notes:      trimPtr(line.Notes),
		}
		if err := s.orderRepo.AddItem(item); err != nil {
			return nil, err
		}
	}
	return s.recomputeTotals(orderID)
}

// UpdateItem changes the quantity of one line on an open ticket. A quantity
// of zero or less removes the line.
func (s *OrderService) UpdateItem(orderID, itemID uint, quantity int) (*models.Order, error) {
	if _, err := s.openOrder(orderID); err != nil {
		return nil, err
	}
	item, err := s.orderRepo.GetItem(orderID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrInvalidOrderItem
	}
	if quantity <= 0 {
		if err := s.orderRepo.DeleteItem(orderID, itemID); err != nil {
			return nil, err
		}
	} else {
		item.Quantity = quantity
		item.Subtotal = models.NewMoneyFromDecimal(item.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(quantity))))
		if err := s.orderRepo.SaveItem(item); err != nil {
			return nil, err
		}
	}
	return s.recomputeTotals(orderID)
}

// RemoveItem removes one line from an open ticket.
func (s *OrderService) RemoveItem(orderID, itemID uint) (*models.Order, error) {
	if _, err := s.openOrder(orderID); err != nil {
		return nil, err
	}
	item, err := s.orderRepo.GetItem(orderID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrInvalidOrderItem
	}
	if err := s.orderRepo.DeleteItem(orderID, itemID); err != nil {
		return nil, err
	}
	return s.recomputeTotals(orderID)
}

// Complete closes an open ticket with a payment method, rolls its amounts
// into the daily sales figures and queues the printable ticket.
func (s *OrderService) Complete(orderID uint, paymentMethod string) (*models.Order, error) {
	if !validPaymentMethod(paymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}
	order, err := s.openOrder(orderID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order.Status = constants.OrderStatusCompleted
	order.PaymentMethod = paymentMethod
	order.CompletedAt = &now
	if err := s.orderRepo.Save(order); err != nil {
		return nil, err
	}

	err = s.reportRepo.UpsertDailySales(func(row *models.DailySales) {
		row.TotalOrders++
		row.TotalSales = models.NewMoneyFromDecimal(row.TotalSales.Decimal.Add(order.Total.Decimal))
		row.TotalIVA = models.NewMoneyFromDecimal(row.TotalIVA.Decimal.Add(order.IVA.Decimal))
		switch paymentMethod {
		case constants.PaymentMethodCash:
			row.CashSales = models.NewMoneyFromDecimal(row.CashSales.Decimal.Add(order.Total.Decimal))
		case constants.PaymentMethodCard:
			row.CardSales = models.NewMoneyFromDecimal(row.CardSales.Decimal.Add(order.Total.Decimal))
		}
	})
	if err != nil {
		logger.Errorw("daily_sales_rollup_failed", "order_id", order.ID, "error", err)
	}

	if err := s.queueClient.EnqueueTicketRender(queue.TicketRenderPayload{OrderID: order.ID}); err != nil {
		logger.Warnw("ticket_render_enqueue_failed", "order_id", order.ID, "error", err)
	}

	logger.Infow("order_completed", "order_id", order.ID, "ticket_number", order.TicketNumber, "payment_method", paymentMethod)
	return order, nil
}

// Cancel closes an open ticket without payment.
func (s *OrderService) Cancel(orderID uint) (*models.Order, error) {
	order, err := s.openOrder(orderID)
	if err != nil {
		return nil, err
	}
	order.Status = constants.OrderStatusCancelled
	if err := s.orderRepo.Save(order); err != nil {
		return nil, err
	}
	logger.Infow("order_cancelled", "order_id", order.ID, "ticket_number", order.TicketNumber)
	return order, nil
}

// CancelIfStale cancels an order only when it is still open. The worker calls
// this for tickets left unattended past the configured window.
func (s *OrderService) CancelIfStale(orderID uint) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil || order.Status != constants.OrderStatusOpen {
		return nil
	}
	order.Status = constants.OrderStatusCancelled
	if err := s.orderRepo.Save(order); err != nil {
		return err
	}
	logger.Infow("stale_order_cancelled", "order_id", order.ID, "ticket_number", order.TicketNumber)
	return nil
}

// MarkPrinted records that the ticket file was rendered.
func (s *OrderService) MarkPrinted(orderID uint) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	order.Printed = true
	return s.orderRepo.Save(order)
}

func (s *OrderService) openOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusOpen {
		return nil, ErrOrderNotOpen
	}
	return order, nil
}

func (s *OrderService) recomputeTotals(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	subtotal := decimal.Zero
	for _, item := range order.Items {
		subtotal = subtotal.Add(item.Subtotal.Decimal)
	}
	iva := subtotal.Mul(ivaRate).Round(2)
	order.Subtotal = models.NewMoneyFromDecimal(subtotal)
	order.IVA = models.NewMoneyFromDecimal(iva)
	order.Total = models.NewMoneyFromDecimal(subtotal.Add(iva))
	if err := s.orderRepo.Save(order); err != nil {
		return nil, err
	}
	return order, nil
}

func validOrderType(orderType string) bool {
	switch orderType {
	case constants.OrderTypeLocal, constants.OrderTypeTakeout, constants.OrderTypeDelivery:
		return true
	}
	return false
}

func validPaymentMethod(method string) bool {
	switch method {
	case constants.PaymentMethodCash, constants.PaymentMethodCard, constants.PaymentMethodTransfer:
		return true
	}
	return false
}

// trimPtr trims the pointed string and maps empty to nil.
func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
