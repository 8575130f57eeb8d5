package staff

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cantina-pos/internal/cart"
	handlershared "github.com/cantina-pos/internal/http/handlers/shared"
	"github.com/cantina-pos/internal/http/response"
	"github.com/cantina-pos/internal/repository"

	"github.com/gin-gonic/gin"
)

// OrderItemRequest is one line appended to an open ticket.
type OrderItemRequest struct {
	MenuItemID uint    `json:"id" binding:"required"`
	Quantity   int     `json:"quantity" binding:"required"`
	Notes      *string `json:"notes"`
}

// AddOrderItemsRequest appends lines to an open ticket.
type AddOrderItemsRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required"`
}

// UpdateOrderItemRequest changes one line's quantity. Zero removes it.
type UpdateOrderItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CompleteOrderRequest closes a ticket with its payment method.
type CompleteOrderRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// ListOrders returns orders, optionally narrowed by day and status.
func (h *Handler) ListOrders(c *gin.Context) {
	var filter repository.OrderFilter
	if raw := c.Query("date"); raw != "" {
		date, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			respondError(c, response.CodeBadRequest, "fecha inválida", nil)
			return
		}
		filter.Date = &date
	}
	filter.Status = c.Query("status")

	orders, err := h.OrderService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error al cargar las órdenes", err)
		return
	}
	response.Success(c, orders)
}

// ListOpenOrders returns open tickets oldest first.
func (h *Handler) ListOpenOrders(c *gin.Context) {
	orders, err := h.OrderService.ListOpen()
	if err != nil {
		respondError(c, response.CodeInternal, "error al cargar las órdenes", err)
		return
	}
	response.Success(c, orders)
}

// GetOrder returns one order with its lines.
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	order, err := h.OrderService.Get(id)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, order)
}

// AddOrderItems appends lines to an open ticket.
func (h *Handler) AddOrderItems(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	var req AddOrderItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		respondError(c, response.CodeBadRequest, "agrega productos a la orden", nil)
		return
	}
	lines := make([]cart.PayloadItem, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, cart.PayloadItem{ID: item.MenuItemID, Quantity: item.Quantity, Notes: item.Notes})
	}
	order, err := h.OrderService.AddItems(id, lines)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, order)
}

// UpdateOrderItem changes one line's quantity on an open ticket.
func (h *Handler) UpdateOrderItem(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		respondError(c, response.CodeBadRequest, "identificador inválido", nil)
		return
	}
	var req UpdateOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		respondError(c, response.CodeBadRequest, "cantidad requerida", nil)
		return
	}
	order, err := h.OrderService.UpdateItem(id, uint(itemID), *req.Quantity)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, order)
}

// RemoveOrderItem removes one line from an open ticket.
func (h *Handler) RemoveOrderItem(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		respondError(c, response.CodeBadRequest, "identificador inválido", nil)
		return
	}
	order, err := h.OrderService.RemoveItem(id, uint(itemID))
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, order)
}

// CompleteOrder closes an open ticket with a payment method.
func (h *Handler) CompleteOrder(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	var req CompleteOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "método de pago requerido", nil)
		return
	}
	order, err := h.OrderService.Complete(id, req.PaymentMethod)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, order)
}

// CancelOrder closes an open ticket without payment.
func (h *Handler) CancelOrder(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	order, err := h.OrderService.Cancel(id)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, order)
}

// DownloadTicket renders and serves the printable ticket PDF.
func (h *Handler) DownloadTicket(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	order, err := h.OrderService.Get(id)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	if h.TicketGenerator == nil {
		respondError(c, response.CodeInternal, "impresión de tickets no disponible", nil)
		return
	}
	path, err := h.TicketGenerator.Generate(order)
	if err != nil {
		respondError(c, response.CodeInternal, "error al generar el ticket", err)
		return
	}
	if err := h.OrderService.MarkPrinted(order.ID); err != nil {
		handlershared.RequestLog(c).Warnw("order_mark_printed_failed", "order_id", order.ID, "error", err)
	}
	c.FileAttachment(path, fmt.Sprintf("ticket_%04d.pdf", order.TicketNumber))
}

func orderIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, response.CodeBadRequest, "identificador inválido", nil)
		return 0, false
	}
	return uint(id), true
}
