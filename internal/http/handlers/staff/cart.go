package staff

import (
	"strconv"

	"github.com/cantina-pos/internal/cart"
	"github.com/cantina-pos/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest adds a menu selection to the cart.
type AddCartItemRequest struct {
	MenuItemID uint   `json:"menu_item_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required"`
	Notes      string `json:"notes"`
}

// UpdateCartQuantityRequest changes one line's quantity. Zero removes it.
type UpdateCartQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// UpdateCartNotesRequest replaces one line's notes.
type UpdateCartNotesRequest struct {
	Notes string `json:"notes"`
}

// OrderInfoRequest merges ticket metadata into the cart. Absent fields keep
// their current value.
type OrderInfoRequest struct {
	OrderType       *string `json:"order_type"`
	CustomerName    *string `json:"customer_name"`
	DeliveryPhone   *string `json:"delivery_phone"`
	DeliveryAddress *string `json:"delivery_address"`
}

// GetCart returns the current cart state.
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	response.Success(c, h.CartService.View(uid))
}

// AddCartItem puts a menu item into the cart.
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "producto y cantidad requeridos", nil)
		return
	}
	view, err := h.CartService.AddItem(uid, req.MenuItemID, req.Quantity, req.Notes)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// UpdateCartItemQuantity changes one line's quantity.
func (h *Handler) UpdateCartItemQuantity(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	index, ok := cartIndexParam(c)
	if !ok {
		return
	}
	var req UpdateCartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		respondError(c, response.CodeBadRequest, "cantidad requerida", nil)
		return
	}
	view, err := h.CartService.UpdateQuantity(uid, index, *req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// UpdateCartItemNotes replaces one line's notes.
func (h *Handler) UpdateCartItemNotes(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	index, ok := cartIndexParam(c)
	if !ok {
		return
	}
	var req UpdateCartNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "notas inválidas", nil)
		return
	}
	view, err := h.CartService.UpdateNotes(uid, index, req.Notes)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// RemoveCartItem deletes one line from the cart.
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	index, ok := cartIndexParam(c)
	if !ok {
		return
	}
	view, err := h.CartService.RemoveItem(uid, index)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// ClearCart empties the cart and resets the ticket metadata.
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	response.Success(c, h.CartService.Clear(uid))
}

// SetCartOrderInfo merges ticket metadata into the cart.
func (h *Handler) SetCartOrderInfo(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req OrderInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "datos de orden inválidos", nil)
		return
	}
	view := h.CartService.SetOrderInfo(uid, cart.OrderInfoPatch{
		OrderType:       req.OrderType,
		CustomerName:    req.CustomerName,
		DeliveryPhone:   req.DeliveryPhone,
		DeliveryAddress: req.DeliveryAddress,
	})
	response.Success(c, view)
}

// GetCartTotals returns the monetary summary of the cart.
func (h *Handler) GetCartTotals(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	response.Success(c, h.CartService.Totals(uid))
}

// SubmitCart validates the cart and creates the ticket. The cart is cleared
// only when the order was created.
func (h *Handler) SubmitCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	order, err := h.CartService.Submit(uid)
	if err != nil {
		respondSubmitError(c, err)
		return
	}
	response.Success(c, order)
}

func cartIndexParam(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		respondError(c, response.CodeBadRequest, "posición inválida", nil)
		return 0, false
	}
	return index, true
}
