package admin

import (
	"errors"
	"strconv"

	"github.com/cantina-pos/internal/http/response"
	"github.com/cantina-pos/internal/models"
	"github.com/cantina-pos/internal/service"

	"github.com/gin-gonic/gin"
)

// MenuItemCreateRequest creates a menu item.
type MenuItemCreateRequest struct {
	Name        string       `json:"name" binding:"required"`
	Price       models.Money `json:"price" binding:"required"`
	Category    string       `json:"category" binding:"required"`
	Description string       `json:"description"`
	Available   *bool        `json:"available"`
	ImageURL    string       `json:"image_url"`
}

// MenuItemUpdateRequest updates a menu item; absent fields keep their value.
type MenuItemUpdateRequest struct {
	Name        *string       `json:"name"`
	Price       *models.Money `json:"price"`
	Category    *string       `json:"category"`
	Description *string       `json:"description"`
	Available   *bool         `json:"available"`
	ImageURL    *string       `json:"image_url"`
}

// ListMenu returns the whole catalog, unavailable items included.
func (h *Handler) ListMenu(c *gin.Context) {
	items, err := h.MenuService.ListAll(c.Query("category"))
	if err != nil {
		respondError(c, response.CodeInternal, "error al cargar el menú", err)
		return
	}
	response.Success(c, items)
}

// CreateMenuItem adds a menu item to the catalog.
func (h *Handler) CreateMenuItem(c *gin.Context) {
	var req MenuItemCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "nombre, precio y categoría requeridos", nil)
		return
	}
	item, err := h.MenuService.Create(c.Request.Context(), service.MenuItemInput{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Description: req.Description,
		Available:   req.Available,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respondMenuError(c, err)
		return
	}
	response.Success(c, item)
}

// UpdateMenuItem applies a partial update to a menu item.
func (h *Handler) UpdateMenuItem(c *gin.Context) {
	id, ok := menuItemIDParam(c)
	if !ok {
		return
	}
	var req MenuItemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "datos inválidos", nil)
		return
	}
	item, err := h.MenuService.Update(c.Request.Context(), id, service.MenuItemUpdateInput{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Description: req.Description,
		Available:   req.Available,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respondMenuError(c, err)
		return
	}
	response.Success(c, item)
}

// DeleteMenuItem removes a menu item from the catalog.
func (h *Handler) DeleteMenuItem(c *gin.Context) {
	id, ok := menuItemIDParam(c)
	if !ok {
		return
	}
	if err := h.MenuService.Delete(c.Request.Context(), id); err != nil {
		respondMenuError(c, err)
		return
	}
	response.Success(c, nil)
}

func respondMenuError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMenuItemNotFound):
		respondError(c, response.CodeNotFound, "producto no encontrado", nil)
	case errors.Is(err, service.ErrInvalidMenuItem):
		respondError(c, response.CodeBadRequest, "datos del producto inválidos", nil)
	default:
		respondError(c, response.CodeInternal, "error al guardar el producto", err)
	}
}

func menuItemIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, response.CodeBadRequest, "identificador inválido", nil)
		return 0, false
	}
	return uint(id), true
}
