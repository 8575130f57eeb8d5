package staff

import (
	"strconv"

	"github.com/cantina-pos/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListMenu returns the available menu, optionally narrowed to one category.
func (h *Handler) ListMenu(c *gin.Context) {
	category := c.Query("category")
	items, err := h.MenuService.List(c.Request.Context(), category)
	if err != nil {
		respondError(c, response.CodeInternal, "error al cargar el menú", err)
		return
	}
	response.Success(c, items)
}

// ListMenuCategories returns the category names in use.
func (h *Handler) ListMenuCategories(c *gin.Context) {
	categories, err := h.MenuService.Categories(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error al cargar las categorías", err)
		return
	}
	response.Success(c, categories)
}

// GetMenuItem returns one menu item.
func (h *Handler) GetMenuItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, response.CodeBadRequest, "identificador inválido", nil)
		return
	}
	item, err := h.MenuService.GetByID(uint(id))
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, item)
}
