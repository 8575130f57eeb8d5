package admin

import (
	"strconv"
	"time"

	"github.com/cantina-pos/internal/http/response"

	"github.com/gin-gonic/gin"
)

// DailyReport returns the sales summary for one day; today when no date is
// given.
func (h *Handler) DailyReport(c *gin.Context) {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			respondError(c, response.CodeBadRequest, "fecha inválida", nil)
			return
		}
		date = parsed
	}
	report, err := h.ReportService.Daily(date)
	if err != nil {
		respondError(c, response.CodeInternal, "error al generar el reporte", err)
		return
	}
	response.Success(c, report)
}

// BestSellers returns the top selling items over the trailing window.
func (h *Handler) BestSellers(c *gin.Context) {
	days := intQuery(c, "days", 7)
	limit := intQuery(c, "limit", 10)
	rows, err := h.ReportService.BestSellers(days, limit)
	if err != nil {
		respondError(c, response.CodeInternal, "error al generar el reporte", err)
		return
	}
	response.Success(c, rows)
}

// SalesByCategory returns per-category totals over the trailing window.
func (h *Handler) SalesByCategory(c *gin.Context) {
	days := intQuery(c, "days", 7)
	rows, err := h.ReportService.SalesByCategory(days)
	if err != nil {
		respondError(c, response.CodeInternal, "error al generar el reporte", err)
		return
	}
	response.Success(c, rows)
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
