package service

import (
	"time"

	"github.com/cantina-pos/internal/models"
	"github.com/cantina-pos/internal/repository"
)

// DailyReport is the sales summary for one day.
type DailyReport struct {
	Date        string       `json:"date"`
	TotalOrders int          `json:"total_orders"`
	TotalSales  models.Money `json:"total_sales"`
	TotalIVA    models.Money `json:"total_iva"`
	CashSales   models.Money `json:"cash_sales"`
	CardSales   models.Money `json:"card_sales"`
}

// ReportService serves the admin sales views.
type ReportService struct {
	reportRepo repository.ReportRepository
}

// NewReportService creates a report service.
func NewReportService(reportRepo repository.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// Daily returns the sales summary for one day. Days with no completed
// orders report zeros rather than an error.
func (s *ReportService) Daily(date time.Time) (*DailyReport, error) {
	row, err := s.reportRepo.DailySalesByDate(date)
	if err != nil {
		return nil, err
	}
	report := &DailyReport{Date: date.Format("2006-01-02")}
	if row != nil {
		report.TotalOrders = row.TotalOrders
		report.TotalSales = row.TotalSales
		report.TotalIVA = row.TotalIVA
		report.CashSales = row.CashSales
		report.CardSales = row.CardSales
	}
	return report, nil
}

// BestSellers returns the top selling items over the trailing window.
func (s *ReportService) BestSellers(days, limit int) ([]repository.BestSellerRow, error) {
	return s.reportRepo.BestSellers(sinceDays(days), limit)
}

// SalesByCategory returns per-category totals over the trailing window.
func (s *ReportService) SalesByCategory(days int) ([]repository.CategorySalesRow, error) {
	return s.reportRepo.SalesByCategory(sinceDays(days))
}

func sinceDays(days int) time.Time {
	if days <= 0 {
		days = 7
	}
	return time.Now().AddDate(0, 0, -days)
}
