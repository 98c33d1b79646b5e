package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/obra-tracker/obra-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// DashboardHandler handles dashboard aggregation HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// CategoryRowResponse represents one category rollup row
type CategoryRowResponse struct {
	Category        string `json:"category"`
	Total           string `json:"total"`
	ExpenseSubtotal string `json:"expenseSubtotal"`
	BudgetSubtotal  string `json:"budgetSubtotal"`
	Percentage      string `json:"percentage"`
}

// MonthTotalResponse represents one bucket of the monthly series
type MonthTotalResponse struct {
	Month string `json:"month"`
	Total string `json:"total"`
}

// DashboardSummaryResponse represents the full dashboard summary
type DashboardSummaryResponse struct {
	TotalExpensesARS string                `json:"totalExpensesArs"`
	TotalExpensesUSD string                `json:"totalExpensesUsd"`
	TotalPayments    string                `json:"totalPayments"`
	USDPurchased     string                `json:"usdPurchased"`
	ARSSpent         string                `json:"arsSpent"`
	AverageRate      string                `json:"averageRate"`
	GrandTotal       string                `json:"grandTotal"`
	Categories       []CategoryRowResponse `json:"categories"`
	MonthlySeries    []MonthTotalResponse  `json:"monthlySeries"`
	CashTotal        string                `json:"cashTotal"`
	CardTotal        string                `json:"cardTotal"`
	PurchasedItems   int                   `json:"purchasedItems"`
	PendingItems     int                   `json:"pendingItems"`
}

// GetSummary handles GET /api/v1/dashboard/summary
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	summary, err := h.dashboardService.GetSummary()
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute dashboard summary")
		return NewInternalError(c, "Failed to compute dashboard summary")
	}

	categories := make([]CategoryRowResponse, len(summary.Categories))
	for i, row := range summary.Categories {
		categories[i] = CategoryRowResponse{
			Category:        row.Category,
			Total:           row.Total.StringFixed(2),
			ExpenseSubtotal: row.ExpenseSubtotal.StringFixed(2),
			BudgetSubtotal:  row.BudgetSubtotal.StringFixed(2),
			Percentage:      row.Percentage.StringFixed(1),
		}
	}

	months := make([]MonthTotalResponse, len(summary.MonthlySeries))
	for i, bucket := range summary.MonthlySeries {
		months[i] = MonthTotalResponse{
			Month: bucket.Month,
			Total: bucket.Total.StringFixed(2),
		}
	}

	return c.JSON(http.StatusOK, DashboardSummaryResponse{
		TotalExpensesARS: summary.TotalExpensesARS.StringFixed(2),
		TotalExpensesUSD: summary.TotalExpensesUSD.StringFixed(2),
		TotalPayments:    summary.TotalPayments.StringFixed(2),
		USDPurchased:     summary.ExchangeTotals.USDSum.StringFixed(2),
		ARSSpent:         summary.ExchangeTotals.ARSSum.StringFixed(2),
		AverageRate:      summary.AverageRate.StringFixed(2),
		GrandTotal:       summary.GrandTotal.StringFixed(2),
		Categories:       categories,
		MonthlySeries:    months,
		CashTotal:        summary.MethodSplit.Cash.StringFixed(2),
		CardTotal:        summary.MethodSplit.Card.StringFixed(2),
		PurchasedItems:   summary.PurchaseCounts.Purchased,
		PendingItems:     summary.PurchaseCounts.Pending,
	})
}
