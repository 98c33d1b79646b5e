package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/obra-tracker/obra-backend/internal/domain"
	"github.com/obra-tracker/obra-backend/internal/service"
	"github.com/obra-tracker/obra-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func TestDashboardGetSummary(t *testing.T) {
	e := echo.New()
	expenseRepo := testutil.NewMockExpenseRepository()
	paymentRepo := testutil.NewMockPaymentRepository()
	exchangeRepo := testutil.NewMockExchangeRepository()
	budgetRepo := testutil.NewMockBudgetRepository()
	itemRepo := testutil.NewMockBudgetItemRepository()
	dashboardService := service.NewDashboardService(expenseRepo, paymentRepo, exchangeRepo, budgetRepo, itemRepo)
	handler := NewDashboardHandler(dashboardService)

	expenseRepo.AddExpense(&domain.Expense{
		Date: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), Description: "Cement",
		Category: "Materials", Amount: decimal.NewFromInt(10000), Currency: domain.CurrencyARS,
	})
	expenseRepo.AddExpense(&domain.Expense{
		Date: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), Description: "Fixtures",
		Category: "Materials", Amount: decimal.NewFromInt(10), Currency: domain.CurrencyUSD,
	})
	paymentRepo.AddPayment(&domain.Payment{
		Week: "2024-W11", WorkerName: "Carlos", Amount: decimal.NewFromInt(5000),
	})
	exchangeRepo.AddExchange(&domain.Exchange{
		Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), USDAmount: decimal.NewFromInt(100),
		Rate: decimal.NewFromInt(1000), ARSAmount: decimal.NewFromInt(100000),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetSummary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response DashboardSummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.TotalExpensesARS != "10000.00" {
		t.Errorf("Expected ARS total '10000.00', got %s", response.TotalExpensesARS)
	}
	if response.TotalExpensesUSD != "10.00" {
		t.Errorf("Expected USD total '10.00', got %s", response.TotalExpensesUSD)
	}
	if response.TotalPayments != "5000.00" {
		t.Errorf("Expected payments '5000.00', got %s", response.TotalPayments)
	}
	if response.AverageRate != "1000.00" {
		t.Errorf("Expected average rate '1000.00', got %s", response.AverageRate)
	}
	// ARS expenses + payments; no priced budget items, USD excluded
	if response.GrandTotal != "15000.00" {
		t.Errorf("Expected grand total '15000.00', got %s", response.GrandTotal)
	}
	if len(response.Categories) != 1 {
		t.Fatalf("Expected 1 category row, got %d", len(response.Categories))
	}
	if response.Categories[0].Category != "Materials" {
		t.Errorf("Expected Materials row, got %s", response.Categories[0].Category)
	}
	// 10000 ARS + 10 USD * 1000
	if response.Categories[0].Total != "20000.00" {
		t.Errorf("Expected Materials total '20000.00', got %s", response.Categories[0].Total)
	}
	if len(response.MonthlySeries) != 2 {
		t.Fatalf("Expected 2 monthly buckets, got %d", len(response.MonthlySeries))
	}
	if response.MonthlySeries[0].Month != "2024-03" || response.MonthlySeries[1].Month != "2024-04" {
		t.Errorf("Expected ascending months 2024-03, 2024-04, got %s, %s",
			response.MonthlySeries[0].Month, response.MonthlySeries[1].Month)
	}
}

func TestDashboardGetSummary_Empty(t *testing.T) {
	e := echo.New()
	dashboardService := service.NewDashboardService(
		testutil.NewMockExpenseRepository(),
		testutil.NewMockPaymentRepository(),
		testutil.NewMockExchangeRepository(),
		testutil.NewMockBudgetRepository(),
		testutil.NewMockBudgetItemRepository(),
	)
	handler := NewDashboardHandler(dashboardService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetSummary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response DashboardSummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.GrandTotal != "0.00" {
		t.Errorf("Expected grand total '0.00', got %s", response.GrandTotal)
	}
	// No exchanges: the fallback rate applies
	if response.AverageRate != "1000.00" {
		t.Errorf("Expected fallback rate '1000.00', got %s", response.AverageRate)
	}
	if len(response.Categories) != 0 {
		t.Errorf("Expected no category rows, got %d", len(response.Categories))
	}
}
