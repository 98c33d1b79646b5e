package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/obra-tracker/obra-backend/internal/domain"
	"github.com/obra-tracker/obra-backend/internal/service"
	"github.com/obra-tracker/obra-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func newBudgetHandlerFixture() (*BudgetHandler, *testutil.MockBudgetRepository, *testutil.MockBudgetItemRepository) {
	budgetRepo := testutil.NewMockBudgetRepository()
	itemRepo := testutil.NewMockBudgetItemRepository()
	return NewBudgetHandler(service.NewBudgetService(budgetRepo, itemRepo)), budgetRepo, itemRepo
}

func TestCreateBudget_Success(t *testing.T) {
	e := echo.New()
	handler, _, _ := newBudgetHandlerFixture()

	body := `{"name":"Bathroom reno","category":"bathroom"}`
	req := jsonRequest(http.MethodPost, "/api/v1/budgets", body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rec.Code)
	}

	var response BudgetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Category != "bathroom" {
		t.Errorf("Expected category bathroom, got %s", response.Category)
	}
	if response.CategoryName != "Bathroom" {
		t.Errorf("Expected display name Bathroom, got %s", response.CategoryName)
	}
}

func TestCreateBudget_UnknownCategory(t *testing.T) {
	e := echo.New()
	handler, _, _ := newBudgetHandlerFixture()

	body := `{"name":"Garage","category":"garage"}`
	req := jsonRequest(http.MethodPost, "/api/v1/budgets", body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateBudget(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetBudgetSummary(t *testing.T) {
	e := echo.New()
	handler, budgetRepo, itemRepo := newBudgetHandlerFixture()

	budgetRepo.AddBudget(&domain.Budget{Name: "Kitchen", Category: domain.BudgetCategoryKitchen})
	budgets, _ := budgetRepo.GetAll()
	budgetID := budgets[0].ID

	actual := decimal.NewFromInt(120)
	itemRepo.AddItem(&domain.BudgetItem{
		BudgetID: budgetID, Name: "Sink", EstimatedValue: decimal.NewFromInt(150),
		Purchased: true, ActualValue: &actual,
	})
	itemRepo.AddItem(&domain.BudgetItem{
		BudgetID: budgetID, Name: "Tap", EstimatedValue: decimal.NewFromInt(50),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/budgets/"+budgetID+"/summary", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(budgetID)

	if err := handler.GetBudgetSummary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response BudgetSummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.TotalItems != 2 {
		t.Errorf("Expected 2 items, got %d", response.TotalItems)
	}
	if response.PurchasedItems != 1 {
		t.Errorf("Expected 1 purchased item, got %d", response.PurchasedItems)
	}
	if response.EstimatedTotal != "200.00" {
		t.Errorf("Expected estimated total '200.00', got %s", response.EstimatedTotal)
	}
	if response.ActualTotal != "120.00" {
		t.Errorf("Expected actual total '120.00', got %s", response.ActualTotal)
	}
	if response.Variance != "-80.00" {
		t.Errorf("Expected variance '-80.00', got %s", response.Variance)
	}
}

func TestGetBudgetSummary_NotFound(t *testing.T) {
	e := echo.New()
	handler, _, _ := newBudgetHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/budgets/missing/summary", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := handler.GetBudgetSummary(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestDeleteBudget_CascadesItems(t *testing.T) {
	e := echo.New()
	handler, budgetRepo, itemRepo := newBudgetHandlerFixture()

	budgetRepo.AddBudget(&domain.Budget{Name: "Kitchen", Category: domain.BudgetCategoryKitchen})
	budgets, _ := budgetRepo.GetAll()
	budgetID := budgets[0].ID

	itemRepo.AddItem(&domain.BudgetItem{BudgetID: budgetID, Name: "Sink", EstimatedValue: decimal.NewFromInt(100)})
	itemRepo.AddItem(&domain.BudgetItem{BudgetID: budgetID, Name: "Tap", EstimatedValue: decimal.NewFromInt(50)})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/budgets/"+budgetID, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(budgetID)

	if err := handler.DeleteBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", rec.Code)
	}

	remaining, _ := itemRepo.GetByBudget(budgetID)
	if len(remaining) != 0 {
		t.Errorf("Expected no items left, got %d", len(remaining))
	}
	if _, err := budgetRepo.GetByID(budgetID); err != domain.ErrBudgetNotFound {
		t.Errorf("Expected budget to be gone, got %v", err)
	}
}
