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
)

func newItemHandlerFixture() (*BudgetItemHandler, *testutil.MockBudgetRepository, *testutil.MockBudgetItemRepository) {
	budgetRepo := testutil.NewMockBudgetRepository()
	itemRepo := testutil.NewMockBudgetItemRepository()
	itemService := service.NewBudgetItemService(itemRepo, budgetRepo)
	imageService := service.NewImageService(nil)
	return NewBudgetItemHandler(itemService, imageService), budgetRepo, itemRepo
}

func TestCreateItem_BudgetMissing(t *testing.T) {
	e := echo.New()
	handler, _, _ := newItemHandlerFixture()

	body := `{"name":"Shower head","estimatedValue":"45000"}`
	req := jsonRequest(http.MethodPost, "/api/v1/budgets/missing/items", body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := handler.CreateItem(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestItemPurchaseLifecycle(t *testing.T) {
	e := echo.New()
	handler, budgetRepo, _ := newItemHandlerFixture()

	budgetRepo.AddBudget(&domain.Budget{Name: "Bathroom reno", Category: domain.BudgetCategoryBathroom})
	budgets, _ := budgetRepo.GetAll()
	budgetID := budgets[0].ID

	// Create an item under the budget
	body := `{"name":"Shower head","estimatedValue":"45000"}`
	req := jsonRequest(http.MethodPost, "/api/v1/budgets/"+budgetID+"/items", body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(budgetID)

	if err := handler.CreateItem(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rec.Code)
	}

	var item BudgetItemResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &item); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if item.State != string(domain.ItemStatePlanned) {
		t.Errorf("Expected planned state, got %s", item.State)
	}

	// Pricing before purchase conflicts
	req = jsonRequest(http.MethodPatch, "/api/v1/budget-items/"+item.ID+"/actual-value", `{"actualValue":"52000"}`)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(item.ID)

	if err := handler.SetActualValue(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409 before purchase, got %d", rec.Code)
	}

	// Mark purchased
	req = jsonRequest(http.MethodPatch, "/api/v1/budget-items/"+item.ID+"/purchase", `{"purchased":true}`)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(item.ID)

	if err := handler.SetPurchased(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &item); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if item.State != string(domain.ItemStatePendingPrice) {
		t.Errorf("Expected pending_price state, got %s", item.State)
	}
	if item.PurchasedAt == nil {
		t.Error("Expected purchasedAt to be set")
	}

	// Card purchase without installments fails validation
	req = jsonRequest(http.MethodPatch, "/api/v1/budget-items/"+item.ID+"/actual-value", `{"actualValue":"52000","paidByCard":true}`)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(item.ID)

	if err := handler.SetActualValue(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 without installments, got %d", rec.Code)
	}

	// Set the real price with installments
	req = jsonRequest(http.MethodPatch, "/api/v1/budget-items/"+item.ID+"/actual-value", `{"actualValue":"52000","paidByCard":true,"installments":3}`)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(item.ID)

	if err := handler.SetActualValue(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &item); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if item.State != string(domain.ItemStatePriced) {
		t.Errorf("Expected priced state, got %s", item.State)
	}
	if item.ActualValue == nil || *item.ActualValue != "52000.00" {
		t.Errorf("Expected actual value '52000.00', got %v", item.ActualValue)
	}
	if item.Variance == nil || *item.Variance != "7000.00" {
		t.Errorf("Expected variance '7000.00', got %v", item.Variance)
	}

	// Unmark resets everything purchase-related
	req = jsonRequest(http.MethodPatch, "/api/v1/budget-items/"+item.ID+"/purchase", `{"purchased":false}`)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(item.ID)

	if err := handler.SetPurchased(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	item = BudgetItemResponse{}
	if err := json.Unmarshal(rec.Body.Bytes(), &item); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if item.State != string(domain.ItemStatePlanned) {
		t.Errorf("Expected planned state after unmark, got %s", item.State)
	}
	if item.ActualValue != nil {
		t.Error("Expected actual value to be wiped after unmark")
	}
	if item.Installments != nil {
		t.Error("Expected installments to be wiped after unmark")
	}
	if item.PurchasedAt != nil {
		t.Error("Expected purchasedAt to be wiped after unmark")
	}
}

func TestUploadImage_StorageDisabled(t *testing.T) {
	e := echo.New()
	handler, _, _ := newItemHandlerFixture()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/budget-items/i1/image", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("i1")

	if err := handler.UploadImage(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", rec.Code)
	}
}
