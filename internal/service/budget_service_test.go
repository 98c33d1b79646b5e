package service

import (
	"errors"
	"testing"

	"github.com/obra-tracker/obra-backend/internal/domain"
	"github.com/obra-tracker/obra-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestCreateBudget_Validation(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	itemRepo := testutil.NewMockBudgetItemRepository()
	service := NewBudgetService(budgetRepo, itemRepo)

	_, err := service.CreateBudget(&BudgetInput{Name: "", Category: domain.BudgetCategoryKitchen})
	if err != domain.ErrNameRequired {
		t.Errorf("expected ErrNameRequired, got: %v", err)
	}

	_, err = service.CreateBudget(&BudgetInput{Name: "Kitchen reno", Category: "garage"})
	if err != domain.ErrInvalidCategory {
		t.Errorf("expected ErrInvalidCategory, got: %v", err)
	}

	budget, err := service.CreateBudget(&BudgetInput{Name: "Kitchen reno", Category: domain.BudgetCategoryKitchen})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if budget.ID == "" {
		t.Error("expected an id to be assigned")
	}
}

func TestDeleteBudget_CascadesToItems(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	itemRepo := testutil.NewMockBudgetItemRepository()
	service := NewBudgetService(budgetRepo, itemRepo)

	budgetRepo.AddBudget(&domain.Budget{ID: "b1", Name: "Bathroom", Category: domain.BudgetCategoryBathroom})
	itemRepo.AddItem(&domain.BudgetItem{ID: "i1", BudgetID: "b1", Name: "Tiles", EstimatedValue: decimal.NewFromInt(100)})
	itemRepo.AddItem(&domain.BudgetItem{ID: "i2", BudgetID: "b1", Name: "Sink", EstimatedValue: decimal.NewFromInt(200)})
	itemRepo.AddItem(&domain.BudgetItem{ID: "i3", BudgetID: "b1", Name: "Mirror", EstimatedValue: decimal.NewFromInt(50)})
	itemRepo.AddItem(&domain.BudgetItem{ID: "other", BudgetID: "b2", Name: "Door", EstimatedValue: decimal.NewFromInt(80)})

	if err := service.DeleteBudget("b1"); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if _, ok := budgetRepo.Budgets["b1"]; ok {
		t.Error("expected budget deleted")
	}
	for _, id := range []string{"i1", "i2", "i3"} {
		if _, ok := itemRepo.Items[id]; ok {
			t.Errorf("expected item %s deleted", id)
		}
	}
	if _, ok := itemRepo.Items["other"]; !ok {
		t.Error("expected unrelated item untouched")
	}
}

func TestDeleteBudget_AbortsBeforeParentOnItemFailure(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	itemRepo := testutil.NewMockBudgetItemRepository()
	service := NewBudgetService(budgetRepo, itemRepo)

	budgetRepo.AddBudget(&domain.Budget{ID: "b1", Name: "Bathroom", Category: domain.BudgetCategoryBathroom})
	itemRepo.AddItem(&domain.BudgetItem{ID: "i1", BudgetID: "b1", Name: "Tiles", EstimatedValue: decimal.NewFromInt(100)})
	itemRepo.AddItem(&domain.BudgetItem{ID: "i2", BudgetID: "b1", Name: "Sink", EstimatedValue: decimal.NewFromInt(200)})

	storeErr := errors.New("store unavailable")
	itemRepo.DeleteFn = func(id string) error {
		if id == "i2" {
			return storeErr
		}
		delete(itemRepo.Items, id)
		return nil
	}

	err := service.DeleteBudget("b1")
	if err == nil {
		t.Fatal("expected cascade failure to surface")
	}
	if !errors.Is(err, storeErr) {
		t.Errorf("expected wrapped store error, got: %v", err)
	}

	// The budget and the item that failed to delete must still be present
	if _, ok := budgetRepo.Budgets["b1"]; !ok {
		t.Error("expected budget to survive an aborted cascade")
	}
	if _, ok := itemRepo.Items["i2"]; !ok {
		t.Error("expected failing item to remain")
	}
}

func TestDeleteBudget_MissingIDIsNoOp(t *testing.T) {
	service := NewBudgetService(testutil.NewMockBudgetRepository(), testutil.NewMockBudgetItemRepository())
	if err := service.DeleteBudget("gone"); err != nil {
		t.Errorf("expected double-delete to succeed, got: %v", err)
	}
}

func TestGetBudgetSummary(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	itemRepo := testutil.NewMockBudgetItemRepository()
	service := NewBudgetService(budgetRepo, itemRepo)

	budgetRepo.AddBudget(&domain.Budget{ID: "b1", Name: "Kitchen", Category: domain.BudgetCategoryKitchen})
	itemRepo.AddItem(&domain.BudgetItem{ID: "i1", BudgetID: "b1", EstimatedValue: decimal.NewFromInt(100), ActualValue: decPtr(120), Purchased: true})
	itemRepo.AddItem(&domain.BudgetItem{ID: "i2", BudgetID: "b1", EstimatedValue: decimal.NewFromInt(50)})

	summary, err := service.GetBudgetSummary("b1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if summary.TotalItems != 2 || summary.PurchasedItems != 1 {
		t.Errorf("expected 2 items / 1 purchased, got %d / %d", summary.TotalItems, summary.PurchasedItems)
	}
	if !summary.EstimatedTotal.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected estimated total 150, got %s", summary.EstimatedTotal.String())
	}
	if !summary.ActualTotal.Equal(decimal.NewFromInt(120)) {
		t.Errorf("expected actual total 120, got %s", summary.ActualTotal.String())
	}
	if !summary.Variance.Equal(decimal.NewFromInt(-30)) {
		t.Errorf("expected variance -30, got %s", summary.Variance.String())
	}
}

func TestGetBudgetSummary_NotFound(t *testing.T) {
	service := NewBudgetService(testutil.NewMockBudgetRepository(), testutil.NewMockBudgetItemRepository())
	_, err := service.GetBudgetSummary("gone")
	if err != domain.ErrBudgetNotFound {
		t.Errorf("expected ErrBudgetNotFound, got: %v", err)
	}
}
