package service

import (
	"testing"

	"github.com/obra-tracker/obra-backend/internal/domain"
	"github.com/obra-tracker/obra-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func int32Ptr(v int32) *int32 {
	return &v
}

func newItemService() (*BudgetItemService, *testutil.MockBudgetRepository, *testutil.MockBudgetItemRepository) {
	budgetRepo := testutil.NewMockBudgetRepository()
	itemRepo := testutil.NewMockBudgetItemRepository()
	return NewBudgetItemService(itemRepo, budgetRepo), budgetRepo, itemRepo
}

func TestCreateItem(t *testing.T) {
	service, budgetRepo, _ := newItemService()
	budgetRepo.AddBudget(&domain.Budget{ID: "b1", Name: "Kitchen", Category: domain.BudgetCategoryKitchen})

	item, err := service.CreateItem("b1", &BudgetItemInput{Name: "Oven", EstimatedValue: decimal.NewFromInt(900)})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if item.Purchased {
		t.Error("expected new item to start unpurchased")
	}
	if item.ActualValue != nil {
		t.Error("expected new item to have no actual value")
	}
	if item.State() != domain.ItemStatePlanned {
		t.Errorf("expected planned state, got %s", item.State())
	}
}

func TestCreateItem_BudgetNotFound(t *testing.T) {
	service, _, _ := newItemService()
	_, err := service.CreateItem("gone", &BudgetItemInput{Name: "Oven", EstimatedValue: decimal.NewFromInt(900)})
	if err != domain.ErrBudgetNotFound {
		t.Errorf("expected ErrBudgetNotFound, got: %v", err)
	}
}

func TestCreateItem_Validation(t *testing.T) {
	service, budgetRepo, itemRepo := newItemService()
	budgetRepo.AddBudget(&domain.Budget{ID: "b1", Name: "Kitchen", Category: domain.BudgetCategoryKitchen})

	if _, err := service.CreateItem("b1", &BudgetItemInput{Name: "", EstimatedValue: decimal.NewFromInt(1)}); err != domain.ErrNameRequired {
		t.Errorf("expected ErrNameRequired, got: %v", err)
	}
	if _, err := service.CreateItem("b1", &BudgetItemInput{Name: "Oven", EstimatedValue: decimal.Zero}); err != domain.ErrInvalidAmount {
		t.Errorf("expected ErrInvalidAmount, got: %v", err)
	}
	if len(itemRepo.Items) != 0 {
		t.Errorf("expected no stored items after failed validation, got %d", len(itemRepo.Items))
	}
}

func TestPurchaseLifecycle(t *testing.T) {
	service, budgetRepo, _ := newItemService()
	budgetRepo.AddBudget(&domain.Budget{ID: "b1", Name: "Kitchen", Category: domain.BudgetCategoryKitchen})

	item, err := service.CreateItem("b1", &BudgetItemInput{Name: "Oven", EstimatedValue: decimal.NewFromInt(400)})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	// Pricing before purchase is rejected
	if _, err := service.SetActualValue(item.ID, decimal.NewFromInt(500), true, int32Ptr(3)); err != domain.ErrItemNotPurchased {
		t.Fatalf("expected ErrItemNotPurchased, got: %v", err)
	}

	item, err = service.SetPurchased(item.ID, true)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if item.State() != domain.ItemStatePendingPrice {
		t.Fatalf("expected pending_price, got %s", item.State())
	}
	if item.PurchasedAt == nil {
		t.Fatal("expected purchase date to be recorded")
	}

	item, err = service.SetActualValue(item.ID, decimal.NewFromInt(500), true, int32Ptr(3))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if item.State() != domain.ItemStatePriced {
		t.Fatalf("expected priced, got %s", item.State())
	}

	// Unmarking wipes every purchase-specific field
	item, err = service.SetPurchased(item.ID, false)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if item.ActualValue != nil || item.PaidByCard || item.Installments != nil || item.PurchasedAt != nil {
		t.Errorf("expected purchase fields reset, got %+v", item)
	}
	if item.State() != domain.ItemStatePlanned {
		t.Errorf("expected planned state, got %s", item.State())
	}
}

func TestSetActualValue_CardNeedsInstallments(t *testing.T) {
	service, budgetRepo, itemRepo := newItemService()
	budgetRepo.AddBudget(&domain.Budget{ID: "b1", Name: "Kitchen", Category: domain.BudgetCategoryKitchen})
	itemRepo.AddItem(&domain.BudgetItem{ID: "i1", BudgetID: "b1", Name: "Oven", EstimatedValue: decimal.NewFromInt(400), Purchased: true})

	if _, err := service.SetActualValue("i1", decimal.NewFromInt(500), true, nil); err != domain.ErrInstallmentsRequired {
		t.Errorf("expected ErrInstallmentsRequired, got: %v", err)
	}
}

func TestDeleteItem_MissingIDIsNoOp(t *testing.T) {
	service, _, _ := newItemService()
	if err := service.DeleteItem("gone"); err != nil {
		t.Errorf("expected double-delete to succeed, got: %v", err)
	}
}

func TestSetImageKey(t *testing.T) {
	service, budgetRepo, itemRepo := newItemService()
	budgetRepo.AddBudget(&domain.Budget{ID: "b1", Name: "Kitchen", Category: domain.BudgetCategoryKitchen})
	itemRepo.AddItem(&domain.BudgetItem{ID: "i1", BudgetID: "b1", Name: "Oven", EstimatedValue: decimal.NewFromInt(400)})

	key := "budget-items/i1/abc"
	item, err := service.SetImageKey("i1", &key)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if item.ImageKey == nil || *item.ImageKey != key {
		t.Error("expected image key attached")
	}

	item, err = service.SetImageKey("i1", nil)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if item.ImageKey != nil {
		t.Error("expected image key cleared")
	}
}
