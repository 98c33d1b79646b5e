package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemState is the lifecycle state of a budget item. There is no direct
// transition from Planned to Priced; an item must be marked purchased first.
type ItemState string

const (
	ItemStatePlanned      ItemState = "planned"
	ItemStatePendingPrice ItemState = "pending_price"
	ItemStatePriced       ItemState = "priced"
)

// BudgetItem is a planned purchase line under a budget, tracked from estimate
// through actual purchase price.
type BudgetItem struct {
	ID             string           `json:"id"`
	BudgetID       string           `json:"budgetId"`
	Name           string           `json:"name"`
	Description    *string          `json:"description,omitempty"`
	EstimatedValue decimal.Decimal  `json:"estimatedValue"`
	ActualValue    *decimal.Decimal `json:"actualValue,omitempty"`
	Purchased      bool             `json:"purchased"`
	PaidByCard     bool             `json:"paidByCard"`
	Installments   *int32           `json:"installments,omitempty"`
	PurchasedAt    *time.Time       `json:"purchasedAt,omitempty"`
	ImageKey       *string          `json:"imageKey,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// State derives the lifecycle state from the purchase fields.
func (i *BudgetItem) State() ItemState {
	if !i.Purchased {
		return ItemStatePlanned
	}
	if i.ActualValue == nil {
		return ItemStatePendingPrice
	}
	return ItemStatePriced
}

// MarkPurchased flips the item to the pending-price state. It is a no-op on
// an already purchased item so the actual value survives repeated marks.
func (i *BudgetItem) MarkPurchased(at time.Time) {
	if i.Purchased {
		return
	}
	i.Purchased = true
	i.PurchasedAt = &at
}

// Unmark returns the item to the planned state. All purchase-specific fields
// are wiped: once unpurchased, the actual value, card flag, installments and
// purchase date no longer mean anything.
func (i *BudgetItem) Unmark() {
	i.Purchased = false
	i.ActualValue = nil
	i.PaidByCard = false
	i.Installments = nil
	i.PurchasedAt = nil
}

// SetActualValue records the real purchase price, moving the item to the
// priced state. The item must already be purchased, the value must be
// positive and a card purchase must carry a positive installment count.
func (i *BudgetItem) SetActualValue(value decimal.Decimal, paidByCard bool, installments *int32) error {
	if !i.Purchased {
		return ErrItemNotPurchased
	}
	if !value.IsPositive() {
		return ErrInvalidAmount
	}
	if paidByCard && (installments == nil || *installments < 1) {
		return ErrInstallmentsRequired
	}
	i.ActualValue = &value
	i.PaidByCard = paidByCard
	if paidByCard {
		i.Installments = installments
	} else {
		i.Installments = nil
	}
	return nil
}

// Variance is actual minus estimated value. It is only meaningful once the
// item is purchased and priced; otherwise it is zero.
func (i *BudgetItem) Variance() decimal.Decimal {
	if !i.Purchased || i.ActualValue == nil {
		return decimal.Zero
	}
	return i.ActualValue.Sub(i.EstimatedValue)
}

// BudgetSummary is the reconciliation of a budget against its items.
// EstimatedTotal covers every item regardless of purchase state; ActualTotal
// covers only priced items; Variance is actual minus estimated.
type BudgetSummary struct {
	TotalItems     int             `json:"totalItems"`
	PurchasedItems int             `json:"purchasedItems"`
	EstimatedTotal decimal.Decimal `json:"estimatedTotal"`
	ActualTotal    decimal.Decimal `json:"actualTotal"`
	Variance       decimal.Decimal `json:"variance"`
}

// SummarizeBudget reconciles a set of items belonging to one budget.
func SummarizeBudget(items []*BudgetItem) BudgetSummary {
	summary := BudgetSummary{
		EstimatedTotal: decimal.Zero,
		ActualTotal:    decimal.Zero,
	}
	for _, item := range items {
		summary.TotalItems++
		if item.Purchased {
			summary.PurchasedItems++
		}
		summary.EstimatedTotal = summary.EstimatedTotal.Add(item.EstimatedValue)
		if item.ActualValue != nil {
			summary.ActualTotal = summary.ActualTotal.Add(*item.ActualValue)
		}
	}
	summary.Variance = summary.ActualTotal.Sub(summary.EstimatedTotal)
	return summary
}

// UpdateBudgetItemData carries the mutable descriptive fields of an item.
// Purchase state and actual value move through their own operations.
type UpdateBudgetItemData struct {
	Name           string
	Description    *string
	EstimatedValue decimal.Decimal
}

// BudgetItemRepository provides access to the budget items collection.
type BudgetItemRepository interface {
	Create(item *BudgetItem) (*BudgetItem, error)
	GetByID(id string) (*BudgetItem, error)
	GetAll() ([]*BudgetItem, error)
	GetByBudget(budgetID string) ([]*BudgetItem, error)
	Update(id string, item *BudgetItem) (*BudgetItem, error)
	Delete(id string) error
}
