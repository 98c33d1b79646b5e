package service

import (
	"time"

	"github.com/obra-tracker/obra-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// BudgetItemService handles budget item business logic: CRUD plus the
// purchase lifecycle (mark, price, unmark).
type BudgetItemService struct {
	itemRepo   domain.BudgetItemRepository
	budgetRepo domain.BudgetRepository
}

// NewBudgetItemService creates a new BudgetItemService
func NewBudgetItemService(itemRepo domain.BudgetItemRepository, budgetRepo domain.BudgetRepository) *BudgetItemService {
	return &BudgetItemService{itemRepo: itemRepo, budgetRepo: budgetRepo}
}

// BudgetItemInput carries the descriptive fields of a budget item. Purchase
// state moves through SetPurchased/SetActualValue, never through updates.
type BudgetItemInput struct {
	Name           string
	Description    *string
	EstimatedValue decimal.Decimal
}

func (in *BudgetItemInput) validate() error {
	if in.Name == "" {
		return domain.ErrNameRequired
	}
	if len(in.Name) > domain.MaxNameLength {
		return domain.ErrNameTooLong
	}
	if !in.EstimatedValue.IsPositive() {
		return domain.ErrInvalidAmount
	}
	return nil
}

// CreateItem validates and stores a new item under an existing budget.
// Items always start planned: not purchased, no actual value.
func (s *BudgetItemService) CreateItem(budgetID string, input *BudgetItemInput) (*domain.BudgetItem, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if _, err := s.budgetRepo.GetByID(budgetID); err != nil {
		return nil, err
	}

	item := &domain.BudgetItem{
		BudgetID:       budgetID,
		Name:           input.Name,
		Description:    input.Description,
		EstimatedValue: input.EstimatedValue,
	}
	return s.itemRepo.Create(item)
}

// GetItemsByBudget lists the items of one budget
func (s *BudgetItemService) GetItemsByBudget(budgetID string) ([]*domain.BudgetItem, error) {
	if _, err := s.budgetRepo.GetByID(budgetID); err != nil {
		return nil, err
	}
	return s.itemRepo.GetByBudget(budgetID)
}

// GetItem retrieves one item by id
func (s *BudgetItemService) GetItem(id string) (*domain.BudgetItem, error) {
	return s.itemRepo.GetByID(id)
}

// UpdateItem validates and applies a descriptive update
func (s *BudgetItemService) UpdateItem(id string, input *BudgetItemInput) (*domain.BudgetItem, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	item, err := s.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	item.Name = input.Name
	item.Description = input.Description
	item.EstimatedValue = input.EstimatedValue
	return s.itemRepo.Update(id, item)
}

// SetPurchased marks or unmarks an item as purchased. Unmarking wipes the
// actual value, card flag, installments and purchase date.
func (s *BudgetItemService) SetPurchased(id string, purchased bool) (*domain.BudgetItem, error) {
	item, err := s.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if purchased {
		item.MarkPurchased(time.Now().UTC())
	} else {
		item.Unmark()
	}
	return s.itemRepo.Update(id, item)
}

// SetActualValue records the real purchase price of a purchased item
func (s *BudgetItemService) SetActualValue(id string, value decimal.Decimal, paidByCard bool, installments *int32) (*domain.BudgetItem, error) {
	item, err := s.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := item.SetActualValue(value, paidByCard, installments); err != nil {
		return nil, err
	}
	return s.itemRepo.Update(id, item)
}

// SetImageKey attaches or clears the stored image reference of an item
func (s *BudgetItemService) SetImageKey(id string, key *string) (*domain.BudgetItem, error) {
	item, err := s.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	item.ImageKey = key
	return s.itemRepo.Update(id, item)
}

// DeleteItem removes an item; a missing id succeeds.
func (s *BudgetItemService) DeleteItem(id string) error {
	err := s.itemRepo.Delete(id)
	if err == domain.ErrBudgetItemNotFound {
		return nil
	}
	return err
}
