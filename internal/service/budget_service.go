package service

import (
	"fmt"

	"github.com/obra-tracker/obra-backend/internal/domain"
)

// BudgetService handles budget business logic, including the cascade delete
// of a budget's items.
type BudgetService struct {
	budgetRepo domain.BudgetRepository
	itemRepo   domain.BudgetItemRepository
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository, itemRepo domain.BudgetItemRepository) *BudgetService {
	return &BudgetService{budgetRepo: budgetRepo, itemRepo: itemRepo}
}

// BudgetInput carries the fields for creating or updating a budget
type BudgetInput struct {
	Name        string
	Category    domain.BudgetCategory
	Description *string
}

func (in *BudgetInput) validate() error {
	if in.Name == "" {
		return domain.ErrNameRequired
	}
	if len(in.Name) > domain.MaxNameLength {
		return domain.ErrNameTooLong
	}
	if !in.Category.Valid() {
		return domain.ErrInvalidCategory
	}
	return nil
}

// CreateBudget validates and stores a new budget
func (s *BudgetService) CreateBudget(input *BudgetInput) (*domain.Budget, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	budget := &domain.Budget{
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
	}
	return s.budgetRepo.Create(budget)
}

// GetBudgets lists all budgets
func (s *BudgetService) GetBudgets() ([]*domain.Budget, error) {
	return s.budgetRepo.GetAll()
}

// GetBudget retrieves one budget by id
func (s *BudgetService) GetBudget(id string) (*domain.Budget, error) {
	return s.budgetRepo.GetByID(id)
}

// UpdateBudget validates and applies a budget update
func (s *BudgetService) UpdateBudget(id string, input *BudgetInput) (*domain.Budget, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	return s.budgetRepo.Update(id, &domain.UpdateBudgetData{
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
	})
}

// DeleteBudget removes a budget and all of its items. Items go first, one at
// a time; any item failure aborts before the budget itself is touched, so a
// partial failure can never orphan items under a deleted budget. A missing
// budget id succeeds.
func (s *BudgetService) DeleteBudget(id string) error {
	items, err := s.itemRepo.GetByBudget(id)
	if err != nil {
		return err
	}

	for _, item := range items {
		if err := s.itemRepo.Delete(item.ID); err != nil && err != domain.ErrBudgetItemNotFound {
			return fmt.Errorf("cascade aborted deleting item %s: %w", item.ID, err)
		}
	}

	err = s.budgetRepo.Delete(id)
	if err == domain.ErrBudgetNotFound {
		return nil
	}
	return err
}

// GetBudgetSummary reconciles a budget against its items
func (s *BudgetService) GetBudgetSummary(id string) (*domain.BudgetSummary, error) {
	if _, err := s.budgetRepo.GetByID(id); err != nil {
		return nil, err
	}
	items, err := s.itemRepo.GetByBudget(id)
	if err != nil {
		return nil, err
	}
	summary := domain.SummarizeBudget(items)
	return &summary, nil
}
