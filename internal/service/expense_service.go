package service

import (
	"time"

	"github.com/obra-tracker/obra-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// ExpenseService handles expense business logic
type ExpenseService struct {
	expenseRepo domain.ExpenseRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo domain.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

// ExpenseInput carries the fields for creating or updating an expense
type ExpenseInput struct {
	Date        time.Time
	Description string
	Category    string
	Amount      decimal.Decimal
	Currency    domain.Currency
}

func (in *ExpenseInput) validate() error {
	if in.Description == "" {
		return domain.ErrDescriptionRequired
	}
	if len(in.Description) > domain.MaxDescriptionLength {
		return domain.ErrNameTooLong
	}
	if !in.Amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if !in.Currency.Valid() {
		return domain.ErrInvalidCurrency
	}
	return nil
}

// CreateExpense validates and stores a new expense
func (s *ExpenseService) CreateExpense(input *ExpenseInput) (*domain.Expense, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	expense := &domain.Expense{
		Date:        input.Date,
		Description: input.Description,
		Category:    input.Category,
		Amount:      input.Amount,
		Currency:    input.Currency,
	}
	return s.expenseRepo.Create(expense)
}

// GetExpenses lists expenses, optionally filtered by category
func (s *ExpenseService) GetExpenses(category string) ([]*domain.Expense, error) {
	return s.expenseRepo.GetAll(category)
}

// UpdateExpense validates and applies an expense update
func (s *ExpenseService) UpdateExpense(id string, input *ExpenseInput) (*domain.Expense, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	return s.expenseRepo.Update(id, &domain.UpdateExpenseData{
		Date:        input.Date,
		Description: input.Description,
		Category:    input.Category,
		Amount:      input.Amount,
		Currency:    input.Currency,
	})
}

// DeleteExpense removes an expense. A missing id is treated as already
// deleted and succeeds.
func (s *ExpenseService) DeleteExpense(id string) error {
	err := s.expenseRepo.Delete(id)
	if err == domain.ErrExpenseNotFound {
		return nil
	}
	return err
}
