package domain

import "errors"

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInternalError      = errors.New("internal error")
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrExchangeNotFound   = errors.New("exchange not found")
	ErrProgressNotFound   = errors.New("progress entry not found")
	ErrBudgetNotFound     = errors.New("budget not found")
	ErrBudgetItemNotFound = errors.New("budget item not found")

	ErrNameRequired         = errors.New("name is required")
	ErrNameTooLong          = errors.New("name exceeds maximum length")
	ErrDescriptionRequired  = errors.New("description is required")
	ErrWeekRequired         = errors.New("week is required")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInvalidRate          = errors.New("rate must be positive")
	ErrInvalidCurrency      = errors.New("currency must be ARS or USD")
	ErrInvalidCategory      = errors.New("unknown budget category")
	ErrInvalidPercentage    = errors.New("percentage must be between 0 and 100")
	ErrInstallmentsRequired = errors.New("installments required for card purchases")
	ErrItemNotPurchased     = errors.New("item is not marked as purchased")
)

// Validation constants
const (
	MaxNameLength        = 255
	MaxDescriptionLength = 1000
)
