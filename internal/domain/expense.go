package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency identifies the currency an amount is denominated in.
type Currency string

const (
	CurrencyARS Currency = "ARS"
	CurrencyUSD Currency = "USD"
)

// Valid reports whether the currency is one of the supported tags.
func (c Currency) Valid() bool {
	return c == CurrencyARS || c == CurrencyUSD
}

// Expense is a single construction expense. Amounts are always tagged with a
// currency and never mixed without conversion.
type Expense struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    Currency        `json:"currency"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// UpdateExpenseData carries the mutable fields of an expense update.
type UpdateExpenseData struct {
	Date        time.Time
	Description string
	Category    string
	Amount      decimal.Decimal
	Currency    Currency
}

// ExpenseRepository provides access to the expenses collection.
type ExpenseRepository interface {
	Create(expense *Expense) (*Expense, error)
	GetByID(id string) (*Expense, error)
	GetAll(category string) ([]*Expense, error)
	Update(id string, data *UpdateExpenseData) (*Expense, error)
	Delete(id string) error
}
