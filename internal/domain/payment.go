package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a weekly payment to a worker. Payments are always in ARS and are
// listed by week descending; weeks are strings that sort lexically ("2024-W03").
type Payment struct {
	ID         string          `json:"id"`
	Week       string          `json:"week"`
	WorkerName string          `json:"workerName"`
	Amount     decimal.Decimal `json:"amount"`
	Notes      *string         `json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// UpdatePaymentData carries the mutable fields of a payment update.
type UpdatePaymentData struct {
	Week       string
	WorkerName string
	Amount     decimal.Decimal
	Notes      *string
}

// PaymentRepository provides access to the payments collection.
type PaymentRepository interface {
	Create(payment *Payment) (*Payment, error)
	GetByID(id string) (*Payment, error)
	GetAll() ([]*Payment, error)
	Update(id string, data *UpdatePaymentData) (*Payment, error)
	Delete(id string) error
}
