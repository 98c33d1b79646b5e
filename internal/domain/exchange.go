package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Exchange records a currency exchange: USD bought, the rate paid (ARS per
// USD) and the ARS handed over. The caller supplies all three values; the
// stored ARS amount is consumed as-is and never recomputed from usd*rate.
type Exchange struct {
	ID        string          `json:"id"`
	Date      time.Time       `json:"date"`
	USDAmount decimal.Decimal `json:"usdAmount"`
	Rate      decimal.Decimal `json:"rate"`
	ARSAmount decimal.Decimal `json:"arsAmount"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// UpdateExchangeData carries the mutable fields of an exchange update.
type UpdateExchangeData struct {
	Date      time.Time
	USDAmount decimal.Decimal
	Rate      decimal.Decimal
	ARSAmount decimal.Decimal
}

// ExchangeRepository provides access to the exchanges collection.
type ExchangeRepository interface {
	Create(exchange *Exchange) (*Exchange, error)
	GetByID(id string) (*Exchange, error)
	GetAll() ([]*Exchange, error)
	Update(id string, data *UpdateExchangeData) (*Exchange, error)
	Delete(id string) error
}
