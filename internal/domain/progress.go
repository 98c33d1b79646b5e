package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Progress is a construction progress note with a completion percentage.
// Progress entries are independent of the financial aggregations.
type Progress struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Percentage  decimal.Decimal `json:"percentage"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// UpdateProgressData carries the mutable fields of a progress update.
type UpdateProgressData struct {
	Date        time.Time
	Description string
	Percentage  decimal.Decimal
}

// ProgressRepository provides access to the progress collection.
type ProgressRepository interface {
	Create(progress *Progress) (*Progress, error)
	GetByID(id string) (*Progress, error)
	GetAll() ([]*Progress, error)
	Update(id string, data *UpdateProgressData) (*Progress, error)
	Delete(id string) error
}
