package service

import (
	"time"

	"github.com/obra-tracker/obra-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// ExchangeService handles currency exchange business logic
type ExchangeService struct {
	exchangeRepo domain.ExchangeRepository
}

// NewExchangeService creates a new ExchangeService
func NewExchangeService(exchangeRepo domain.ExchangeRepository) *ExchangeService {
	return &ExchangeService{exchangeRepo: exchangeRepo}
}

// ExchangeInput carries the fields for creating or updating an exchange.
// The caller supplies all three values; arsAmount is stored as given and
// never recomputed from usdAmount*rate.
type ExchangeInput struct {
	Date      time.Time
	USDAmount decimal.Decimal
	Rate      decimal.Decimal
	ARSAmount decimal.Decimal
}

func (in *ExchangeInput) validate() error {
	if !in.USDAmount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if !in.Rate.IsPositive() {
		return domain.ErrInvalidRate
	}
	if !in.ARSAmount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	return nil
}

// CreateExchange validates and stores a new exchange
func (s *ExchangeService) CreateExchange(input *ExchangeInput) (*domain.Exchange, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	exchange := &domain.Exchange{
		Date:      input.Date,
		USDAmount: input.USDAmount,
		Rate:      input.Rate,
		ARSAmount: input.ARSAmount,
	}
	return s.exchangeRepo.Create(exchange)
}

// GetExchanges lists exchanges ordered by date descending
func (s *ExchangeService) GetExchanges() ([]*domain.Exchange, error) {
	return s.exchangeRepo.GetAll()
}

// UpdateExchange validates and applies an exchange update
func (s *ExchangeService) UpdateExchange(id string, input *ExchangeInput) (*domain.Exchange, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	return s.exchangeRepo.Update(id, &domain.UpdateExchangeData{
		Date:      input.Date,
		USDAmount: input.USDAmount,
		Rate:      input.Rate,
		ARSAmount: input.ARSAmount,
	})
}

// DeleteExchange removes an exchange; a missing id succeeds.
func (s *ExchangeService) DeleteExchange(id string) error {
	err := s.exchangeRepo.Delete(id)
	if err == domain.ErrExchangeNotFound {
		return nil
	}
	return err
}
