package service

import (
	"github.com/obra-tracker/obra-backend/internal/domain"
	"github.com/obra-tracker/obra-backend/internal/util"
	"github.com/shopspring/decimal"
)

// PaymentService handles worker payment business logic
type PaymentService struct {
	paymentRepo domain.PaymentRepository
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo domain.PaymentRepository) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo}
}

// PaymentInput carries the fields for creating or updating a payment
type PaymentInput struct {
	Week       string
	WorkerName string
	Amount     decimal.Decimal
	Notes      *string
}

func (in *PaymentInput) validate() error {
	if in.Week == "" {
		return domain.ErrWeekRequired
	}
	if !util.ValidWeek(in.Week) {
		return domain.ErrInvalidInput
	}
	if in.WorkerName == "" {
		return domain.ErrNameRequired
	}
	if len(in.WorkerName) > domain.MaxNameLength {
		return domain.ErrNameTooLong
	}
	if !in.Amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	return nil
}

// CreatePayment validates and stores a new payment
func (s *PaymentService) CreatePayment(input *PaymentInput) (*domain.Payment, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		Week:       input.Week,
		WorkerName: input.WorkerName,
		Amount:     input.Amount,
		Notes:      input.Notes,
	}
	return s.paymentRepo.Create(payment)
}

// GetPayments lists payments ordered by week descending
func (s *PaymentService) GetPayments() ([]*domain.Payment, error) {
	return s.paymentRepo.GetAll()
}

// UpdatePayment validates and applies a payment update
func (s *PaymentService) UpdatePayment(id string, input *PaymentInput) (*domain.Payment, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	return s.paymentRepo.Update(id, &domain.UpdatePaymentData{
		Week:       input.Week,
		WorkerName: input.WorkerName,
		Amount:     input.Amount,
		Notes:      input.Notes,
	})
}

// DeletePayment removes a payment; a missing id succeeds.
func (s *PaymentService) DeletePayment(id string) error {
	err := s.paymentRepo.Delete(id)
	if err == domain.ErrPaymentNotFound {
		return nil
	}
	return err
}
