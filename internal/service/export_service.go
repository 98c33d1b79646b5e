package service

import (
	"time"

	"github.com/obra-tracker/obra-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// ExportSource identifies this backend in exported bundles.
const ExportSource = "obra-backend"

// ExportService produces backup bundles and imports them additively.
type ExportService struct {
	expenseRepo  domain.ExpenseRepository
	paymentRepo  domain.PaymentRepository
	exchangeRepo domain.ExchangeRepository
	progressRepo domain.ProgressRepository
}

// NewExportService creates a new ExportService
func NewExportService(
	expenseRepo domain.ExpenseRepository,
	paymentRepo domain.PaymentRepository,
	exchangeRepo domain.ExchangeRepository,
	progressRepo domain.ProgressRepository,
) *ExportService {
	return &ExportService{
		expenseRepo:  expenseRepo,
		paymentRepo:  paymentRepo,
		exchangeRepo: exchangeRepo,
		progressRepo: progressRepo,
	}
}

// ImportResult reports how many records of each kind were written.
type ImportResult struct {
	Expenses  int `json:"expenses"`
	Payments  int `json:"payments"`
	Exchanges int `json:"exchanges"`
	Progress  int `json:"progress"`
}

// Export snapshots all exportable collections into a bundle.
func (s *ExportService) Export() (*domain.ExportBundle, error) {
	expenses, err := s.expenseRepo.GetAll("")
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.GetAll()
	if err != nil {
		return nil, err
	}
	exchanges, err := s.exchangeRepo.GetAll()
	if err != nil {
		return nil, err
	}
	progress, err := s.progressRepo.GetAll()
	if err != nil {
		return nil, err
	}

	return &domain.ExportBundle{
		Expenses:   expenses,
		Payments:   payments,
		Exchanges:  exchanges,
		Progress:   progress,
		ExportDate: time.Now().UTC().Format(time.RFC3339),
		Source:     ExportSource,
	}, nil
}

// Import appends the bundle's records to the existing collections, one
// sequential write at a time. New ids are assigned on insert. A failure
// partway through stops the import but leaves already written records
// committed; the result reflects what actually landed.
func (s *ExportService) Import(bundle *domain.ExportBundle) (*ImportResult, error) {
	result := &ImportResult{}

	for _, expense := range bundle.Expenses {
		record := *expense
		record.ID = ""
		if _, err := s.expenseRepo.Create(&record); err != nil {
			log.Error().Err(err).Int("imported", result.Expenses).Msg("Import stopped on expense")
			return result, err
		}
		result.Expenses++
	}
	for _, payment := range bundle.Payments {
		record := *payment
		record.ID = ""
		if _, err := s.paymentRepo.Create(&record); err != nil {
			log.Error().Err(err).Int("imported", result.Payments).Msg("Import stopped on payment")
			return result, err
		}
		result.Payments++
	}
	for _, exchange := range bundle.Exchanges {
		record := *exchange
		record.ID = ""
		if _, err := s.exchangeRepo.Create(&record); err != nil {
			log.Error().Err(err).Int("imported", result.Exchanges).Msg("Import stopped on exchange")
			return result, err
		}
		result.Exchanges++
	}
	for _, progress := range bundle.Progress {
		record := *progress
		record.ID = ""
		if _, err := s.progressRepo.Create(&record); err != nil {
			log.Error().Err(err).Int("imported", result.Progress).Msg("Import stopped on progress entry")
			return result, err
		}
		result.Progress++
	}

	return result, nil
}
