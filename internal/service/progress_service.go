package service

import (
	"time"

	"github.com/obra-tracker/obra-backend/internal/domain"
	"github.com/shopspring/decimal"
)

var maxPercentage = decimal.NewFromInt(100)

// ProgressService handles construction progress business logic
type ProgressService struct {
	progressRepo domain.ProgressRepository
}

// NewProgressService creates a new ProgressService
func NewProgressService(progressRepo domain.ProgressRepository) *ProgressService {
	return &ProgressService{progressRepo: progressRepo}
}

// ProgressInput carries the fields for creating or updating a progress entry
type ProgressInput struct {
	Date        time.Time
	Description string
	Percentage  decimal.Decimal
}

func (in *ProgressInput) validate() error {
	if in.Description == "" {
		return domain.ErrDescriptionRequired
	}
	if in.Percentage.IsNegative() || in.Percentage.GreaterThan(maxPercentage) {
		return domain.ErrInvalidPercentage
	}
	return nil
}

// CreateProgress validates and stores a new progress entry
func (s *ProgressService) CreateProgress(input *ProgressInput) (*domain.Progress, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	progress := &domain.Progress{
		Date:        input.Date,
		Description: input.Description,
		Percentage:  input.Percentage,
	}
	return s.progressRepo.Create(progress)
}

// GetProgress lists progress entries ordered by date descending
func (s *ProgressService) GetProgress() ([]*domain.Progress, error) {
	return s.progressRepo.GetAll()
}

// UpdateProgress validates and applies a progress update
func (s *ProgressService) UpdateProgress(id string, input *ProgressInput) (*domain.Progress, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	return s.progressRepo.Update(id, &domain.UpdateProgressData{
		Date:        input.Date,
		Description: input.Description,
		Percentage:  input.Percentage,
	})
}

// DeleteProgress removes a progress entry; a missing id succeeds.
func (s *ProgressService) DeleteProgress(id string) error {
	err := s.progressRepo.Delete(id)
	if err == domain.ErrProgressNotFound {
		return nil
	}
	return err
}
