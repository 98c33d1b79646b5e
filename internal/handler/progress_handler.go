package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/obra-tracker/obra-backend/internal/domain"
	"github.com/obra-tracker/obra-backend/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ProgressHandler handles work progress HTTP requests
type ProgressHandler struct {
	progressService *service.ProgressService
}

// NewProgressHandler creates a new ProgressHandler
func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// ProgressRequest represents the create/update progress request body
type ProgressRequest struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Percentage  string `json:"percentage"`
}

// ProgressResponse represents a progress entry in API responses
type ProgressResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Percentage  string `json:"percentage"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func (h *ProgressHandler) bindInput(c echo.Context) (*service.ProgressInput, error) {
	var req ProgressRequest
	if err := c.Bind(&req); err != nil {
		return nil, NewValidationError(c, "Invalid request body", nil)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, NewValidationError(c, "Invalid date", []ValidationError{
			{Field: "date", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	percentage, err := decimal.NewFromString(req.Percentage)
	if err != nil {
		return nil, NewValidationError(c, "Invalid percentage", []ValidationError{
			{Field: "percentage", Message: "Must be a valid decimal number"},
		})
	}

	return &service.ProgressInput{
		Date:        date,
		Description: req.Description,
		Percentage:  percentage,
	}, nil
}

// CreateProgress handles POST /api/v1/progress
func (h *ProgressHandler) CreateProgress(c echo.Context) error {
	input, err := h.bindInput(c)
	if err != nil {
		return err
	}

	progress, err := h.progressService.CreateProgress(input)
	if err != nil {
		if fieldErr := progressValidationError(c, err); fieldErr != nil {
			return fieldErr
		}
		log.Error().Err(err).Msg("Failed to create progress entry")
		return NewInternalError(c, "Failed to create progress entry")
	}

	log.Info().Str("progress_id", progress.ID).Msg("Progress entry created")

	return c.JSON(http.StatusCreated, toProgressResponse(progress))
}

// GetProgress handles GET /api/v1/progress
func (h *ProgressHandler) GetProgress(c echo.Context) error {
	entries, err := h.progressService.GetProgress()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get progress entries")
		return NewInternalError(c, "Failed to get progress entries")
	}

	response := make([]ProgressResponse, len(entries))
	for i, progress := range entries {
		response[i] = toProgressResponse(progress)
	}
	return c.JSON(http.StatusOK, response)
}

// UpdateProgress handles PUT /api/v1/progress/:id
func (h *ProgressHandler) UpdateProgress(c echo.Context) error {
	id := c.Param("id")

	input, err := h.bindInput(c)
	if err != nil {
		return err
	}

	progress, err := h.progressService.UpdateProgress(id, input)
	if err != nil {
		if errors.Is(err, domain.ErrProgressNotFound) {
			return NewNotFoundError(c, "Progress entry not found")
		}
		if fieldErr := progressValidationError(c, err); fieldErr != nil {
			return fieldErr
		}
		log.Error().Err(err).Str("progress_id", id).Msg("Failed to update progress entry")
		return NewInternalError(c, "Failed to update progress entry")
	}

	log.Info().Str("progress_id", progress.ID).Msg("Progress entry updated")

	return c.JSON(http.StatusOK, toProgressResponse(progress))
}

// DeleteProgress handles DELETE /api/v1/progress/:id
func (h *ProgressHandler) DeleteProgress(c echo.Context) error {
	id := c.Param("id")

	if err := h.progressService.DeleteProgress(id); err != nil {
		log.Error().Err(err).Str("progress_id", id).Msg("Failed to delete progress entry")
		return NewInternalError(c, "Failed to delete progress entry")
	}

	log.Info().Str("progress_id", id).Msg("Progress entry deleted")
	return c.NoContent(http.StatusNoContent)
}

func progressValidationError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrDescriptionRequired) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description is required"},
		})
	}
	if errors.Is(err, domain.ErrInvalidPercentage) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "percentage", Message: "Percentage must be between 0 and 100"},
		})
	}
	return nil
}

func toProgressResponse(progress *domain.Progress) ProgressResponse {
	return ProgressResponse{
		ID:          progress.ID,
		Date:        progress.Date.Format("2006-01-02"),
		Description: progress.Description,
		Percentage:  progress.Percentage.StringFixed(1),
		CreatedAt:   progress.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   progress.UpdatedAt.Format(time.RFC3339),
	}
}
