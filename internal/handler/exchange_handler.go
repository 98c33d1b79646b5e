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

// ExchangeHandler handles currency exchange HTTP requests
type ExchangeHandler struct {
	exchangeService *service.ExchangeService
}

// NewExchangeHandler creates a new ExchangeHandler
func NewExchangeHandler(exchangeService *service.ExchangeService) *ExchangeHandler {
	return &ExchangeHandler{exchangeService: exchangeService}
}

// ExchangeRequest represents the create/update exchange request body.
// The ARS amount is recorded as sent, not recomputed from usdAmount*rate.
type ExchangeRequest struct {
	Date      string `json:"date"`
	USDAmount string `json:"usdAmount"`
	Rate      string `json:"rate"`
	ARSAmount string `json:"arsAmount"`
}

// ExchangeResponse represents an exchange in API responses
type ExchangeResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	USDAmount string `json:"usdAmount"`
	Rate      string `json:"rate"`
	ARSAmount string `json:"arsAmount"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func (h *ExchangeHandler) bindInput(c echo.Context) (*service.ExchangeInput, error) {
	var req ExchangeRequest
	if err := c.Bind(&req); err != nil {
		return nil, NewValidationError(c, "Invalid request body", nil)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, NewValidationError(c, "Invalid date", []ValidationError{
			{Field: "date", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	usdAmount, err := decimal.NewFromString(req.USDAmount)
	if err != nil {
		return nil, NewValidationError(c, "Invalid USD amount", []ValidationError{
			{Field: "usdAmount", Message: "Must be a valid decimal number"},
		})
	}
	rate, err := decimal.NewFromString(req.Rate)
	if err != nil {
		return nil, NewValidationError(c, "Invalid rate", []ValidationError{
			{Field: "rate", Message: "Must be a valid decimal number"},
		})
	}
	arsAmount, err := decimal.NewFromString(req.ARSAmount)
	if err != nil {
		return nil, NewValidationError(c, "Invalid ARS amount", []ValidationError{
			{Field: "arsAmount", Message: "Must be a valid decimal number"},
		})
	}

	return &service.ExchangeInput{
		Date:      date,
		USDAmount: usdAmount,
		Rate:      rate,
		ARSAmount: arsAmount,
	}, nil
}

// CreateExchange handles POST /api/v1/exchanges
func (h *ExchangeHandler) CreateExchange(c echo.Context) error {
	input, err := h.bindInput(c)
	if err != nil {
		return err
	}

	exchange, err := h.exchangeService.CreateExchange(input)
	if err != nil {
		if fieldErr := exchangeValidationError(c, err); fieldErr != nil {
			return fieldErr
		}
		log.Error().Err(err).Msg("Failed to create exchange")
		return NewInternalError(c, "Failed to create exchange")
	}

	log.Info().Str("exchange_id", exchange.ID).Str("rate", exchange.Rate.String()).Msg("Exchange created")

	return c.JSON(http.StatusCreated, toExchangeResponse(exchange))
}

// GetExchanges handles GET /api/v1/exchanges
func (h *ExchangeHandler) GetExchanges(c echo.Context) error {
	exchanges, err := h.exchangeService.GetExchanges()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get exchanges")
		return NewInternalError(c, "Failed to get exchanges")
	}

	response := make([]ExchangeResponse, len(exchanges))
	for i, exchange := range exchanges {
		response[i] = toExchangeResponse(exchange)
	}
	return c.JSON(http.StatusOK, response)
}

// UpdateExchange handles PUT /api/v1/exchanges/:id
func (h *ExchangeHandler) UpdateExchange(c echo.Context) error {
	id := c.Param("id")

	input, err := h.bindInput(c)
	if err != nil {
		return err
	}

	exchange, err := h.exchangeService.UpdateExchange(id, input)
	if err != nil {
		if errors.Is(err, domain.ErrExchangeNotFound) {
			return NewNotFoundError(c, "Exchange not found")
		}
		if fieldErr := exchangeValidationError(c, err); fieldErr != nil {
			return fieldErr
		}
		log.Error().Err(err).Str("exchange_id", id).Msg("Failed to update exchange")
		return NewInternalError(c, "Failed to update exchange")
	}

	log.Info().Str("exchange_id", exchange.ID).Msg("Exchange updated")

	return c.JSON(http.StatusOK, toExchangeResponse(exchange))
}

// DeleteExchange handles DELETE /api/v1/exchanges/:id
func (h *ExchangeHandler) DeleteExchange(c echo.Context) error {
	id := c.Param("id")

	if err := h.exchangeService.DeleteExchange(id); err != nil {
		log.Error().Err(err).Str("exchange_id", id).Msg("Failed to delete exchange")
		return NewInternalError(c, "Failed to delete exchange")
	}

	log.Info().Str("exchange_id", id).Msg("Exchange deleted")
	return c.NoContent(http.StatusNoContent)
}

func exchangeValidationError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrInvalidAmount) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "usdAmount", Message: "Amounts must be positive"},
		})
	}
	if errors.Is(err, domain.ErrInvalidRate) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "rate", Message: "Rate must be positive"},
		})
	}
	return nil
}

func toExchangeResponse(exchange *domain.Exchange) ExchangeResponse {
	return ExchangeResponse{
		ID:        exchange.ID,
		Date:      exchange.Date.Format("2006-01-02"),
		USDAmount: exchange.USDAmount.StringFixed(2),
		Rate:      exchange.Rate.String(),
		ARSAmount: exchange.ARSAmount.StringFixed(2),
		CreatedAt: exchange.CreatedAt.Format(time.RFC3339),
		UpdatedAt: exchange.UpdatedAt.Format(time.RFC3339),
	}
}
