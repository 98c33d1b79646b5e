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

// PaymentHandler handles worker payment HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// PaymentRequest represents the create/update payment request body
type PaymentRequest struct {
	Week       string  `json:"week"`
	WorkerName string  `json:"workerName"`
	Amount     string  `json:"amount"`
	Notes      *string `json:"notes,omitempty"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID         string  `json:"id"`
	Week       string  `json:"week"`
	WorkerName string  `json:"workerName"`
	Amount     string  `json:"amount"`
	Notes      *string `json:"notes,omitempty"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

func (h *PaymentHandler) bindInput(c echo.Context) (*service.PaymentInput, error) {
	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		return nil, NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	return &service.PaymentInput{
		Week:       req.Week,
		WorkerName: req.WorkerName,
		Amount:     amount,
		Notes:      req.Notes,
	}, nil
}

// CreatePayment handles POST /api/v1/payments
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	input, err := h.bindInput(c)
	if err != nil {
		return err
	}

	payment, err := h.paymentService.CreatePayment(input)
	if err != nil {
		if fieldErr := paymentValidationError(c, err); fieldErr != nil {
			return fieldErr
		}
		log.Error().Err(err).Msg("Failed to create payment")
		return NewInternalError(c, "Failed to create payment")
	}

	log.Info().Str("payment_id", payment.ID).Str("week", payment.Week).Msg("Payment created")

	return c.JSON(http.StatusCreated, toPaymentResponse(payment))
}

// GetPayments handles GET /api/v1/payments
func (h *PaymentHandler) GetPayments(c echo.Context) error {
	payments, err := h.paymentService.GetPayments()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get payments")
		return NewInternalError(c, "Failed to get payments")
	}

	response := make([]PaymentResponse, len(payments))
	for i, payment := range payments {
		response[i] = toPaymentResponse(payment)
	}
	return c.JSON(http.StatusOK, response)
}

// UpdatePayment handles PUT /api/v1/payments/:id
func (h *PaymentHandler) UpdatePayment(c echo.Context) error {
	id := c.Param("id")

	input, err := h.bindInput(c)
	if err != nil {
		return err
	}

	payment, err := h.paymentService.UpdatePayment(id, input)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			return NewNotFoundError(c, "Payment not found")
		}
		if fieldErr := paymentValidationError(c, err); fieldErr != nil {
			return fieldErr
		}
		log.Error().Err(err).Str("payment_id", id).Msg("Failed to update payment")
		return NewInternalError(c, "Failed to update payment")
	}

	log.Info().Str("payment_id", payment.ID).Msg("Payment updated")

	return c.JSON(http.StatusOK, toPaymentResponse(payment))
}

// DeletePayment handles DELETE /api/v1/payments/:id
func (h *PaymentHandler) DeletePayment(c echo.Context) error {
	id := c.Param("id")

	if err := h.paymentService.DeletePayment(id); err != nil {
		log.Error().Err(err).Str("payment_id", id).Msg("Failed to delete payment")
		return NewInternalError(c, "Failed to delete payment")
	}

	log.Info().Str("payment_id", id).Msg("Payment deleted")
	return c.NoContent(http.StatusNoContent)
}

func paymentValidationError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrWeekRequired) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "week", Message: "Week is required"},
		})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "week", Message: "Must be in ISO week format (e.g. 2024-W05)"},
		})
	}
	if errors.Is(err, domain.ErrNameRequired) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "workerName", Message: "Worker name is required"},
		})
	}
	if errors.Is(err, domain.ErrNameTooLong) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "workerName", Message: "Worker name is too long"},
		})
	}
	if errors.Is(err, domain.ErrInvalidAmount) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be positive"},
		})
	}
	return nil
}

func toPaymentResponse(payment *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:         payment.ID,
		Week:       payment.Week,
		WorkerName: payment.WorkerName,
		Amount:     payment.Amount.StringFixed(2),
		Notes:      payment.Notes,
		CreatedAt:  payment.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  payment.UpdatedAt.Format(time.RFC3339),
	}
}
