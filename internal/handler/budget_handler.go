package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/obra-tracker/obra-backend/internal/domain"
	"github.com/obra-tracker/obra-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// BudgetHandler handles budget HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// BudgetRequest represents the create/update budget request body
type BudgetRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description *string `json:"description,omitempty"`
}

// BudgetResponse represents a budget in API responses
type BudgetResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	CategoryName string  `json:"categoryName"`
	Description  *string `json:"description,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// BudgetSummaryResponse represents the budget reconciliation in API responses
type BudgetSummaryResponse struct {
	TotalItems     int    `json:"totalItems"`
	PurchasedItems int    `json:"purchasedItems"`
	EstimatedTotal string `json:"estimatedTotal"`
	ActualTotal    string `json:"actualTotal"`
	Variance       string `json:"variance"`
}

func (h *BudgetHandler) bindInput(c echo.Context) (*service.BudgetInput, error) {
	var req BudgetRequest
	if err := c.Bind(&req); err != nil {
		return nil, NewValidationError(c, "Invalid request body", nil)
	}

	return &service.BudgetInput{
		Name:        req.Name,
		Category:    domain.BudgetCategory(req.Category),
		Description: req.Description,
	}, nil
}

// CreateBudget handles POST /api/v1/budgets
func (h *BudgetHandler) CreateBudget(c echo.Context) error {
	input, err := h.bindInput(c)
	if err != nil {
		return err
	}

	budget, err := h.budgetService.CreateBudget(input)
	if err != nil {
		if fieldErr := budgetValidationError(c, err); fieldErr != nil {
			return fieldErr
		}
		log.Error().Err(err).Msg("Failed to create budget")
		return NewInternalError(c, "Failed to create budget")
	}

	log.Info().Str("budget_id", budget.ID).Str("category", string(budget.Category)).Msg("Budget created")

	return c.JSON(http.StatusCreated, toBudgetResponse(budget))
}

// GetBudgets handles GET /api/v1/budgets
func (h *BudgetHandler) GetBudgets(c echo.Context) error {
	budgets, err := h.budgetService.GetBudgets()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get budgets")
		return NewInternalError(c, "Failed to get budgets")
	}

	response := make([]BudgetResponse, len(budgets))
	for i, budget := range budgets {
		response[i] = toBudgetResponse(budget)
	}
	return c.JSON(http.StatusOK, response)
}

// GetBudget handles GET /api/v1/budgets/:id
func (h *BudgetHandler) GetBudget(c echo.Context) error {
	id := c.Param("id")

	budget, err := h.budgetService.GetBudget(id)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Str("budget_id", id).Msg("Failed to get budget")
		return NewInternalError(c, "Failed to get budget")
	}

	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// UpdateBudget handles PUT /api/v1/budgets/:id
func (h *BudgetHandler) UpdateBudget(c echo.Context) error {
	id := c.Param("id")

	input, err := h.bindInput(c)
	if err != nil {
		return err
	}

	budget, err := h.budgetService.UpdateBudget(id, input)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		if fieldErr := budgetValidationError(c, err); fieldErr != nil {
			return fieldErr
		}
		log.Error().Err(err).Str("budget_id", id).Msg("Failed to update budget")
		return NewInternalError(c, "Failed to update budget")
	}

	log.Info().Str("budget_id", budget.ID).Msg("Budget updated")

	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// DeleteBudget handles DELETE /api/v1/budgets/:id
// The budget's items are deleted first; a failure partway leaves the budget
// and remaining items intact.
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	id := c.Param("id")

	if err := h.budgetService.DeleteBudget(id); err != nil {
		log.Error().Err(err).Str("budget_id", id).Msg("Failed to delete budget")
		return NewInternalError(c, "Failed to delete budget")
	}

	log.Info().Str("budget_id", id).Msg("Budget deleted")
	return c.NoContent(http.StatusNoContent)
}

// GetBudgetSummary handles GET /api/v1/budgets/:id/summary
func (h *BudgetHandler) GetBudgetSummary(c echo.Context) error {
	id := c.Param("id")

	summary, err := h.budgetService.GetBudgetSummary(id)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Str("budget_id", id).Msg("Failed to get budget summary")
		return NewInternalError(c, "Failed to get budget summary")
	}

	return c.JSON(http.StatusOK, BudgetSummaryResponse{
		TotalItems:     summary.TotalItems,
		PurchasedItems: summary.PurchasedItems,
		EstimatedTotal: summary.EstimatedTotal.StringFixed(2),
		ActualTotal:    summary.ActualTotal.StringFixed(2),
		Variance:       summary.Variance.StringFixed(2),
	})
}

func budgetValidationError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrNameRequired) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is required"},
		})
	}
	if errors.Is(err, domain.ErrNameTooLong) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is too long"},
		})
	}
	if errors.Is(err, domain.ErrInvalidCategory) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "category", Message: "Unknown budget category"},
		})
	}
	return nil
}

func toBudgetResponse(budget *domain.Budget) BudgetResponse {
	return BudgetResponse{
		ID:           budget.ID,
		Name:         budget.Name,
		Category:     string(budget.Category),
		CategoryName: budget.Category.DisplayName(),
		Description:  budget.Description,
		CreatedAt:    budget.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    budget.UpdatedAt.Format(time.RFC3339),
	}
}
