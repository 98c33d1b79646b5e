package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/obra-tracker/obra-backend/internal/domain"
	"github.com/obra-tracker/obra-backend/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BudgetItemHandler handles budget item HTTP requests, including the
// purchase lifecycle and receipt images
type BudgetItemHandler struct {
	itemService  *service.BudgetItemService
	imageService *service.ImageService
}

// NewBudgetItemHandler creates a new BudgetItemHandler
func NewBudgetItemHandler(itemService *service.BudgetItemService, imageService *service.ImageService) *BudgetItemHandler {
	return &BudgetItemHandler{itemService: itemService, imageService: imageService}
}

// BudgetItemRequest represents the create/update item request body.
// Purchase state and actual value move through dedicated endpoints.
type BudgetItemRequest struct {
	Name           string  `json:"name"`
	Description    *string `json:"description,omitempty"`
	EstimatedValue string  `json:"estimatedValue"`
}

// PurchaseRequest represents the purchase toggle request body
type PurchaseRequest struct {
	Purchased bool `json:"purchased"`
}

// ActualValueRequest represents the actual value request body
type ActualValueRequest struct {
	ActualValue  string `json:"actualValue"`
	PaidByCard   bool   `json:"paidByCard"`
	Installments *int32 `json:"installments,omitempty"`
}

// BudgetItemResponse represents a budget item in API responses
type BudgetItemResponse struct {
	ID             string  `json:"id"`
	BudgetID       string  `json:"budgetId"`
	Name           string  `json:"name"`
	Description    *string `json:"description,omitempty"`
	EstimatedValue string  `json:"estimatedValue"`
	ActualValue    *string `json:"actualValue,omitempty"`
	Purchased      bool    `json:"purchased"`
	PaidByCard     bool    `json:"paidByCard"`
	Installments   *int32  `json:"installments,omitempty"`
	PurchasedAt    *string `json:"purchasedAt,omitempty"`
	State          string  `json:"state"`
	Variance       *string `json:"variance,omitempty"`
	HasImage       bool    `json:"hasImage"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// ItemImageResponse represents the image upload/URL response
type ItemImageResponse struct {
	ThumbnailURL string `json:"thumbnailUrl"`
	DisplayURL   string `json:"displayUrl"`
}

func (h *BudgetItemHandler) bindInput(c echo.Context) (*service.BudgetItemInput, error) {
	var req BudgetItemRequest
	if err := c.Bind(&req); err != nil {
		return nil, NewValidationError(c, "Invalid request body", nil)
	}

	estimated, err := decimal.NewFromString(req.EstimatedValue)
	if err != nil {
		return nil, NewValidationError(c, "Invalid estimated value", []ValidationError{
			{Field: "estimatedValue", Message: "Must be a valid decimal number"},
		})
	}

	return &service.BudgetItemInput{
		Name:           req.Name,
		Description:    req.Description,
		EstimatedValue: estimated,
	}, nil
}

// CreateItem handles POST /api/v1/budgets/:id/items
func (h *BudgetItemHandler) CreateItem(c echo.Context) error {
	budgetID := c.Param("id")

	input, err := h.bindInput(c)
	if err != nil {
		return err
	}

	item, err := h.itemService.CreateItem(budgetID, input)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		if fieldErr := itemValidationError(c, err); fieldErr != nil {
			return fieldErr
		}
		log.Error().Err(err).Str("budget_id", budgetID).Msg("Failed to create budget item")
		return NewInternalError(c, "Failed to create budget item")
	}

	log.Info().Str("item_id", item.ID).Str("budget_id", budgetID).Msg("Budget item created")

	return c.JSON(http.StatusCreated, toBudgetItemResponse(item))
}

// GetItems handles GET /api/v1/budgets/:id/items
func (h *BudgetItemHandler) GetItems(c echo.Context) error {
	budgetID := c.Param("id")

	items, err := h.itemService.GetItemsByBudget(budgetID)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Str("budget_id", budgetID).Msg("Failed to get budget items")
		return NewInternalError(c, "Failed to get budget items")
	}

	response := make([]BudgetItemResponse, len(items))
	for i, item := range items {
		response[i] = toBudgetItemResponse(item)
	}
	return c.JSON(http.StatusOK, response)
}

// GetItem handles GET /api/v1/budget-items/:id
func (h *BudgetItemHandler) GetItem(c echo.Context) error {
	id := c.Param("id")

	item, err := h.itemService.GetItem(id)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetItemNotFound) {
			return NewNotFoundError(c, "Budget item not found")
		}
		log.Error().Err(err).Str("item_id", id).Msg("Failed to get budget item")
		return NewInternalError(c, "Failed to get budget item")
	}

	return c.JSON(http.StatusOK, toBudgetItemResponse(item))
}

// UpdateItem handles PUT /api/v1/budget-items/:id
func (h *BudgetItemHandler) UpdateItem(c echo.Context) error {
	id := c.Param("id")

	input, err := h.bindInput(c)
	if err != nil {
		return err
	}

	item, err := h.itemService.UpdateItem(id, input)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetItemNotFound) {
			return NewNotFoundError(c, "Budget item not found")
		}
		if fieldErr := itemValidationError(c, err); fieldErr != nil {
			return fieldErr
		}
		log.Error().Err(err).Str("item_id", id).Msg("Failed to update budget item")
		return NewInternalError(c, "Failed to update budget item")
	}

	log.Info().Str("item_id", item.ID).Msg("Budget item updated")

	return c.JSON(http.StatusOK, toBudgetItemResponse(item))
}

// SetPurchased handles PATCH /api/v1/budget-items/:id/purchase
// Unmarking wipes the actual value, card flag, installments and purchase date.
func (h *BudgetItemHandler) SetPurchased(c echo.Context) error {
	id := c.Param("id")

	var req PurchaseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	item, err := h.itemService.SetPurchased(id, req.Purchased)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetItemNotFound) {
			return NewNotFoundError(c, "Budget item not found")
		}
		log.Error().Err(err).Str("item_id", id).Msg("Failed to toggle purchase")
		return NewInternalError(c, "Failed to toggle purchase")
	}

	log.Info().Str("item_id", item.ID).Bool("purchased", item.Purchased).Msg("Purchase state changed")

	return c.JSON(http.StatusOK, toBudgetItemResponse(item))
}

// SetActualValue handles PATCH /api/v1/budget-items/:id/actual-value
func (h *BudgetItemHandler) SetActualValue(c echo.Context) error {
	id := c.Param("id")

	var req ActualValueRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	value, err := decimal.NewFromString(req.ActualValue)
	if err != nil {
		return NewValidationError(c, "Invalid actual value", []ValidationError{
			{Field: "actualValue", Message: "Must be a valid decimal number"},
		})
	}

	item, err := h.itemService.SetActualValue(id, value, req.PaidByCard, req.Installments)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetItemNotFound) {
			return NewNotFoundError(c, "Budget item not found")
		}
		if errors.Is(err, domain.ErrItemNotPurchased) {
			return NewConflictError(c, "Item must be marked purchased before pricing")
		}
		if errors.Is(err, domain.ErrInvalidAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "actualValue", Message: "Actual value must be positive"},
			})
		}
		if errors.Is(err, domain.ErrInstallmentsRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "installments", Message: "Card purchases require at least 1 installment"},
			})
		}
		log.Error().Err(err).Str("item_id", id).Msg("Failed to set actual value")
		return NewInternalError(c, "Failed to set actual value")
	}

	log.Info().Str("item_id", item.ID).Str("actual_value", req.ActualValue).Msg("Actual value set")

	return c.JSON(http.StatusOK, toBudgetItemResponse(item))
}

// DeleteItem handles DELETE /api/v1/budget-items/:id
func (h *BudgetItemHandler) DeleteItem(c echo.Context) error {
	id := c.Param("id")

	if err := h.itemService.DeleteItem(id); err != nil {
		log.Error().Err(err).Str("item_id", id).Msg("Failed to delete budget item")
		return NewInternalError(c, "Failed to delete budget item")
	}

	log.Info().Str("item_id", id).Msg("Budget item deleted")
	return c.NoContent(http.StatusNoContent)
}

// UploadImage handles POST /api/v1/budget-items/:id/image
func (h *BudgetItemHandler) UploadImage(c echo.Context) error {
	id := c.Param("id")

	if !h.imageService.IsEnabled() {
		return NewServiceUnavailableError(c, "Image uploads are disabled (storage not configured)")
	}

	item, err := h.itemService.GetItem(id)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetItemNotFound) {
			return NewNotFoundError(c, "Budget item not found")
		}
		log.Error().Err(err).Str("item_id", id).Msg("Failed to get budget item")
		return NewInternalError(c, "Failed to get budget item")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "No file provided", []ValidationError{
			{Field: "file", Message: "File is required"},
		})
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return NewInternalError(c, "Failed to process file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		return NewInternalError(c, "Failed to read file")
	}

	variants, err := h.imageService.ProcessAndUpload(c.Request().Context(), item.ID, data, file.Filename)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImageTooLarge):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "File too large. Maximum size is 5MB"},
			})
		case errors.Is(err, service.ErrInvalidFormat):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "Invalid format. Supported: JPEG, PNG"},
			})
		case errors.Is(err, service.ErrImageTooSmall):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "Image too small. Minimum 50x50 pixels"},
			})
		case errors.Is(err, service.ErrInvalidImageData):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "Invalid image data"},
			})
		default:
			log.Error().Err(err).Str("item_id", id).Msg("Failed to upload item image")
			return NewInternalError(c, "Failed to upload image")
		}
	}

	// Replace any previous image before attaching the new key.
	if item.ImageKey != nil {
		if err := h.imageService.DeleteAllVariants(c.Request().Context(), *item.ImageKey); err != nil {
			log.Warn().Err(err).Str("item_id", id).Msg("Failed to delete previous item image")
		}
	}

	if _, err := h.itemService.SetImageKey(id, &variants.BaseKey); err != nil {
		log.Error().Err(err).Str("item_id", id).Msg("Failed to attach image to item")
		return NewInternalError(c, "Failed to attach image")
	}

	log.Info().Str("item_id", id).Str("image_key", variants.BaseKey).Msg("Item image uploaded")

	return c.JSON(http.StatusCreated, ItemImageResponse{
		ThumbnailURL: variants.ThumbnailURL,
		DisplayURL:   variants.DisplayURL,
	})
}

// GetImage handles GET /api/v1/budget-items/:id/image
// Returns fresh presigned URLs for the item's stored image.
func (h *BudgetItemHandler) GetImage(c echo.Context) error {
	id := c.Param("id")

	if !h.imageService.IsEnabled() {
		return NewServiceUnavailableError(c, "Image storage not configured")
	}

	item, err := h.itemService.GetItem(id)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetItemNotFound) {
			return NewNotFoundError(c, "Budget item not found")
		}
		log.Error().Err(err).Str("item_id", id).Msg("Failed to get budget item")
		return NewInternalError(c, "Failed to get budget item")
	}
	if item.ImageKey == nil {
		return NewNotFoundError(c, "Item has no image")
	}

	variants, err := h.imageService.URLs(c.Request().Context(), *item.ImageKey)
	if err != nil {
		log.Error().Err(err).Str("item_id", id).Msg("Failed to presign item image")
		return NewInternalError(c, "Failed to generate image URLs")
	}

	return c.JSON(http.StatusOK, ItemImageResponse{
		ThumbnailURL: variants.ThumbnailURL,
		DisplayURL:   variants.DisplayURL,
	})
}

// DeleteImage handles DELETE /api/v1/budget-items/:id/image
func (h *BudgetItemHandler) DeleteImage(c echo.Context) error {
	id := c.Param("id")

	if !h.imageService.IsEnabled() {
		return NewServiceUnavailableError(c, "Image storage not configured")
	}

	item, err := h.itemService.GetItem(id)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetItemNotFound) {
			return NewNotFoundError(c, "Budget item not found")
		}
		log.Error().Err(err).Str("item_id", id).Msg("Failed to get budget item")
		return NewInternalError(c, "Failed to get budget item")
	}
	if item.ImageKey == nil {
		return c.NoContent(http.StatusNoContent)
	}

	if err := h.imageService.DeleteAllVariants(c.Request().Context(), *item.ImageKey); err != nil {
		log.Error().Err(err).Str("item_id", id).Msg("Failed to delete item image")
		return NewInternalError(c, "Failed to delete image")
	}
	if _, err := h.itemService.SetImageKey(id, nil); err != nil {
		log.Error().Err(err).Str("item_id", id).Msg("Failed to detach image from item")
		return NewInternalError(c, "Failed to detach image")
	}

	log.Info().Str("item_id", id).Msg("Item image deleted")
	return c.NoContent(http.StatusNoContent)
}

func itemValidationError(c echo.Context, err error) error {
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
	if errors.Is(err, domain.ErrInvalidAmount) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "estimatedValue", Message: "Estimated value must be positive"},
		})
	}
	return nil
}

func toBudgetItemResponse(item *domain.BudgetItem) BudgetItemResponse {
	resp := BudgetItemResponse{
		ID:             item.ID,
		BudgetID:       item.BudgetID,
		Name:           item.Name,
		Description:    item.Description,
		EstimatedValue: item.EstimatedValue.StringFixed(2),
		Purchased:      item.Purchased,
		PaidByCard:     item.PaidByCard,
		Installments:   item.Installments,
		State:          string(item.State()),
		HasImage:       item.ImageKey != nil,
		CreatedAt:      item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      item.UpdatedAt.Format(time.RFC3339),
	}
	if item.ActualValue != nil {
		actual := item.ActualValue.StringFixed(2)
		resp.ActualValue = &actual
		variance := item.Variance().StringFixed(2)
		resp.Variance = &variance
	}
	if item.PurchasedAt != nil {
		purchasedAt := item.PurchasedAt.Format(time.RFC3339)
		resp.PurchasedAt = &purchasedAt
	}
	return resp
}
