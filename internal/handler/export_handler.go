package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/obra-tracker/obra-backend/internal/domain"
	"github.com/obra-tracker/obra-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// ExportHandler handles backup export/import HTTP requests
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ImportResponse represents the import result in API responses
type ImportResponse struct {
	Imported service.ImportResult `json:"imported"`
	Partial  bool                 `json:"partial"`
	Detail   string               `json:"detail,omitempty"`
}

// Export handles GET /api/v1/export
func (h *ExportHandler) Export(c echo.Context) error {
	bundle, err := h.exportService.Export()
	if err != nil {
		log.Error().Err(err).Msg("Failed to export backup bundle")
		return NewInternalError(c, "Failed to export data")
	}

	log.Info().
		Int("expenses", len(bundle.Expenses)).
		Int("payments", len(bundle.Payments)).
		Int("exchanges", len(bundle.Exchanges)).
		Int("progress", len(bundle.Progress)).
		Msg("Backup exported")

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="obra-backup.json"`)
	return c.JSON(http.StatusOK, bundle)
}

// Import handles POST /api/v1/import
// Import is additive: records are appended, never replaced. A failure partway
// keeps everything written so far and reports a partial result.
func (h *ExportHandler) Import(c echo.Context) error {
	var bundle domain.ExportBundle
	if err := c.Bind(&bundle); err != nil {
		return NewValidationError(c, "Invalid backup bundle", nil)
	}

	result, err := h.exportService.Import(&bundle)
	if err != nil {
		log.Error().Err(err).Msg("Import stopped partway")
		return c.JSON(http.StatusOK, ImportResponse{
			Imported: *result,
			Partial:  true,
			Detail:   err.Error(),
		})
	}

	log.Info().
		Int("expenses", result.Expenses).
		Int("payments", result.Payments).
		Int("exchanges", result.Exchanges).
		Int("progress", result.Progress).
		Msg("Backup imported")

	return c.JSON(http.StatusOK, ImportResponse{Imported: *result})
}
