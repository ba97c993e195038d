package handlers

import (
	"bytes"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/warehouse/internal/domain/models"
	"github.com/mamadbah2/warehouse/internal/service/reporting"
)

// InventoryService creates and lists warehouse work sessions.
type InventoryService interface {
	Create(ctx context.Context, record models.InventoryRecord) (string, error)
	List(ctx context.Context, period models.Period) ([]models.InventoryRecord, error)
}

// InventoryHandler serves the inventory endpoints.
type InventoryHandler struct {
	svc    InventoryService
	now    Clock
	logger *zap.Logger
}

// NewInventoryHandler constructs the inventory HTTP adapter.
func NewInventoryHandler(svc InventoryService, now Clock, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{svc: svc, now: now, logger: logger}
}

// Create stores a submitted work session.
func (h *InventoryHandler) Create(c *gin.Context) {
	var record models.InventoryRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		h.logger.Warn("invalid inventory payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	id, err := h.svc.Create(c.Request.Context(), record)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Inventory saved", "id": id})
}

// List returns the selected month's records, newest first.
func (h *InventoryHandler) List(c *gin.Context) {
	period, err := periodFromQuery(c, h.now)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	records, err := h.svc.List(c.Request.Context(), period)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// Export downloads the selected month as CSV or XLSX.
func (h *InventoryHandler) Export(c *gin.Context) {
	period, err := periodFromQuery(c, h.now)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	format, err := reporting.ParseFormat(c.Query("format"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	records, err := h.svc.List(c.Request.Context(), period)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	rows := reporting.ExportRows(records)
	var buf bytes.Buffer
	if format == reporting.FormatXLSX {
		err = reporting.WriteXLSX(&buf, rows)
	} else {
		err = reporting.WriteCSV(&buf, rows)
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+reporting.ExportFileName(period, format)+`"`)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
