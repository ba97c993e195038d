package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/warehouse/internal/domain/models"
	"github.com/mamadbah2/warehouse/internal/service/reporting"
)

// ReportService builds the admin month reports.
type ReportService interface {
	Dashboard(ctx context.Context, period models.Period) (reporting.Dashboard, error)
	WarehouseLog(ctx context.Context, period models.Period) (reporting.WarehouseLog, error)
	Deliveries(ctx context.Context, period models.Period, source reporting.Source) (reporting.DeliveryReport, error)
}

// ReportHandler serves the admin report endpoints.
type ReportHandler struct {
	svc    ReportService
	now    Clock
	logger *zap.Logger
}

// NewReportHandler constructs the reports HTTP adapter.
func NewReportHandler(svc ReportService, now Clock, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, now: now, logger: logger}
}

func (h *ReportHandler) Dashboard(c *gin.Context) {
	period, err := periodFromQuery(c, h.now)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	dash, err := h.svc.Dashboard(c.Request.Context(), period)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

func (h *ReportHandler) Warehouse(c *gin.Context) {
	period, err := periodFromQuery(c, h.now)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	log, err := h.svc.WarehouseLog(c.Request.Context(), period)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

func (h *ReportHandler) Deliveries(c *gin.Context) {
	period, err := periodFromQuery(c, h.now)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	source, err := reporting.ParseSource(c.Query("source"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	report, err := h.svc.Deliveries(c.Request.Context(), period, source)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
