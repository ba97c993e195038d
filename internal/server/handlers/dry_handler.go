package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/warehouse/internal/domain/models"
)

// DryService creates and lists dry-goods deliveries.
type DryService interface {
	Create(ctx context.Context, record models.DryRecord, createdBy primitive.ObjectID) (string, error)
	List(ctx context.Context, period *models.Period) ([]models.DryRecord, error)
}

// DryHandler serves the dry delivery endpoints.
type DryHandler struct {
	svc    DryService
	logger *zap.Logger
}

// NewDryHandler constructs the dry delivery HTTP adapter.
func NewDryHandler(svc DryService, logger *zap.Logger) *DryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DryHandler{svc: svc, logger: logger}
}

// Create stores a delivery on behalf of the logged in user.
func (h *DryHandler) Create(c *gin.Context) {
	var record models.DryRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		h.logger.Warn("invalid dry payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	session, _ := SessionFrom(c)
	id, err := h.svc.Create(c.Request.Context(), record, session.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Dry delivery saved", "id": id})
}

// List returns deliveries newest first, restricted to a month only when
// both year and month are given.
func (h *DryHandler) List(c *gin.Context) {
	period, err := optionalPeriodFromQuery(c)
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
