package inventory

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/warehouse/internal/domain/models"
)

// Repository is the storage the inventory service needs.
type Repository interface {
	CreateInventory(ctx context.Context, record models.InventoryRecord) (string, error)
	ListInventory(ctx context.Context, period models.Period) ([]models.InventoryRecord, error)
}

// Service records warehouse work sessions.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService wires a new inventory service instance.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Create stores the record as submitted and returns its id.
func (s *Service) Create(ctx context.Context, record models.InventoryRecord) (string, error) {
	if err := record.Validate(); err != nil {
		return "", err
	}
	record.SubmittedDateTime = record.SubmittedDateTime.UTC()

	id, err := s.repo.CreateInventory(ctx, record)
	if err != nil {
		return "", fmt.Errorf("create inventory record: %w", err)
	}

	s.logger.Info("inventory record created",
		zap.String("id", id),
		zap.Time("submitted_at", record.SubmittedDateTime),
		zap.Int("labors", len(record.Labors)),
		zap.Int("stores", len(record.Stores)),
	)
	return id, nil
}

// List returns the month's records, newest first.
func (s *Service) List(ctx context.Context, period models.Period) ([]models.InventoryRecord, error) {
	records, err := s.repo.ListInventory(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("list inventory records: %w", err)
	}
	return records, nil
}
