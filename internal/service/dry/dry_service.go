package dry

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/warehouse/internal/domain/models"
)

// Repository is the storage the dry delivery service needs.
type Repository interface {
	CreateDry(ctx context.Context, record models.DryRecord) (string, error)
	ListDry(ctx context.Context, period *models.Period) ([]models.DryRecord, error)
}

// Service records dry-goods deliveries.
type Service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

// NewService wires a new dry delivery service instance.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, now: time.Now, logger: logger}
}

// Create stores the record on behalf of createdBy, stamping createdAt with the
// server clock. A zero createdBy leaves the field unset.
func (s *Service) Create(ctx context.Context, record models.DryRecord, createdBy primitive.ObjectID) (string, error) {
	if err := record.Validate(); err != nil {
		return "", err
	}
	record.SubmittedDateTime = record.SubmittedDateTime.UTC()
	record.CreatedAt = s.now().UTC()
	record.CreatedBy = nil
	if !createdBy.IsZero() {
		owner := createdBy
		record.CreatedBy = &owner
	}

	id, err := s.repo.CreateDry(ctx, record)
	if err != nil {
		return "", fmt.Errorf("create dry record: %w", err)
	}

	s.logger.Info("dry record created",
		zap.String("id", id),
		zap.Time("submitted_at", record.SubmittedDateTime),
		zap.Int("stores", len(record.Stores)),
	)
	return id, nil
}

// List returns dry records newest first; a nil period lists everything.
func (s *Service) List(ctx context.Context, period *models.Period) ([]models.DryRecord, error) {
	records, err := s.repo.ListDry(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("list dry records: %w", err)
	}
	return records, nil
}
