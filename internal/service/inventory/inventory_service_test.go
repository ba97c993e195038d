package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mamadbah2/warehouse/internal/domain/models"
	"github.com/mamadbah2/warehouse/internal/repository/memory"
)

type brokenRepo struct{}

func (brokenRepo) CreateInventory(context.Context, models.InventoryRecord) (string, error) {
	return "", errors.Join(models.ErrStorage, errors.New("disk full"))
}

func (brokenRepo) ListInventory(context.Context, models.Period) ([]models.InventoryRecord, error) {
	return nil, errors.Join(models.ErrStorage, errors.New("disk full"))
}

func TestCreateThenList(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New(), zaptest.NewLogger(t))

	dubai := time.FixedZone("GST", 4*3600)
	rec := models.InventoryRecord{
		SubmittedDateTime: time.Date(2025, 1, 5, 14, 0, 0, 0, dubai),
		LaborCount:        3,
		StartTime:         "08:00",
		EndTime:           "17:00",
		Labors:            []models.Labor{{Name: "Ali", Cost: 10}, {Name: "Omar", Cost: 0}},
		Receiving:         []models.Item{{Name: "Rice", Unit: "bags", Qty: 20}},
		Loading:           []models.Item{{Name: "Oil", Unit: "cans", Qty: 4}},
		Stores:            []models.Store{{Shop: "Shop A", Qty: 3}, {Shop: "", Qty: 0}},
	}

	id, err := svc.Create(ctx, rec)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	records, err := svc.List(ctx, models.MonthPeriod(2025, time.January))
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, id, got.ID.Hex())
	assert.Equal(t, time.UTC, got.SubmittedDateTime.Location())
	assert.True(t, rec.SubmittedDateTime.Equal(got.SubmittedDateTime))
	assert.Equal(t, rec.Labors, got.Labors)
	assert.Equal(t, rec.Receiving, got.Receiving)
	assert.Equal(t, rec.Loading, got.Loading)
	assert.Equal(t, rec.Stores, got.Stores)
	assert.Equal(t, models.Count(3), got.LaborCount)
}

func TestCreateRequiresSubmittedDateTime(t *testing.T) {
	svc := NewService(memory.New(), nil)

	_, err := svc.Create(context.Background(), models.InventoryRecord{})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestStorageErrorsAreWrapped(t *testing.T) {
	svc := NewService(brokenRepo{}, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, models.InventoryRecord{SubmittedDateTime: time.Now()})
	assert.ErrorIs(t, err, models.ErrStorage)

	_, err = svc.List(ctx, models.MonthPeriod(2025, time.January))
	assert.ErrorIs(t, err, models.ErrStorage)
}
