package dry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap/zaptest"

	"github.com/mamadbah2/warehouse/internal/domain/models"
	"github.com/mamadbah2/warehouse/internal/repository/memory"
)

func TestCreateStampsOwnerAndClock(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New(), zaptest.NewLogger(t))
	clock := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	owner := primitive.NewObjectID()
	forged := primitive.NewObjectID()
	rec := models.DryRecord{
		SubmittedDateTime: time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC),
		Stores:            []models.Store{{Shop: "Shop A", Qty: 2}},
		CreatedBy:         &forged,
		CreatedAt:         time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	id, err := svc.Create(ctx, rec, owner)
	require.NoError(t, err)

	records, err := svc.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, id, got.ID.Hex())
	require.NotNil(t, got.CreatedBy)
	assert.Equal(t, owner, *got.CreatedBy)
	assert.Equal(t, clock, got.CreatedAt)
	assert.Equal(t, rec.Stores, got.Stores)
}

func TestCreateWithoutOwner(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New(), nil)

	_, err := svc.Create(ctx, models.DryRecord{SubmittedDateTime: time.Now()}, primitive.NilObjectID)
	require.NoError(t, err)

	records, err := svc.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].CreatedBy)
}

func TestCreateRequiresSubmittedDateTime(t *testing.T) {
	svc := NewService(memory.New(), nil)

	_, err := svc.Create(context.Background(), models.DryRecord{}, primitive.NewObjectID())
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestListFiltersByPeriod(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New(), nil)

	for _, ts := range []time.Time{
		time.Date(2025, 1, 31, 23, 59, 0, 0, time.UTC),
		time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 14, 12, 0, 0, 0, time.UTC),
	} {
		_, err := svc.Create(ctx, models.DryRecord{SubmittedDateTime: ts}, primitive.NilObjectID)
		require.NoError(t, err)
	}

	feb := models.MonthPeriod(2025, time.February)
	records, err := svc.List(ctx, &feb)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 14, records[0].SubmittedDateTime.Day())

	all, err := svc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
