package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/warehouse/internal/domain/models"
)

func at(day, hour int) time.Time {
	return time.Date(2025, time.February, day, hour, 0, 0, 0, time.UTC)
}

func TestListInventoryFiltersAndSortsNewestFirst(t *testing.T) {
	repo := New()
	ctx := context.Background()

	for _, ts := range []time.Time{
		at(3, 9),
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), // next month, excluded
		at(1, 0), // first instant, included
		at(20, 12),
		time.Date(2025, 1, 31, 23, 59, 0, 0, time.UTC),
	} {
		_, err := repo.CreateInventory(ctx, models.InventoryRecord{SubmittedDateTime: ts})
		require.NoError(t, err)
	}

	got, err := repo.ListInventory(ctx, models.MonthPeriod(2025, time.February))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, at(20, 12), got[0].SubmittedDateTime)
	assert.Equal(t, at(3, 9), got[1].SubmittedDateTime)
	assert.Equal(t, at(1, 0), got[2].SubmittedDateTime)
}

func TestCreateInventoryRoundTripKeepsArrays(t *testing.T) {
	repo := New()
	ctx := context.Background()

	rec := models.InventoryRecord{
		SubmittedDateTime: at(5, 10),
		LaborCount:        2,
		StartTime:         "08:00",
		EndTime:           "16:00",
		Remarks:           "ok",
		Labors:            []models.Labor{{Name: "A", Cost: 10}, {Name: "B", Cost: 5}},
		Receiving:         []models.Item{{Name: "Rice", Unit: "KG", Qty: 25}},
		Loading:           []models.Item{{Name: "Rice", Unit: "KG", Qty: 20}},
		Stores:            []models.Store{{Shop: "Shop A", Qty: 12}, {Shop: "", Qty: 8}},
	}

	id, err := repo.CreateInventory(ctx, rec)
	require.NoError(t, err)

	// Mutating the caller's copy must not leak into the store.
	rec.Labors[0].Cost = 999

	got, err := repo.ListInventory(ctx, models.MonthPeriod(2025, time.February))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID.Hex())
	assert.Equal(t, models.Number(10), got[0].Labors[0].Cost)
	assert.Equal(t, rec.Receiving, got[0].Receiving)
	assert.Equal(t, rec.Loading, got[0].Loading)
	assert.Equal(t, rec.Stores, got[0].Stores)
	assert.Equal(t, "ok", got[0].Remarks)
}

func TestListDryWithoutPeriodReturnsAll(t *testing.T) {
	repo := New()
	ctx := context.Background()

	_, err := repo.CreateDry(ctx, models.DryRecord{SubmittedDateTime: at(1, 1)})
	require.NoError(t, err)
	_, err = repo.CreateDry(ctx, models.DryRecord{SubmittedDateTime: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	all, err := repo.ListDry(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.True(t, all[0].SubmittedDateTime.After(all[1].SubmittedDateTime))

	p := models.MonthPeriod(2025, time.February)
	feb, err := repo.ListDry(ctx, &p)
	require.NoError(t, err)
	assert.Len(t, feb, 1)
}

func TestUsers(t *testing.T) {
	repo := New()
	ctx := context.Background()

	_, err := repo.FindUserByUsername(ctx, "admin")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = repo.CreateUser(ctx, models.User{Username: "admin", Role: models.RoleAdmin})
	require.NoError(t, err)

	_, err = repo.CreateUser(ctx, models.User{Username: "admin"})
	assert.ErrorIs(t, err, models.ErrConflict)

	user, err := repo.FindUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.False(t, user.ID.IsZero())
}

func TestConcurrentCreates(t *testing.T) {
	repo := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.CreateInventory(ctx, models.InventoryRecord{SubmittedDateTime: at(1+i%28, 0)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := repo.ListInventory(ctx, models.MonthPeriod(2025, time.February))
	require.NoError(t, err)
	assert.Len(t, got, 50)
}

func TestCanceledContextIsStorageError(t *testing.T) {
	repo := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.CreateInventory(ctx, models.InventoryRecord{SubmittedDateTime: at(1, 0)})
	assert.ErrorIs(t, err, models.ErrStorage)
}
