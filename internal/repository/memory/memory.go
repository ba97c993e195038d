// Package memory is an in-process storage backend used for local runs
// (DATA_BACKEND=memory) and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/warehouse/internal/domain/models"
	"github.com/mamadbah2/warehouse/internal/repository"
)

var _ repository.Repository = (*Repository)(nil)

// Repository keeps every collection in memory.
type Repository struct {
	mu        sync.RWMutex
	inventory []models.InventoryRecord
	dry       []models.DryRecord
	users     map[string]models.User
}

// New returns an empty repository.
func New() *Repository {
	return &Repository{users: make(map[string]models.User)}
}

func (r *Repository) EnsureIndexes(context.Context) error { return nil }

func (r *Repository) Close(context.Context) error { return nil }

func (r *Repository) CreateInventory(ctx context.Context, record models.InventoryRecord) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", models.ErrStorage, err)
	}

	record = cloneInventory(record)
	record.ID = primitive.NewObjectID()

	r.mu.Lock()
	r.inventory = append(r.inventory, record)
	r.mu.Unlock()

	return record.ID.Hex(), nil
}

func (r *Repository) ListInventory(ctx context.Context, period models.Period) ([]models.InventoryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrStorage, err)
	}

	r.mu.RLock()
	out := make([]models.InventoryRecord, 0, len(r.inventory))
	for _, rec := range r.inventory {
		if period.Contains(rec.SubmittedDateTime) {
			out = append(out, cloneInventory(rec))
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedDateTime.After(out[j].SubmittedDateTime)
	})
	return out, nil
}

func (r *Repository) CreateDry(ctx context.Context, record models.DryRecord) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", models.ErrStorage, err)
	}

	record.Stores = cloneSlice(record.Stores)
	record.ID = primitive.NewObjectID()

	r.mu.Lock()
	r.dry = append(r.dry, record)
	r.mu.Unlock()

	return record.ID.Hex(), nil
}

func (r *Repository) ListDry(ctx context.Context, period *models.Period) ([]models.DryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrStorage, err)
	}

	r.mu.RLock()
	out := make([]models.DryRecord, 0, len(r.dry))
	for _, rec := range r.dry {
		if period == nil || period.Contains(rec.SubmittedDateTime) {
			rec.Stores = cloneSlice(rec.Stores)
			out = append(out, rec)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedDateTime.After(out[j].SubmittedDateTime)
	})
	return out, nil
}

func (r *Repository) FindUserByUsername(_ context.Context, username string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return models.User{}, fmt.Errorf("user %q: %w", username, models.ErrNotFound)
	}
	return user, nil
}

func (r *Repository) CreateUser(_ context.Context, user models.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return "", fmt.Errorf("user %q: %w", user.Username, models.ErrConflict)
	}
	user.ID = primitive.NewObjectID()
	r.users[user.Username] = user
	return user.ID.Hex(), nil
}

func cloneInventory(rec models.InventoryRecord) models.InventoryRecord {
	rec.Labors = cloneSlice(rec.Labors)
	rec.Receiving = cloneSlice(rec.Receiving)
	rec.Loading = cloneSlice(rec.Loading)
	rec.Stores = cloneSlice(rec.Stores)
	return rec
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
