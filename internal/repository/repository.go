package repository

import (
	"context"

	"github.com/mamadbah2/warehouse/internal/domain/models"
)

// InventoryRepository persists warehouse work-session records.
type InventoryRepository interface {
	CreateInventory(ctx context.Context, record models.InventoryRecord) (string, error)
	ListInventory(ctx context.Context, period models.Period) ([]models.InventoryRecord, error)
}

// DryRepository persists dry delivery records. A nil period lists everything.
type DryRepository interface {
	CreateDry(ctx context.Context, record models.DryRecord) (string, error)
	ListDry(ctx context.Context, period *models.Period) ([]models.DryRecord, error)
}

// UserRepository stores login accounts.
type UserRepository interface {
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	CreateUser(ctx context.Context, user models.User) (string, error)
}

// Repository is the full storage surface a backend provides.
type Repository interface {
	InventoryRepository
	DryRepository
	UserRepository
	EnsureIndexes(ctx context.Context) error
	Close(ctx context.Context) error
}
