package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/warehouse/internal/domain/models"
	"github.com/mamadbah2/warehouse/internal/repository"
)

const (
	inventoryCollection = "inventories"
	dryCollection       = "dries"
	userCollection      = "users"

	submittedField = "submittedDateTime"
)

var _ repository.Repository = (*MongoDBRepository)(nil)

// MongoDBRepository implements repository.Repository on top of MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return NewFromClient(client, dbName), nil
}

// NewFromClient wraps an already connected client.
func NewFromClient(client *mongo.Client, dbName string) *MongoDBRepository {
	return &MongoDBRepository{
		client: client,
		db:     client.Database(dbName),
	}
}

// EnsureIndexes creates the unique username index and the time-axis indexes
// used by month queries.
func (r *MongoDBRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.db.Collection(userCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("%w: create users index: %w", models.ErrStorage, err)
	}

	for _, name := range []string{inventoryCollection, dryCollection} {
		_, err := r.db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: submittedField, Value: -1}},
		})
		if err != nil {
			return fmt.Errorf("%w: create %s index: %w", models.ErrStorage, name, err)
		}
	}
	return nil
}

// CreateInventory inserts the record as submitted and returns its id.
func (r *MongoDBRepository) CreateInventory(ctx context.Context, record models.InventoryRecord) (string, error) {
	record.ID = primitive.NewObjectID()
	if _, err := r.db.Collection(inventoryCollection).InsertOne(ctx, record); err != nil {
		return "", fmt.Errorf("%w: insert inventory record: %w", models.ErrStorage, err)
	}
	return record.ID.Hex(), nil
}

// ListInventory returns the records submitted within period, newest first.
func (r *MongoDBRepository) ListInventory(ctx context.Context, period models.Period) ([]models.InventoryRecord, error) {
	return findNewestFirst[models.InventoryRecord](ctx, r.db.Collection(inventoryCollection), periodFilter(&period))
}

// CreateDry inserts a dry delivery record and returns its id.
func (r *MongoDBRepository) CreateDry(ctx context.Context, record models.DryRecord) (string, error) {
	record.ID = primitive.NewObjectID()
	if _, err := r.db.Collection(dryCollection).InsertOne(ctx, record); err != nil {
		return "", fmt.Errorf("%w: insert dry record: %w", models.ErrStorage, err)
	}
	return record.ID.Hex(), nil
}

// ListDry returns dry records, newest first, optionally restricted to period.
func (r *MongoDBRepository) ListDry(ctx context.Context, period *models.Period) ([]models.DryRecord, error) {
	return findNewestFirst[models.DryRecord](ctx, r.db.Collection(dryCollection), periodFilter(period))
}

// FindUserByUsername loads an account by its unique username.
func (r *MongoDBRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := r.db.Collection(userCollection).FindOne(ctx, bson.D{{Key: "username", Value: username}}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, fmt.Errorf("user %q: %w", username, models.ErrNotFound)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("%w: find user: %w", models.ErrStorage, err)
	}
	return user, nil
}

// CreateUser inserts an account. Duplicate usernames yield models.ErrConflict.
func (r *MongoDBRepository) CreateUser(ctx context.Context, user models.User) (string, error) {
	user.ID = primitive.NewObjectID()
	if _, err := r.db.Collection(userCollection).InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("user %q: %w", user.Username, models.ErrConflict)
		}
		return "", fmt.Errorf("%w: insert user: %w", models.ErrStorage, err)
	}
	return user.ID.Hex(), nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func periodFilter(period *models.Period) bson.D {
	if period == nil {
		return bson.D{}
	}
	return bson.D{{Key: submittedField, Value: bson.D{
		{Key: "$gte", Value: period.Start},
		{Key: "$lt", Value: period.End},
	}}}
}

func findNewestFirst[T any](ctx context.Context, coll *mongo.Collection, filter bson.D) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: submittedField, Value: -1}})
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: find in %s: %w", models.ErrStorage, coll.Name(), err)
	}

	out := make([]T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", models.ErrStorage, coll.Name(), err)
	}
	return out, nil
}
