package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Labor is one laborer line of a work session.
type Labor struct {
	Name string `bson:"name" json:"name"`
	Cost Number `bson:"cost" json:"cost"`
}

// Item is a received or loaded goods line.
type Item struct {
	Name string `bson:"name" json:"name"`
	Unit string `bson:"unit" json:"unit"`
	Qty  Number `bson:"qty" json:"qty"`
}

// Store is the share of a loading event sent to one shop. Entries with a blank
// shop name are kept as submitted but never count as deliveries.
type Store struct {
	Shop string `bson:"shop" json:"shop"`
	Qty  Number `bson:"qty" json:"qty"`
}

// IsDelivery reports whether the entry names a shop.
func (s Store) IsDelivery() bool {
	return s.ShopName() != ""
}

// ShopName returns the trimmed shop name used as the shop identity.
func (s Store) ShopName() string {
	return strings.TrimSpace(s.Shop)
}

// InventoryRecord is one submitted warehouse work session. Records are never
// updated after creation.
type InventoryRecord struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	SubmittedDateTime time.Time          `bson:"submittedDateTime" json:"submittedDateTime"`
	LaborCount        Count              `bson:"laborCount" json:"laborCount"`
	StartTime         string             `bson:"startTime" json:"startTime"`
	EndTime           string             `bson:"endTime" json:"endTime"`
	Remarks           string             `bson:"remarks,omitempty" json:"remarks,omitempty"`
	Labors            []Labor            `bson:"labors" json:"labors"`
	Receiving         []Item             `bson:"receiving" json:"receiving"`
	Loading           []Item             `bson:"loading" json:"loading"`
	Stores            []Store            `bson:"stores" json:"stores"`
}

// Validate checks the fields the store requires.
func (r InventoryRecord) Validate() error {
	if r.SubmittedDateTime.IsZero() {
		return fmt.Errorf("%w: submittedDateTime is required", ErrValidation)
	}
	return nil
}

// SubmittedAt returns the record's position on the reporting time axis.
func (r InventoryRecord) SubmittedAt() time.Time {
	return r.SubmittedDateTime
}

// Deliveries returns the store distribution lines.
func (r InventoryRecord) Deliveries() []Store {
	return r.Stores
}
