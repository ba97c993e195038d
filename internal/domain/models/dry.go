package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DryRecord captures a dry-goods delivery submission split across shops.
type DryRecord struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	SubmittedDateTime time.Time           `bson:"submittedDateTime" json:"submittedDateTime"`
	Stores            []Store             `bson:"stores" json:"stores"`
	CreatedBy         *primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt         time.Time           `bson:"createdAt" json:"createdAt"`
}

// Validate checks the fields the store requires.
func (r DryRecord) Validate() error {
	if r.SubmittedDateTime.IsZero() {
		return fmt.Errorf("%w: submittedDateTime is required", ErrValidation)
	}
	return nil
}

// SubmittedAt returns the record's position on the reporting time axis.
func (r DryRecord) SubmittedAt() time.Time {
	return r.SubmittedDateTime
}

// Deliveries returns the store distribution lines.
func (r DryRecord) Deliveries() []Store {
	return r.Stores
}
