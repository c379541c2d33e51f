package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SavedCart holds the grocery ids a user put aside for a later checkout.
type SavedCart struct {
	UserID    primitive.ObjectID `bson:"_id" json:"userId"`
	Cart      []string           `bson:"cart" json:"cart"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
