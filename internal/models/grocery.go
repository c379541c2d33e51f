package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	StatusActive    = "Active"
	StatusInactive  = "Inactive"
	StatusCancelled = "Cancelled"
)

// Price is an amount in a single currency.
type Price struct {
	Value    float64 `bson:"value" json:"value"`
	Currency string  `bson:"currency" json:"currency"`
}

// Measure describes a volume or mass, e.g. 1000 ml.
type Measure struct {
	Value float64 `bson:"value" json:"value"`
	Unit  string  `bson:"unit" json:"unit"`
}

// Grocery is a catalog item.
type Grocery struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Name       string              `bson:"name" json:"name"`
	Brand      string              `bson:"brand" json:"brand"`
	Category   string              `bson:"category" json:"category"`
	CategoryID *primitive.ObjectID `bson:"categoryId,omitempty" json:"categoryId,omitempty"`
	Price      Price               `bson:"price" json:"price"`
	Volume     *Measure            `bson:"volume,omitempty" json:"volume,omitempty"`
	Mass       *Measure            `bson:"mass,omitempty" json:"mass,omitempty"`
	Quantity   *int                `bson:"quantity,omitempty" json:"quantity,omitempty"`
	Stock      int                 `bson:"stock" json:"stock"`
	Status     string              `bson:"status" json:"status"`
}
