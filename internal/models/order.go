package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order defines the persisted order document. GroceryIDs keeps one entry per
// ordered unit, so an item bought twice appears twice.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CustomerID      primitive.ObjectID `bson:"customerId" json:"customerId"`
	OrderDate       time.Time          `bson:"orderDate" json:"orderDate"`
	GroceryIDs      RefList            `bson:"groceryIds" json:"groceryIds"`
	TotalCost       Price              `bson:"totalCost" json:"totalCost"`
	PaymentReceived bool               `bson:"paymentReceived" json:"paymentReceived"`
	PaymentDate     *time.Time         `bson:"paymentDate,omitempty" json:"paymentDate,omitempty"`
	Status          string             `bson:"status" json:"status"`
}
