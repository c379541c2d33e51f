package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Category struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name       string             `bson:"name" json:"name"`
	Status     string             `bson:"status" json:"status"`
	GroceryIDs RefList            `bson:"groceryIds" json:"groceryIds"`
}
