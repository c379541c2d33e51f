package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"grocerystore/internal/models"
)

type CartRepo struct {
	col *mongo.Collection
}

func (r CartRepo) SaveCart(ctx context.Context, cart models.SavedCart) error {
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": cart.UserID}, cart, options.Replace().SetUpsert(true))
	return err
}

func (r CartRepo) FindCart(ctx context.Context, userID primitive.ObjectID) (models.SavedCart, error) {
	var cart models.SavedCart
	err := r.col.FindOne(ctx, bson.M{"_id": userID}).Decode(&cart)
	return cart, translate(err)
}
