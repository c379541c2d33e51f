package database

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"grocerystore/internal/models"
	"grocerystore/internal/repository"
)

type GroceryRepo struct {
	col *mongo.Collection
}

func (r GroceryRepo) FindGrocery(ctx context.Context, id primitive.ObjectID) (models.Grocery, error) {
	var grocery models.Grocery
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&grocery)
	return grocery, translate(err)
}

func (r GroceryRepo) FindGroceries(ctx context.Context, query repository.GroceryQuery) ([]models.Grocery, error) {
	filter := bson.M{}
	if query.ID != nil {
		filter["_id"] = *query.ID
	}
	if query.Category != "" {
		filter["category"] = query.Category
	}
	if name := strings.TrimSpace(query.Name); name != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(name), "$options": "i"}
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if query.Skip > 0 {
		opts.SetSkip(query.Skip)
	}
	if query.Limit > 0 {
		opts.SetLimit(query.Limit)
	}

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	groceries := make([]models.Grocery, 0)
	if err := cursor.All(ctx, &groceries); err != nil {
		return nil, err
	}
	return groceries, nil
}

func (r GroceryRepo) InsertGrocery(ctx context.Context, grocery *models.Grocery) error {
	if grocery.ID.IsZero() {
		grocery.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, grocery)
	return translate(err)
}

func (r GroceryRepo) UpdateGrocery(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Grocery, error) {
	var updated models.Grocery
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	return updated, translate(err)
}

// AdjustStock applies delta with a single conditional $inc. Decrements only
// match while stock >= -delta, so concurrent orders cannot oversell.
func (r GroceryRepo) AdjustStock(ctx context.Context, id primitive.ObjectID, delta int) (int, error) {
	filter := bson.M{"_id": id}
	if delta < 0 {
		filter["stock"] = bson.M{"$gte": -delta}
	}

	var updated models.Grocery
	err := r.col.FindOneAndUpdate(ctx,
		filter,
		bson.M{"$inc": bson.M{"stock": delta}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == nil {
		return updated.Stock, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return 0, err
	}

	current, findErr := r.FindGrocery(ctx, id)
	if findErr != nil {
		return 0, findErr
	}
	return current.Stock, repository.ErrInsufficientStock
}
