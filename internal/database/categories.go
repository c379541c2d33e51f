package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"grocerystore/internal/models"
	"grocerystore/internal/repository"
)

type CategoryRepo struct {
	col *mongo.Collection
}

func (r CategoryRepo) InsertCategory(ctx context.Context, category *models.Category) error {
	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, category)
	return translate(err)
}

func (r CategoryRepo) FindCategoryByName(ctx context.Context, name string) (models.Category, error) {
	var category models.Category
	err := r.col.FindOne(ctx, bson.M{"name": name}).Decode(&category)
	return category, translate(err)
}

func (r CategoryRepo) ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	filter := bson.M{}
	if activeOnly {
		filter["status"] = models.StatusActive
	}

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	categories := make([]models.Category, 0)
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r CategoryRepo) AddGroceryToCategory(ctx context.Context, categoryID, groceryID primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": categoryID, "groceryIds._id": bson.M{"$ne": groceryID}},
		bson.M{"$push": bson.M{"groceryIds": bson.M{"_id": groceryID}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Either the category is missing or the grocery is already a member.
		count, err := r.col.CountDocuments(ctx, bson.M{"_id": categoryID})
		if err != nil {
			return err
		}
		if count == 0 {
			return repository.ErrNotFound
		}
	}
	return nil
}

func (r CategoryRepo) RemoveGroceryFromCategory(ctx context.Context, categoryID, groceryID primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": categoryID},
		bson.M{"$pull": bson.M{"groceryIds": bson.M{"_id": groceryID}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
