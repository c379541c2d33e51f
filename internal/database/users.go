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

type UserRepo struct {
	col *mongo.Collection
}

func (r UserRepo) InsertUser(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, user)
	return translate(err)
}

func (r UserRepo) FindUser(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	return user, translate(err)
}

func (r UserRepo) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	return user, translate(err)
}

func (r UserRepo) UpdateUser(ctx context.Context, id primitive.ObjectID, set bson.M) (models.User, error) {
	var updated models.User
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	return updated, translate(err)
}

func (r UserRepo) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r UserRepo) AppendOrder(ctx context.Context, userID, orderID primitive.ObjectID) error {
	return r.updateOrders(ctx, userID, bson.M{"$push": bson.M{"orders": bson.M{"_id": orderID}}})
}

func (r UserRepo) RemoveOrder(ctx context.Context, userID, orderID primitive.ObjectID) error {
	return r.updateOrders(ctx, userID, bson.M{"$pull": bson.M{"orders": bson.M{"_id": orderID}}})
}

func (r UserRepo) updateOrders(ctx context.Context, userID primitive.ObjectID, update bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
