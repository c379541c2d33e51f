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

type OrderRepo struct {
	col *mongo.Collection
}

func (r OrderRepo) InsertOrder(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, order)
	return translate(err)
}

func (r OrderRepo) FindOrder(ctx context.Context, id primitive.ObjectID) (models.Order, error) {
	var order models.Order
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	return order, translate(err)
}

func (r OrderRepo) FindOrdersByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.Order, error) {
	cursor, err := r.col.Find(ctx,
		bson.M{"customerId": customerID},
		options.Find().SetSort(bson.D{{Key: "orderDate", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r OrderRepo) SetOrderStatus(ctx context.Context, id primitive.ObjectID, from, to string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	count, err := r.col.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if count == 0 {
		return repository.ErrNotFound
	}
	return repository.ErrConflict
}

func (r OrderRepo) DeleteOrder(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
