package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureIndexes creates every index the repositories rely on. A failing
// index is logged and returned; the remaining ones are still attempted.
func EnsureIndexes(db *mongo.Database, cartTTL time.Duration) error {
	var firstErr error
	for _, ensure := range []func(*mongo.Database) error{
		EnsureUserIndexes,
		EnsureOrderIndexes,
		EnsureCategoryIndexes,
		EnsureTokenIndexes,
		func(db *mongo.Database) error { return EnsureCartIndexes(db, cartTTL) },
	} {
		if err := ensure(db); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func createIndex(db *mongo.Database, collection string, model mongo.IndexModel) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	name := ""
	if model.Options != nil && model.Options.Name != nil {
		name = *model.Options.Name
	}
	log := zap.L().With(zap.String("collection", collection), zap.String("index", name))

	if _, err := db.Collection(collection).Indexes().CreateOne(ctx, model); err != nil {
		log.Warn("index creation failed", zap.Error(err))
		return err
	}
	log.Debug("index ensured")
	return nil
}

func EnsureUserIndexes(db *mongo.Database) error {
	return createIndex(db, usersCollection, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("email_unique").SetUnique(true),
	})
}

func EnsureOrderIndexes(db *mongo.Database) error {
	return createIndex(db, ordersCollection, mongo.IndexModel{
		Keys:    bson.D{{Key: "customerId", Value: 1}, {Key: "orderDate", Value: -1}},
		Options: options.Index().SetName("customerId_orderDate"),
	})
}

func EnsureCategoryIndexes(db *mongo.Database) error {
	return createIndex(db, categoriesCollection, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetName("name_unique").SetUnique(true),
	})
}

func EnsureTokenIndexes(db *mongo.Database) error {
	if err := createIndex(db, tokensCollection, mongo.IndexModel{
		Keys:    bson.D{{Key: "tokenHash", Value: 1}},
		Options: options.Index().SetName("tokenHash_index"),
	}); err != nil {
		return err
	}
	return createIndex(db, tokensCollection, mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetName("expiresAt_ttl").SetExpireAfterSeconds(0),
	})
}

// EnsureCartIndexes expires saved carts ttl after their last update.
func EnsureCartIndexes(db *mongo.Database, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return createIndex(db, cartsCollection, mongo.IndexModel{
		Keys:    bson.D{{Key: "updatedAt", Value: 1}},
		Options: options.Index().SetName("updatedAt_ttl").SetExpireAfterSeconds(int32(ttl.Seconds())),
	})
}
