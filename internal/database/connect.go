package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"grocerystore/internal/repository"
)

const (
	groceriesCollection  = "groceries"
	categoriesCollection = "categories"
	ordersCollection     = "orders"
	usersCollection      = "users"
	tokensCollection     = "refresh_tokens"
	cartsCollection      = "saved_carts"
)

func Connect(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// NewStore wires the Mongo repositories. With transactions disabled the
// store falls back to a non-atomic transactor, which standalone servers
// require.
func NewStore(db *mongo.Database, transactions bool) repository.Store {
	var tx repository.Transactor = repository.Sequential{}
	if transactions {
		tx = Transactor{client: db.Client()}
	}
	return repository.Store{
		Groceries:  GroceryRepo{col: db.Collection(groceriesCollection)},
		Categories: CategoryRepo{col: db.Collection(categoriesCollection)},
		Orders:     OrderRepo{col: db.Collection(ordersCollection)},
		Users:      UserRepo{col: db.Collection(usersCollection)},
		Tokens:     TokenRepo{col: db.Collection(tokensCollection)},
		Carts:      CartRepo{col: db.Collection(cartsCollection)},
		Tx:         tx,
		Health:     pinger{client: db.Client()},
	}
}

type pinger struct {
	client *mongo.Client
}

func (p pinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, readpref.Primary())
}

// Transactor runs a unit of work inside a MongoDB multi-document
// transaction. It needs a replica set or sharded cluster.
type Transactor struct {
	client *mongo.Client
}

func (t Transactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return err
}

func (Transactor) Atomic() bool {
	return true
}

// translate maps driver errors onto the repository sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repository.ErrDuplicate
	default:
		return err
	}
}
