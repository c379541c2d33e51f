// Package repository declares the persistence contracts used by the HTTP
// handlers and the order workflow. The MongoDB implementation lives in
// internal/database, the in-memory one in internal/repository/memory.
package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"grocerystore/internal/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks grocerystore/internal/repository GroceryRepository,OrderRepository,UserRepository,Transactor

var (
	ErrNotFound          = errors.New("document not found")
	ErrDuplicate         = errors.New("duplicate key")
	ErrConflict          = errors.New("document state conflict")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// GroceryQuery filters catalog lookups. Zero values are ignored.
type GroceryQuery struct {
	ID       *primitive.ObjectID
	Name     string
	Category string
	Skip     int64
	Limit    int64
}

type GroceryRepository interface {
	FindGrocery(ctx context.Context, id primitive.ObjectID) (models.Grocery, error)
	FindGroceries(ctx context.Context, query GroceryQuery) ([]models.Grocery, error)
	InsertGrocery(ctx context.Context, grocery *models.Grocery) error
	UpdateGrocery(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Grocery, error)
	// AdjustStock adds delta to the stock of a grocery and returns the new
	// count. A negative delta only applies when enough stock remains;
	// otherwise ErrInsufficientStock is returned and nothing changes.
	AdjustStock(ctx context.Context, id primitive.ObjectID, delta int) (int, error)
}

type CategoryRepository interface {
	InsertCategory(ctx context.Context, category *models.Category) error
	FindCategoryByName(ctx context.Context, name string) (models.Category, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error)
	AddGroceryToCategory(ctx context.Context, categoryID, groceryID primitive.ObjectID) error
	RemoveGroceryFromCategory(ctx context.Context, categoryID, groceryID primitive.ObjectID) error
}

type OrderRepository interface {
	InsertOrder(ctx context.Context, order *models.Order) error
	FindOrder(ctx context.Context, id primitive.ObjectID) (models.Order, error)
	FindOrdersByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.Order, error)
	// SetOrderStatus moves an order from one status to another and fails
	// with ErrConflict when the stored status is not from.
	SetOrderStatus(ctx context.Context, id primitive.ObjectID, from, to string) error
	DeleteOrder(ctx context.Context, id primitive.ObjectID) error
}

type UserRepository interface {
	InsertUser(ctx context.Context, user *models.User) error
	FindUser(ctx context.Context, id primitive.ObjectID) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, set bson.M) (models.User, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
	AppendOrder(ctx context.Context, userID, orderID primitive.ObjectID) error
	RemoveOrder(ctx context.Context, userID, orderID primitive.ObjectID) error
}

type TokenRepository interface {
	InsertRefreshToken(ctx context.Context, token *models.RefreshToken) error
	FindActiveRefreshToken(ctx context.Context, tokenHash string) (models.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, id primitive.ObjectID, replacedBy *primitive.ObjectID) error
	RevokeRefreshTokenByHash(ctx context.Context, tokenHash string) error
}

type CartRepository interface {
	SaveCart(ctx context.Context, cart models.SavedCart) error
	FindCart(ctx context.Context, userID primitive.ObjectID) (models.SavedCart, error)
}

// Transactor runs fn so that the repository calls made with the context it
// receives commit or abort together. Atomic reports whether that guarantee
// actually holds; callers compensate by hand when it does not.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	Atomic() bool
}

// Pinger is implemented by stores that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Store bundles every repository the application needs.
type Store struct {
	Groceries  GroceryRepository
	Categories CategoryRepository
	Orders     OrderRepository
	Users      UserRepository
	Tokens     TokenRepository
	Carts      CartRepository
	Tx         Transactor
	Health     Pinger
}

// Sequential is a Transactor without atomicity: fn simply runs.
type Sequential struct{}

func (Sequential) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (Sequential) Atomic() bool {
	return false
}
