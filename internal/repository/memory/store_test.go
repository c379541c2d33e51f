package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"grocerystore/internal/models"
	"grocerystore/internal/repository"
)

func seedGrocery(t *testing.T, s *Store, name string, stock int) models.Grocery {
	t.Helper()
	grocery := models.Grocery{
		Name:     name,
		Category: "Dairy",
		Price:    models.Price{Value: 2.99, Currency: "CAD"},
		Stock:    stock,
		Status:   models.StatusActive,
	}
	require.NoError(t, s.InsertGrocery(context.Background(), &grocery))
	return grocery
}

func TestAdjustStockKeepsFloor(t *testing.T) {
	s := New()
	milk := seedGrocery(t, s, "Milk", 2)
	ctx := context.Background()

	stock, err := s.AdjustStock(ctx, milk.ID, -2)
	require.NoError(t, err)
	assert.Equal(t, 0, stock)

	stock, err = s.AdjustStock(ctx, milk.ID, -1)
	assert.ErrorIs(t, err, repository.ErrInsufficientStock)
	assert.Equal(t, 0, stock)

	stock, err = s.AdjustStock(ctx, milk.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, stock)

	_, err = s.AdjustStock(ctx, primitive.NewObjectID(), 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAdjustStockConcurrentDecrements(t *testing.T) {
	s := New()
	milk := seedGrocery(t, s, "Milk", 10)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.AdjustStock(context.Background(), milk.ID, -1); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	stored, err := s.FindGrocery(context.Background(), milk.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Stock)
}

func TestFindGroceriesFilters(t *testing.T) {
	s := New()
	milk := seedGrocery(t, s, "Milk", 1)
	seedGrocery(t, s, "Chocolate Milk", 1)
	seedGrocery(t, s, "Cheddar", 1)
	ctx := context.Background()

	all, err := s.FindGroceries(ctx, repository.GroceryQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byName, err := s.FindGroceries(ctx, repository.GroceryQuery{Name: "milk"})
	require.NoError(t, err)
	assert.Len(t, byName, 2)

	byID, err := s.FindGroceries(ctx, repository.GroceryQuery{ID: &milk.ID})
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, "Milk", byID[0].Name)

	paged, err := s.FindGroceries(ctx, repository.GroceryQuery{Skip: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "Chocolate Milk", paged[0].Name)

	none, err := s.FindGroceries(ctx, repository.GroceryQuery{Category: "Bakery"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestReturnedDocumentsAreCopies(t *testing.T) {
	s := New()
	ctx := context.Background()
	user := models.User{FirstName: "Ada", Email: "ada@example.com", Type: models.UserTypeStandard}
	require.NoError(t, s.InsertUser(ctx, &user))

	orderID := primitive.NewObjectID()
	require.NoError(t, s.AppendOrder(ctx, user.ID, orderID))

	first, err := s.FindUser(ctx, user.ID)
	require.NoError(t, err)
	first.Orders[0] = primitive.NewObjectID()

	second, err := s.FindUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RefList{orderID}, second.Orders)
}

func TestUpdateUserOverlaysFields(t *testing.T) {
	s := New()
	ctx := context.Background()
	ada := models.User{FirstName: "Ada", Email: "ada@example.com", DateRegistered: time.Now()}
	bob := models.User{FirstName: "Bob", Email: "bob@example.com"}
	require.NoError(t, s.InsertUser(ctx, &ada))
	require.NoError(t, s.InsertUser(ctx, &bob))

	updated, err := s.UpdateUser(ctx, ada.ID, bson.M{"postalCode": "K1A 0B1"})
	require.NoError(t, err)
	assert.Equal(t, "K1A 0B1", updated.PostalCode)
	assert.Equal(t, "Ada", updated.FirstName)

	_, err = s.UpdateUser(ctx, ada.ID, bson.M{"email": "bob@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	dup := models.User{Email: "ada@example.com"}
	assert.ErrorIs(t, s.InsertUser(ctx, &dup), repository.ErrDuplicate)
}

func TestSetOrderStatusIsConditional(t *testing.T) {
	s := New()
	ctx := context.Background()
	order := models.Order{CustomerID: primitive.NewObjectID(), Status: models.StatusActive}
	require.NoError(t, s.InsertOrder(ctx, &order))

	require.NoError(t, s.SetOrderStatus(ctx, order.ID, models.StatusActive, models.StatusCancelled))
	assert.ErrorIs(t, s.SetOrderStatus(ctx, order.ID, models.StatusActive, models.StatusCancelled), repository.ErrConflict)
	assert.ErrorIs(t, s.SetOrderStatus(ctx, primitive.NewObjectID(), models.StatusActive, models.StatusCancelled), repository.ErrNotFound)
}

func TestCategoryMembership(t *testing.T) {
	s := New()
	ctx := context.Background()
	dairy := models.Category{Name: "Dairy", Status: models.StatusActive}
	require.NoError(t, s.InsertCategory(ctx, &dairy))
	groceryID := primitive.NewObjectID()

	require.NoError(t, s.AddGroceryToCategory(ctx, dairy.ID, groceryID))
	require.NoError(t, s.AddGroceryToCategory(ctx, dairy.ID, groceryID))
	found, err := s.FindCategoryByName(ctx, "Dairy")
	require.NoError(t, err)
	assert.Equal(t, models.RefList{groceryID}, found.GroceryIDs)

	require.NoError(t, s.RemoveGroceryFromCategory(ctx, dairy.ID, groceryID))
	found, err = s.FindCategoryByName(ctx, "Dairy")
	require.NoError(t, err)
	assert.Empty(t, found.GroceryIDs)
}

func TestRefreshTokenRevocation(t *testing.T) {
	s := New()
	ctx := context.Background()
	token := models.RefreshToken{UserID: primitive.NewObjectID(), TokenHash: "abc", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, s.InsertRefreshToken(ctx, &token))

	found, err := s.FindActiveRefreshToken(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, token.ID, found.ID)

	require.NoError(t, s.RevokeRefreshTokenByHash(ctx, "abc"))
	_, err = s.FindActiveRefreshToken(ctx, "abc")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
