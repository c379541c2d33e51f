package catalog

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"grocerystore/internal/demo"
	"grocerystore/internal/models"
	"grocerystore/internal/repository"
	"grocerystore/internal/repository/memory"
	"grocerystore/internal/response"
)

func seededService(t *testing.T) (*Service, repository.Store) {
	t.Helper()
	store := memory.New().Repositories()
	require.NoError(t, demo.Seed(context.Background(), store, zap.NewNop()))
	return NewService(store, zap.NewNop()), store
}

func findByName(t *testing.T, store repository.Store, name string) models.Grocery {
	t.Helper()
	found, err := store.Groceries.FindGroceries(context.Background(), repository.GroceryQuery{Name: name, Limit: 1})
	require.NoError(t, err)
	require.NotEmpty(t, found)
	return found[0]
}

func TestValidateQuery(t *testing.T) {
	id := primitive.NewObjectID()

	query, err := ValidateQuery(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, repository.GroceryQuery{}, query)

	query, err = ValidateQuery(url.Values{"category": {"Produce"}, "limit": {"2"}})
	require.NoError(t, err)
	assert.Equal(t, "Produce", query.Category)
	assert.Equal(t, int64(2), query.Limit)
	assert.Zero(t, query.Skip)

	query, err = ValidateQuery(url.Values{"_id": {id.Hex()}, "page": {"3"}})
	require.NoError(t, err)
	assert.Equal(t, id, *query.ID)
	assert.Equal(t, int64(40), query.Skip)
	assert.Equal(t, defaultPageSize, query.Limit)

	_, err = ValidateQuery(url.Values{"limit": {"5"}})
	assert.True(t, response.IsKind(err, response.QueryError))

	_, err = ValidateQuery(url.Values{"name": {"Milk"}, "limit": {"zero"}})
	assert.True(t, response.IsKind(err, response.QueryError))

	_, err = ValidateQuery(url.Values{"_id": {"123a4bc"}})
	assert.True(t, response.IsKind(err, response.CastError))
}

func TestSearch(t *testing.T) {
	svc, _ := seededService(t)
	ctx := context.Background()

	all, err := svc.Search(ctx, url.Values{})
	require.NoError(t, err)
	assert.Len(t, all, len(demo.Groceries()))

	produce, err := svc.Search(ctx, url.Values{"category": {"Produce"}, "limit": {"2"}})
	require.NoError(t, err)
	assert.Len(t, produce, 2)

	_, err = svc.Search(ctx, url.Values{"name": {"Caviar"}})
	assert.True(t, response.IsKind(err, response.NotFound))
}

type flakyFinder struct{}

func (flakyFinder) FindGrocery(context.Context, primitive.ObjectID) (models.Grocery, error) {
	return models.Grocery{}, errors.New("connection reset")
}

func TestResolve(t *testing.T) {
	_, store := seededService(t)
	ctx := context.Background()
	milk := findByName(t, store, "Milk")
	eggs := findByName(t, store, "Eggs")

	items, err := Resolve(ctx, store.Groceries, []string{milk.ID.Hex(), eggs.ID.Hex(), milk.ID.Hex()}, response.InputError)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Milk", items[0].Name)
	assert.Equal(t, "Eggs", items[1].Name)
	assert.Equal(t, "Milk", items[2].Name)

	missing := primitive.NewObjectID().Hex()
	_, err = Resolve(ctx, store.Groceries, []string{milk.ID.Hex(), missing}, response.InputError)
	require.Error(t, err)
	assert.True(t, response.IsKind(err, response.InputError))
	assert.Contains(t, err.Error(), "Invalid grocery _id: '"+missing+"'.")

	_, err = Resolve(ctx, store.Groceries, []string{"123a4bc"}, response.NotFound)
	assert.True(t, response.IsKind(err, response.NotFound))

	_, err = Resolve(ctx, flakyFinder{}, []string{milk.ID.Hex()}, response.InputError)
	assert.True(t, response.IsKind(err, response.StorageError))
}

func TestCreateLinksCategory(t *testing.T) {
	svc, store := seededService(t)
	ctx := context.Background()

	body := []byte(`{"name":"Yogurt","brand":"Astro","category":"Dairy and Eggs",
		"price":{"value":4.49,"currency":"CAD"},"mass":{"value":650,"unit":"g"},"stock":8,"status":"Active"}`)
	created, err := svc.Create(ctx, body)
	require.NoError(t, err)
	require.NotNil(t, created.CategoryID)

	dairy, err := store.Categories.FindCategoryByName(ctx, "Dairy and Eggs")
	require.NoError(t, err)
	assert.Equal(t, dairy.ID, *created.CategoryID)
	assert.Contains(t, dairy.GroceryIDs, created.ID)

	stored, err := store.Groceries.FindGrocery(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, stored.Stock)
}

func TestCreateRejectsInvalidBodies(t *testing.T) {
	svc, _ := seededService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		body string
		kind response.Kind
	}{
		{"empty object", `{}`, response.InputError},
		{"not json", `{"name":`, response.SyntaxError},
		{"missing stock", `{"name":"Kale","brand":"Farm","category":"Produce","price":{"value":2,"currency":"CAD"},"status":"Active"}`, response.ValidationError},
		{"negative price", `{"name":"Kale","brand":"Farm","category":"Produce","price":{"value":-2,"currency":"CAD"},"stock":1,"status":"Active"}`, response.ValidationError},
		{"unknown category", `{"name":"Kale","brand":"Farm","category":"Garden","price":{"value":2,"currency":"CAD"},"stock":1,"status":"Active"}`, response.InputError},
		{"stock as text", `{"name":"Kale","stock":"lots"}`, response.CastError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, []byte(tt.body))
			require.Error(t, err)
			assert.Equal(t, tt.kind, response.KindOf(err), err.Error())
		})
	}
}

func TestUpdateMovesCategory(t *testing.T) {
	svc, store := seededService(t)
	ctx := context.Background()
	beans := findByName(t, store, "Baked Beans")

	updated, err := svc.Update(ctx, beans.ID.Hex(), []byte(`{"category":"Produce","stock":3}`))
	require.NoError(t, err)
	assert.Equal(t, "Produce", updated.Category)
	assert.Equal(t, 3, updated.Stock)

	produce, err := store.Categories.FindCategoryByName(ctx, "Produce")
	require.NoError(t, err)
	assert.Equal(t, produce.ID, *updated.CategoryID)
	assert.Contains(t, produce.GroceryIDs, beans.ID)

	canned, err := store.Categories.FindCategoryByName(ctx, "Canned Goods")
	require.NoError(t, err)
	assert.NotContains(t, canned.GroceryIDs, beans.ID)
}

func TestUpdateRejections(t *testing.T) {
	svc, store := seededService(t)
	ctx := context.Background()
	milk := findByName(t, store, "Milk")

	_, err := svc.Update(ctx, milk.ID.Hex(), []byte(`{}`))
	assert.True(t, response.IsKind(err, response.InputError))

	_, err = svc.Update(ctx, milk.ID.Hex(), []byte(`{"_id":"abc"}`))
	assert.True(t, response.IsKind(err, response.IncorrectField))

	_, err = svc.Update(ctx, milk.ID.Hex(), []byte(`{"colour":"white"}`))
	assert.True(t, response.IsKind(err, response.IncorrectField))

	_, err = svc.Update(ctx, milk.ID.Hex(), []byte(`{"status":"Sold"}`))
	assert.True(t, response.IsKind(err, response.ValidationError))

	_, err = svc.Update(ctx, primitive.NewObjectID().Hex(), []byte(`{"stock":1}`))
	assert.True(t, response.IsKind(err, response.NotFound))

	_, err = svc.Update(ctx, "nope", []byte(`{"stock":1}`))
	assert.True(t, response.IsKind(err, response.CastError))
}

func TestCategories(t *testing.T) {
	svc, _ := seededService(t)

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 5)

	empty := NewService(memory.New().Repositories(), zap.NewNop())
	_, err = empty.Categories(context.Background())
	assert.True(t, response.IsKind(err, response.NotFound))
}
