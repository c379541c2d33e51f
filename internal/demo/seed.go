// Package demo loads a small sample catalog into empty stores.
package demo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"grocerystore/internal/models"
	"grocerystore/internal/repository"
)

// Seed inserts the demo groceries and their categories when the catalog is
// empty, then links every unlinked grocery to its category in both
// directions. Running it against a populated store only performs the
// linking step.
func Seed(ctx context.Context, store repository.Store, log *zap.Logger) error {
	existing, err := store.Groceries.FindGroceries(ctx, repository.GroceryQuery{Limit: 1})
	if err != nil {
		return fmt.Errorf("check catalog: %w", err)
	}
	if len(existing) == 0 {
		inserted, err := loadGroceries(ctx, store)
		if err != nil {
			return err
		}
		log.Info("demo groceries loaded", zap.Int("count", inserted))
	}

	linked, err := LinkCategories(ctx, store)
	if err != nil {
		return err
	}
	if linked > 0 {
		log.Info("groceries linked to categories", zap.Int("count", linked))
	}
	return nil
}

func loadGroceries(ctx context.Context, store repository.Store) (int, error) {
	groceries := Groceries()
	seen := map[string]bool{}
	for _, grocery := range groceries {
		if seen[grocery.Category] {
			continue
		}
		seen[grocery.Category] = true
		category := models.Category{Name: grocery.Category, Status: models.StatusActive, GroceryIDs: models.RefList{}}
		err := store.Categories.InsertCategory(ctx, &category)
		if err != nil && !errors.Is(err, repository.ErrDuplicate) {
			return 0, fmt.Errorf("insert category %q: %w", grocery.Category, err)
		}
	}

	for i := range groceries {
		groceries[i].Status = models.StatusActive
		if err := store.Groceries.InsertGrocery(ctx, &groceries[i]); err != nil {
			return i, fmt.Errorf("insert grocery %q: %w", groceries[i].Name, err)
		}
	}
	return len(groceries), nil
}

// LinkCategories sets categoryId on groceries that lack one and adds them to
// the member list of the category carrying their category name. Groceries
// naming an unknown category are left alone.
func LinkCategories(ctx context.Context, store repository.Store) (int, error) {
	groceries, err := store.Groceries.FindGroceries(ctx, repository.GroceryQuery{})
	if err != nil {
		return 0, fmt.Errorf("list groceries: %w", err)
	}
	categories, err := store.Categories.ListCategories(ctx, false)
	if err != nil {
		return 0, fmt.Errorf("list categories: %w", err)
	}
	byName := make(map[string]models.Category, len(categories))
	for _, category := range categories {
		byName[category.Name] = category
	}

	linked := 0
	for _, grocery := range groceries {
		if grocery.CategoryID != nil {
			continue
		}
		category, ok := byName[grocery.Category]
		if !ok {
			continue
		}
		if err := store.Categories.AddGroceryToCategory(ctx, category.ID, grocery.ID); err != nil {
			return linked, fmt.Errorf("link %s to %q: %w", grocery.ID.Hex(), category.Name, err)
		}
		if _, err := store.Groceries.UpdateGrocery(ctx, grocery.ID, bson.M{"categoryId": category.ID}); err != nil {
			return linked, fmt.Errorf("set categoryId on %s: %w", grocery.ID.Hex(), err)
		}
		linked++
	}
	return linked, nil
}
