// Package ledger groups requested groceries, checks them against stock,
// prices them and applies stock movements.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"grocerystore/internal/models"
	"grocerystore/internal/repository"
	"grocerystore/internal/response"
)

// Direction selects whether ApplyDelta removes or returns stock.
type Direction int

const (
	Decrement Direction = iota
	Restock
)

func (d Direction) String() string {
	if d == Restock {
		return "restock"
	}
	return "decrement"
}

// StockAdjuster is the part of the grocery repository the ledger writes to.
type StockAdjuster interface {
	AdjustStock(ctx context.Context, id primitive.ObjectID, delta int) (int, error)
}

// Entry is one grouped grocery. Item is the first occurrence seen.
type Entry struct {
	Count int
	Item  models.Grocery
}

// Tally groups groceries by _id, remembering the order of first appearance.
type Tally struct {
	ids     []primitive.ObjectID
	entries map[primitive.ObjectID]*Entry
}

// NewTally counts the occurrences of every grocery in items.
func NewTally(items []models.Grocery) *Tally {
	t := &Tally{entries: make(map[primitive.ObjectID]*Entry, len(items))}
	for _, item := range items {
		if entry, ok := t.entries[item.ID]; ok {
			entry.Count++
			continue
		}
		t.ids = append(t.ids, item.ID)
		t.entries[item.ID] = &Entry{Count: 1, Item: item}
	}
	return t
}

// Len returns the number of distinct groceries.
func (t *Tally) Len() int {
	return len(t.ids)
}

// Get returns the entry for id.
func (t *Tally) Get(id primitive.ObjectID) (Entry, bool) {
	entry, ok := t.entries[id]
	if !ok {
		return Entry{}, false
	}
	return *entry, true
}

// IDs returns the distinct ids in first-appearance order.
func (t *Tally) IDs() []primitive.ObjectID {
	return append([]primitive.ObjectID(nil), t.ids...)
}

// Each visits the entries in first-appearance order and stops at the first
// error fn returns.
func (t *Tally) Each(fn func(id primitive.ObjectID, entry Entry) error) error {
	for _, id := range t.ids {
		if err := fn(id, *t.entries[id]); err != nil {
			return err
		}
	}
	return nil
}

// VerifyAvailability tallies items and fails with InsufficientStock for the
// first grouped grocery whose count exceeds its stock.
func VerifyAvailability(items []models.Grocery) (*Tally, error) {
	tally := NewTally(items)
	err := tally.Each(func(id primitive.ObjectID, entry Entry) error {
		if entry.Count > entry.Item.Stock {
			return insufficient(entry.Item, entry.Count, entry.Item.Stock)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tally, nil
}

func insufficient(item models.Grocery, required, available int) error {
	return response.Errorf(response.InsufficientStock,
		"Insufficient stock for item '%s' (_id: %s). Required: %d, available: %d.",
		item.Name, item.ID.Hex(), required, available)
}

// TotalCost sums the prices of items. All items must share one currency.
func TotalCost(items []models.Grocery) (models.Price, error) {
	if len(items) == 0 {
		return models.Price{}, response.New(response.InputError, "Cannot compute the total cost of an empty order.")
	}

	currency := items[0].Price.Currency
	sum := decimal.Zero
	for _, item := range items {
		if item.Price.Currency != currency {
			return models.Price{}, response.Errorf(response.InputError,
				"Mixed currencies in one order: '%s' and '%s'.", currency, item.Price.Currency)
		}
		sum = sum.Add(decimal.NewFromFloat(item.Price.Value))
	}

	value, _ := sum.Round(2).Float64()
	return models.Price{Value: value, Currency: currency}, nil
}

// ApplyDelta moves the stock of every grouped grocery by its count. When a
// write fails the groceries already adjusted are moved back before the error
// is returned. Successful writes update the stock held by the tally entries.
func ApplyDelta(ctx context.Context, adjuster StockAdjuster, tally *Tally, dir Direction) error {
	sign := -1
	if dir == Restock {
		sign = 1
	}

	applied := make([]primitive.ObjectID, 0, tally.Len())
	for _, id := range tally.ids {
		entry := tally.entries[id]
		stock, err := adjuster.AdjustStock(ctx, id, sign*entry.Count)
		if err != nil {
			failure := classify(entry, stock, err)
			if revertErr := revert(ctx, adjuster, tally, applied, sign); revertErr != nil {
				return errors.Join(failure, revertErr)
			}
			return failure
		}
		entry.Item.Stock = stock
		applied = append(applied, id)
	}
	return nil
}

func revert(ctx context.Context, adjuster StockAdjuster, tally *Tally, applied []primitive.ObjectID, sign int) error {
	var errs []error
	for i := len(applied) - 1; i >= 0; i-- {
		entry := tally.entries[applied[i]]
		stock, err := adjuster.AdjustStock(ctx, applied[i], -sign*entry.Count)
		if err != nil {
			errs = append(errs, fmt.Errorf("revert stock of %s: %w", applied[i].Hex(), err))
			continue
		}
		entry.Item.Stock = stock
	}
	return errors.Join(errs...)
}

func classify(entry *Entry, stock int, err error) error {
	switch {
	case errors.Is(err, repository.ErrInsufficientStock):
		return insufficient(entry.Item, entry.Count, stock)
	case errors.Is(err, repository.ErrNotFound):
		return response.Errorf(response.NotFound, "Grocery with _id '%s' not found.", entry.Item.ID.Hex())
	default:
		return response.Storage("adjust stock", err)
	}
}
