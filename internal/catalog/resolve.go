package catalog

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"grocerystore/internal/models"
	"grocerystore/internal/repository"
	"grocerystore/internal/response"
)

const resolveParallelism = 8

// GroceryFinder is the lookup Resolve needs.
type GroceryFinder interface {
	FindGrocery(ctx context.Context, id primitive.ObjectID) (models.Grocery, error)
}

// Resolve looks up every id concurrently and returns the groceries in the
// order of ids, duplicates included. The first id that is malformed or
// unknown aborts the whole call with an error of kind missing.
func Resolve(ctx context.Context, finder GroceryFinder, ids []string, missing response.Kind) ([]models.Grocery, error) {
	parsed := make([]primitive.ObjectID, len(ids))
	for i, raw := range ids {
		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
		if err != nil {
			return nil, invalidID(missing, raw)
		}
		parsed[i] = id
	}

	out := make([]models.Grocery, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveParallelism)
	for i := range parsed {
		i := i
		g.Go(func() error {
			grocery, err := finder.FindGrocery(gctx, parsed[i])
			switch {
			case errors.Is(err, repository.ErrNotFound):
				return invalidID(missing, ids[i])
			case err != nil:
				return response.Storage("find grocery", err)
			}
			out[i] = grocery
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func invalidID(kind response.Kind, raw string) error {
	return response.Errorf(kind, "Invalid grocery _id: '%s'.", raw)
}
