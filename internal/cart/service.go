package cart

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"grocerystore/internal/catalog"
	"grocerystore/internal/models"
	"grocerystore/internal/repository"
	"grocerystore/internal/response"
)

// Service keeps one saved cart per user.
type Service struct {
	groceries catalog.GroceryFinder
	carts     repository.CartRepository
	log       *zap.Logger
	now       func() time.Time
}

func NewService(groceries catalog.GroceryFinder, carts repository.CartRepository, log *zap.Logger) *Service {
	return &Service{groceries: groceries, carts: carts, log: log.Named("cart"), now: time.Now}
}

// SaveCart replaces the saved cart of userID. Every id must resolve.
func (s *Service) SaveCart(ctx context.Context, userID primitive.ObjectID, ids []string) error {
	if _, err := catalog.Resolve(ctx, s.groceries, ids, response.NotFound); err != nil {
		return err
	}
	saved := models.SavedCart{UserID: userID, Cart: ids, UpdatedAt: s.now().UTC()}
	if err := s.carts.SaveCart(ctx, saved); err != nil {
		return response.Storage("save cart", err)
	}
	s.log.Debug("cart saved", zap.String("user_id", userID.Hex()), zap.Int("items", len(ids)))
	return nil
}

// GetCart returns the groceries of the saved cart of userID.
func (s *Service) GetCart(ctx context.Context, userID primitive.ObjectID) ([]models.Grocery, error) {
	saved, err := s.carts.FindCart(ctx, userID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, response.New(response.NotFound, "No saved cart found.")
	case err != nil:
		return nil, response.Storage("find cart", err)
	}
	return catalog.Resolve(ctx, s.groceries, saved.Cart, response.NotFound)
}
