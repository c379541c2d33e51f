// Package memory is a process-local implementation of the repository
// contracts. Every call is serialized by one lock, which makes AdjustStock
// and SetOrderStatus atomic check-and-set operations.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"grocerystore/internal/models"
	"grocerystore/internal/repository"
)

type Store struct {
	mu sync.Mutex

	groceries    map[primitive.ObjectID]models.Grocery
	groceryOrder []primitive.ObjectID
	categories   map[primitive.ObjectID]models.Category
	orders       map[primitive.ObjectID]models.Order
	users        map[primitive.ObjectID]models.User
	tokens       map[primitive.ObjectID]models.RefreshToken
	carts        map[primitive.ObjectID]models.SavedCart
}

func New() *Store {
	return &Store{
		groceries:  map[primitive.ObjectID]models.Grocery{},
		categories: map[primitive.ObjectID]models.Category{},
		orders:     map[primitive.ObjectID]models.Order{},
		users:      map[primitive.ObjectID]models.User{},
		tokens:     map[primitive.ObjectID]models.RefreshToken{},
		carts:      map[primitive.ObjectID]models.SavedCart{},
	}
}

// Repositories exposes the store through the repository contracts.
func (s *Store) Repositories() repository.Store {
	return repository.Store{
		Groceries:  s,
		Categories: s,
		Orders:     s,
		Users:      s,
		Tokens:     s,
		Carts:      s,
		Tx:         repository.Sequential{},
		Health:     s,
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// clone deep-copies a document the same way a database round trip would.
func clone[T any](v T) T {
	data, err := bson.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("memory: marshal %T: %v", v, err))
	}
	var out T
	if err := bson.Unmarshal(data, &out); err != nil {
		panic(fmt.Sprintf("memory: unmarshal %T: %v", v, err))
	}
	return out
}

// overlay applies a $set-style update to doc and decodes the result into out.
func overlay(doc interface{}, set bson.M, out interface{}) error {
	data, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	var fields bson.M
	if err := bson.Unmarshal(data, &fields); err != nil {
		return err
	}
	for key, value := range set {
		fields[key] = value
	}
	data, err = bson.Marshal(fields)
	if err != nil {
		return err
	}
	return bson.Unmarshal(data, out)
}

/* =========================
   GROCERIES
========================= */

func (s *Store) FindGrocery(_ context.Context, id primitive.ObjectID) (models.Grocery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	grocery, ok := s.groceries[id]
	if !ok {
		return models.Grocery{}, repository.ErrNotFound
	}
	return clone(grocery), nil
}

func (s *Store) FindGroceries(_ context.Context, query repository.GroceryQuery) ([]models.Grocery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.ToLower(strings.TrimSpace(query.Name))
	out := make([]models.Grocery, 0)
	skipped := int64(0)
	for _, id := range s.groceryOrder {
		grocery := s.groceries[id]
		if query.ID != nil && grocery.ID != *query.ID {
			continue
		}
		if query.Category != "" && grocery.Category != query.Category {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(grocery.Name), name) {
			continue
		}
		if skipped < query.Skip {
			skipped++
			continue
		}
		out = append(out, clone(grocery))
		if query.Limit > 0 && int64(len(out)) >= query.Limit {
			break
		}
	}
	return out, nil
}

func (s *Store) InsertGrocery(_ context.Context, grocery *models.Grocery) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if grocery.ID.IsZero() {
		grocery.ID = primitive.NewObjectID()
	}
	if _, exists := s.groceries[grocery.ID]; exists {
		return repository.ErrDuplicate
	}
	s.groceries[grocery.ID] = clone(*grocery)
	s.groceryOrder = append(s.groceryOrder, grocery.ID)
	return nil
}

func (s *Store) UpdateGrocery(_ context.Context, id primitive.ObjectID, set bson.M) (models.Grocery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.groceries[id]
	if !ok {
		return models.Grocery{}, repository.ErrNotFound
	}
	var updated models.Grocery
	if err := overlay(existing, set, &updated); err != nil {
		return models.Grocery{}, err
	}
	updated.ID = id
	s.groceries[id] = updated
	return clone(updated), nil
}

func (s *Store) AdjustStock(_ context.Context, id primitive.ObjectID, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	grocery, ok := s.groceries[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	if delta < 0 && grocery.Stock < -delta {
		return grocery.Stock, repository.ErrInsufficientStock
	}
	grocery.Stock += delta
	s.groceries[id] = grocery
	return grocery.Stock, nil
}

/* =========================
   CATEGORIES
========================= */

func (s *Store) InsertCategory(_ context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	for _, existing := range s.categories {
		if existing.Name == category.Name {
			return repository.ErrDuplicate
		}
	}
	s.categories[category.ID] = clone(*category)
	return nil
}

func (s *Store) FindCategoryByName(_ context.Context, name string) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, category := range s.categories {
		if category.Name == name {
			return clone(category), nil
		}
	}
	return models.Category{}, repository.ErrNotFound
}

func (s *Store) ListCategories(_ context.Context, activeOnly bool) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Category, 0, len(s.categories))
	for _, category := range s.categories {
		if activeOnly && category.Status != models.StatusActive {
			continue
		}
		out = append(out, clone(category))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) AddGroceryToCategory(_ context.Context, categoryID, groceryID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, ok := s.categories[categoryID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, id := range category.GroceryIDs {
		if id == groceryID {
			return nil
		}
	}
	category.GroceryIDs = append(append(models.RefList{}, category.GroceryIDs...), groceryID)
	s.categories[categoryID] = category
	return nil
}

func (s *Store) RemoveGroceryFromCategory(_ context.Context, categoryID, groceryID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, ok := s.categories[categoryID]
	if !ok {
		return repository.ErrNotFound
	}
	kept := make(models.RefList, 0, len(category.GroceryIDs))
	for _, id := range category.GroceryIDs {
		if id != groceryID {
			kept = append(kept, id)
		}
	}
	category.GroceryIDs = kept
	s.categories[categoryID] = category
	return nil
}

/* =========================
   ORDERS
========================= */

func (s *Store) InsertOrder(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if _, exists := s.orders[order.ID]; exists {
		return repository.ErrDuplicate
	}
	s.orders[order.ID] = clone(*order)
	return nil
}

func (s *Store) FindOrder(_ context.Context, id primitive.ObjectID) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return models.Order{}, repository.ErrNotFound
	}
	return clone(order), nil
}

func (s *Store) FindOrdersByCustomer(_ context.Context, customerID primitive.ObjectID) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Order, 0)
	for _, order := range s.orders {
		if order.CustomerID == customerID {
			out = append(out, clone(order))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return out, nil
}

func (s *Store) SetOrderStatus(_ context.Context, id primitive.ObjectID, from, to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	if order.Status != from {
		return repository.ErrConflict
	}
	order.Status = to
	s.orders[id] = order
	return nil
}

func (s *Store) DeleteOrder(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.orders, id)
	return nil
}

/* =========================
   USERS
========================= */

func (s *Store) InsertUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users[user.ID] = clone(*user)
	return nil
}

func (s *Store) FindUser(_ context.Context, id primitive.ObjectID) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	return clone(user), nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			return clone(user), nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (s *Store) UpdateUser(_ context.Context, id primitive.ObjectID, set bson.M) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[id]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	if email, ok := set["email"].(string); ok && email != existing.Email {
		for otherID, other := range s.users {
			if otherID != id && other.Email == email {
				return models.User{}, repository.ErrDuplicate
			}
		}
	}
	var updated models.User
	if err := overlay(existing, set, &updated); err != nil {
		return models.User{}, err
	}
	updated.ID = id
	s.users[id] = updated
	return clone(updated), nil
}

func (s *Store) DeleteUser(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *Store) AppendOrder(_ context.Context, userID, orderID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	user.Orders = append(append(models.RefList{}, user.Orders...), orderID)
	s.users[userID] = user
	return nil
}

func (s *Store) RemoveOrder(_ context.Context, userID, orderID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	kept := make(models.RefList, 0, len(user.Orders))
	for _, id := range user.Orders {
		if id != orderID {
			kept = append(kept, id)
		}
	}
	user.Orders = kept
	s.users[userID] = user
	return nil
}

/* =========================
   REFRESH TOKENS
========================= */

func (s *Store) InsertRefreshToken(_ context.Context, token *models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token.ID.IsZero() {
		token.ID = primitive.NewObjectID()
	}
	s.tokens[token.ID] = clone(*token)
	return nil
}

func (s *Store) FindActiveRefreshToken(_ context.Context, tokenHash string) (models.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, token := range s.tokens {
		if token.TokenHash == tokenHash && !token.Revoked {
			return clone(token), nil
		}
	}
	return models.RefreshToken{}, repository.ErrNotFound
}

func (s *Store) RevokeRefreshToken(_ context.Context, id primitive.ObjectID, replacedBy *primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.tokens[id]
	if !ok {
		return repository.ErrNotFound
	}
	token.Revoked = true
	token.ReplacedByToken = replacedBy
	s.tokens[id] = token
	return nil
}

func (s *Store) RevokeRefreshTokenByHash(_ context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, token := range s.tokens {
		if token.TokenHash == tokenHash && !token.Revoked {
			token.Revoked = true
			s.tokens[id] = token
			return nil
		}
	}
	return repository.ErrNotFound
}

/* =========================
   SAVED CARTS
========================= */

func (s *Store) SaveCart(_ context.Context, cart models.SavedCart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[cart.UserID] = clone(cart)
	return nil
}

func (s *Store) FindCart(_ context.Context, userID primitive.ObjectID) (models.SavedCart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[userID]
	if !ok {
		return models.SavedCart{}, repository.ErrNotFound
	}
	return clone(cart), nil
}
