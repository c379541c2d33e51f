// Package orders runs order placement and cancellation.
//
// Placement writes the order, takes the stock and links the order to its
// purchaser. With an atomic transactor the three writes commit together;
// otherwise every completed step is undone in reverse when a later one
// fails.
package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"grocerystore/internal/catalog"
	"grocerystore/internal/events"
	"grocerystore/internal/ledger"
	"grocerystore/internal/metrics"
	"grocerystore/internal/models"
	"grocerystore/internal/repository"
	"grocerystore/internal/response"
)

const publishTimeout = 5 * time.Second

type Service struct {
	groceries repository.GroceryRepository
	orders    repository.OrderRepository
	users     repository.UserRepository
	tx        repository.Transactor
	publisher events.Publisher
	log       *zap.Logger
	now       func() time.Time
}

func NewService(
	groceries repository.GroceryRepository,
	orders repository.OrderRepository,
	users repository.UserRepository,
	tx repository.Transactor,
	publisher events.Publisher,
	log *zap.Logger,
) *Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Service{
		groceries: groceries,
		orders:    orders,
		users:     users,
		tx:        tx,
		publisher: publisher,
		log:       log.Named("orders"),
		now:       time.Now,
	}
}

// Detail is an order together with its groceries, one entry per unit.
type Detail struct {
	Order        models.Order     `json:"order"`
	GroceryItems []models.Grocery `json:"groceryItems"`
}

// PlaceOrder creates an Active order for purchaserID from grocery ids, one
// id per unit.
func (s *Service) PlaceOrder(ctx context.Context, purchaserID primitive.ObjectID, refs []string) (order models.Order, err error) {
	defer func() { record("place", err) }()

	items, err := catalog.Resolve(ctx, s.groceries, refs, response.InputError)
	if err != nil {
		return models.Order{}, err
	}
	tally, err := ledger.VerifyAvailability(items)
	if err != nil {
		return models.Order{}, err
	}
	total, err := ledger.TotalCost(items)
	if err != nil {
		return models.Order{}, err
	}

	groceryIDs := make(models.RefList, 0, len(items))
	for _, item := range items {
		groceryIDs = append(groceryIDs, item.ID)
	}
	order = models.Order{
		ID:              primitive.NewObjectID(),
		CustomerID:      purchaserID,
		OrderDate:       s.now().UTC(),
		GroceryIDs:      groceryIDs,
		TotalCost:       total,
		PaymentReceived: false,
		Status:          models.StatusActive,
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return s.persist(ctx, order, tally)
	})
	if err != nil {
		return models.Order{}, err
	}

	metrics.RecordStockMovement(ledger.Decrement.String(), len(items))
	s.log.Info("order placed",
		zap.String("order_id", order.ID.Hex()),
		zap.String("customer_id", purchaserID.Hex()),
		zap.Int("items", len(items)),
		zap.Float64("total", total.Value),
		zap.String("currency", total.Currency))
	s.publish(ctx, events.OrderCreated, order)
	return order, nil
}

// persist performs the three placement writes. Without an atomic transactor
// it undoes the completed ones when a later write fails.
func (s *Service) persist(ctx context.Context, order models.Order, tally *ledger.Tally) error {
	var undo []func(context.Context) error
	fail := func(err error) error {
		if !s.tx.Atomic() {
			s.compensate(ctx, order.ID, undo)
		}
		return err
	}

	if err := s.orders.InsertOrder(ctx, &order); err != nil {
		return response.Storage("insert order", err)
	}
	undo = append(undo, func(ctx context.Context) error {
		return s.orders.DeleteOrder(ctx, order.ID)
	})

	if err := ledger.ApplyDelta(ctx, s.groceries, tally, ledger.Decrement); err != nil {
		return fail(err)
	}
	undo = append(undo, func(ctx context.Context) error {
		return ledger.ApplyDelta(ctx, s.groceries, tally, ledger.Restock)
	})

	if err := s.users.AppendOrder(ctx, order.CustomerID, order.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(response.New(response.NotFound, "No user found."))
		}
		return fail(response.Storage("append order to user", err))
	}
	return nil
}

func (s *Service) compensate(ctx context.Context, orderID primitive.ObjectID, undo []func(context.Context) error) {
	ctx = context.WithoutCancel(ctx)
	for i := len(undo) - 1; i >= 0; i-- {
		if err := undo[i](ctx); err != nil {
			s.log.Error("order compensation failed",
				zap.String("order_id", orderID.Hex()),
				zap.Int("step", i),
				zap.Error(err))
		}
	}
}

// CancelOrder marks an order Cancelled and returns its groceries to stock.
// Cancelling twice fails with Conflict.
func (s *Service) CancelOrder(ctx context.Context, rawID string) (order models.Order, err error) {
	defer func() { record("cancel", err) }()

	order, err = s.findOrder(ctx, rawID)
	if err != nil {
		return models.Order{}, err
	}
	if order.Status == models.StatusCancelled {
		return models.Order{}, alreadyCancelled()
	}
	previous := order.Status

	var restocked int
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		switch err := s.orders.SetOrderStatus(ctx, order.ID, previous, models.StatusCancelled); {
		case errors.Is(err, repository.ErrConflict):
			return alreadyCancelled()
		case errors.Is(err, repository.ErrNotFound):
			return response.New(response.NotFound, "No order found.")
		case err != nil:
			return response.Storage("cancel order", err)
		}

		var restockErr error
		restocked, restockErr = s.restock(ctx, order)
		if restockErr != nil && !s.tx.Atomic() {
			s.compensate(ctx, order.ID, []func(context.Context) error{
				func(ctx context.Context) error {
					return s.orders.SetOrderStatus(ctx, order.ID, models.StatusCancelled, previous)
				},
			})
		}
		return restockErr
	})
	if err != nil {
		return models.Order{}, err
	}

	order.Status = models.StatusCancelled
	metrics.RecordStockMovement(ledger.Restock.String(), restocked)
	s.log.Info("order cancelled", zap.String("order_id", order.ID.Hex()), zap.Int("restocked", restocked))
	s.publish(ctx, events.OrderCancelled, order)
	return order, nil
}

// restock looks every distinct grocery of the order up again and returns its
// units to stock. Groceries that no longer exist are skipped.
func (s *Service) restock(ctx context.Context, order models.Order) (int, error) {
	current := make(map[primitive.ObjectID]models.Grocery)
	items := make([]models.Grocery, 0, len(order.GroceryIDs))
	for _, id := range order.GroceryIDs {
		grocery, seen := current[id]
		if !seen {
			found, err := s.groceries.FindGrocery(ctx, id)
			switch {
			case errors.Is(err, repository.ErrNotFound):
				s.log.Warn("restock skipped missing grocery",
					zap.String("order_id", order.ID.Hex()),
					zap.String("grocery_id", id.Hex()))
				current[id] = models.Grocery{}
				continue
			case err != nil:
				return 0, response.Storage("find grocery", err)
			}
			current[id] = found
			grocery = found
		}
		if grocery.ID.IsZero() {
			continue
		}
		items = append(items, grocery)
	}
	if len(items) == 0 {
		return 0, nil
	}

	if err := ledger.ApplyDelta(ctx, s.groceries, ledger.NewTally(items), ledger.Restock); err != nil {
		return 0, err
	}
	return len(items), nil
}

// GetOrder returns an order and its groceries. Only the purchaser and
// administrators may read it.
func (s *Service) GetOrder(ctx context.Context, rawID string, viewer models.User) (Detail, error) {
	order, err := s.findOrder(ctx, rawID)
	if err != nil {
		return Detail{}, err
	}
	if order.CustomerID != viewer.ID && !viewer.IsAdmin() {
		return Detail{}, response.New(response.Forbidden, "Only the purchaser or an Administrator can view this order.")
	}

	items, err := catalog.Resolve(ctx, s.groceries, order.GroceryIDs.Hex(), response.InputError)
	if err != nil {
		return Detail{}, err
	}
	return Detail{Order: order, GroceryItems: items}, nil
}

// ListOrders returns the orders of customerID, newest first.
func (s *Service) ListOrders(ctx context.Context, customerID primitive.ObjectID) ([]models.Order, error) {
	orders, err := s.orders.FindOrdersByCustomer(ctx, customerID)
	if err != nil {
		return nil, response.Storage("find orders", err)
	}
	return orders, nil
}

func (s *Service) findOrder(ctx context.Context, rawID string) (models.Order, error) {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return models.Order{}, response.Errorf(response.CastError, "Invalid order _id: '%s'.", rawID)
	}
	order, err := s.orders.FindOrder(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return models.Order{}, response.New(response.NotFound, "No order found.")
	case err != nil:
		return models.Order{}, response.Storage("find order", err)
	}
	return order, nil
}

func alreadyCancelled() error {
	return response.New(response.Conflict, "Order had already been cancelled.")
}

// publish sends an order event. Failures are logged and never returned: the
// order is already committed.
func (s *Service) publish(ctx context.Context, eventType string, order models.Order) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := events.OrderEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		OrderID:    order.ID.Hex(),
		CustomerID: order.CustomerID.Hex(),
		GroceryIDs: order.GroceryIDs.Hex(),
		TotalCost:  order.TotalCost,
		Status:     order.Status,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("order event not published",
			zap.String("type", eventType),
			zap.String("order_id", event.OrderID),
			zap.Error(err))
	}
}

func record(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = string(response.KindOf(err))
		if outcome == "" {
			outcome = "error"
		}
	}
	metrics.RecordOrderOperation(operation, outcome)
}
