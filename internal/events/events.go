// Package events publishes order lifecycle events.
package events

import (
	"context"
	"time"

	"grocerystore/internal/models"
)

const (
	OrderCreated   = "order.created"
	OrderCancelled = "order.cancelled"
)

// OrderEvent is the message body sent for every order transition.
type OrderEvent struct {
	ID         string       `json:"id"`
	Type       string       `json:"type"`
	OrderID    string       `json:"orderId"`
	CustomerID string       `json:"customerId"`
	GroceryIDs []string     `json:"groceryIds"`
	TotalCost  models.Price `json:"totalCost"`
	Status     string       `json:"status"`
	OccurredAt time.Time    `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, event OrderEvent) error
	Close() error
}

// Noop drops every event. It is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, OrderEvent) error { return nil }

func (Noop) Close() error { return nil }
