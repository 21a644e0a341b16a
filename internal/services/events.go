package services

import (
	"context"
	"time"
)

// Routing keys of the catalog events.
const (
	EventProductCreated      = "product.created"
	EventProductDeleted      = "product.deleted"
	EventProductStockReduced = "product.stock_reduced"
)

// EventPublisher delivers catalog events to interested consumers.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, any) error { return nil }

type ProductEvent struct {
	ProductID uint      `json:"product_id"`
	Barcode   string    `json:"barcode"`
	Quantity  int       `json:"quantity"`
	At        time.Time `json:"at"`
}

type StockReducedEvent struct {
	ProductID uint      `json:"product_id"`
	Amount    int       `json:"amount"`
	Quantity  int       `json:"quantity"`
	At        time.Time `json:"at"`
}
