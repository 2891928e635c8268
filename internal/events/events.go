// Package events broadcasts catalog changes and reports faults that the
// request path cannot surface to the caller.
package events

import (
	"context"
	"time"

	"github.com/Skotchmaster/inventory_cart/internal/models"
)

const (
	KindProductsUpdated = "products_updated"
	KindCascadeFailed   = "cascade_failed"
)

// ProductsEvent carries the full product list after a mutation.
type ProductsEvent struct {
	Kind     string           `json:"kind"`
	Products []models.Product `json:"products"`
	At       time.Time        `json:"at"`
}

// Fault describes a partially applied operation.
type Fault struct {
	Kind      string    `json:"kind"`
	ProductID string    `json:"productId,omitempty"`
	Error     string    `json:"error"`
	At        time.Time `json:"at"`
}

type Publisher interface {
	PublishProducts(ctx context.Context, products []models.Product) error
	PublishFault(ctx context.Context, f Fault) error
	Close() error
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) PublishProducts(context.Context, []models.Product) error { return nil }
func (Noop) PublishFault(context.Context, Fault) error { return nil }
func (Noop) Close() error { return nil }
