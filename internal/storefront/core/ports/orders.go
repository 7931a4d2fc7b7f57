package ports

import (
	"context"

	"github.com/jcmexdev/storefront/internal/storefront/core/domain/entity"
)

// OrderRepository supplies normalized order records to the lifecycle engine.
type OrderRepository interface {
	Order(ctx context.Context, id string) (*entity.Order, error)
}

// CancellationService submits a customer's cancellation request to the
// order-management backend. The storefront never transitions order status
// itself; the backend decides what the request does to the order.
type CancellationService interface {
	RequestCancellation(ctx context.Context, orderID, reason string) error
}
