package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/storefront/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/storefront/internal/storefront/core/ports"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("repository: not found")

// Ensure the in-memory adapters implement their ports at compile time.
var (
	_ ports.ProductRepository   = (*InMemoryCatalog)(nil)
	_ ports.OrderRepository     = (*InMemoryOrders)(nil)
	_ ports.CancellationService = (*InMemoryOrders)(nil)
)

// InMemoryCatalog is a seeded in-memory ProductRepository intended for local
// development and tests only. Do NOT use in production.
type InMemoryCatalog struct {
	mu       sync.RWMutex
	products map[string]*entity.Product
}

// NewInMemoryCatalog returns a catalog seeded with a couple of configurable
// products.
func NewInMemoryCatalog() *InMemoryCatalog {
	dec := decimal.RequireFromString

	return &InMemoryCatalog{
		products: map[string]*entity.Product{
			"prod_wardrobe": {
				ID:             "prod_wardrobe",
				Name:           "Sliding-door wardrobe",
				BasePriceGross: entity.GrossEUR(dec("499.90")),
				CustomOptions: []entity.CustomOption{
					{
						ID:         "opt_width",
						IsRequired: true,
						Type:       entity.OptionTypeRadio,
						Values: []entity.CustomOptionValue{
							{ID: "w200", DisplayLabel: "200 cm", Modifier: entity.FixedModifier{Amount: decimal.Zero}},
							{ID: "w250", DisplayLabel: "250 cm", Modifier: entity.FixedModifier{Amount: dec("89.00")}},
							{ID: "w300", DisplayLabel: "300 cm", Modifier: entity.PercentageModifier{Rate: dec("25")}},
						},
					},
					{
						ID:   "opt_finish",
						Type: entity.OptionTypeSelect,
						Values: []entity.CustomOptionValue{
							{ID: "matte", DisplayLabel: "Matte white", Modifier: entity.FixedModifier{Amount: decimal.Zero}},
							{ID: "oak", DisplayLabel: "Oak veneer", Modifier: entity.FixedModifier{Amount: dec("79.00")}},
							{ID: "gloss", DisplayLabel: "High gloss", Modifier: entity.PercentageModifier{Rate: dec("10")}},
						},
					},
				},
				Services: []entity.Service{
					{ID: "svc_assembly", Title: "Assembly at home", Price: entity.GrossEUR(dec("59.00"))},
					{ID: "svc_disposal", Title: "Old furniture disposal", Price: entity.GrossEUR(dec("29.00"))},
				},
			},
			"prod_lamp": {
				ID:             "prod_lamp",
				Name:           "Floor lamp",
				BasePriceGross: entity.GrossEUR(dec("89.00")),
				Services: []entity.Service{
					{ID: "svc_giftwrap", Title: "Gift wrapping", Price: entity.GrossEUR(dec("4.50"))},
				},
			},
		},
	}
}

func (c *InMemoryCatalog) Product(ctx context.Context, id string) (*entity.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.products[id]
	if !ok {
		return nil, fmt.Errorf("product %q: %w", id, ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

// InMemoryOrders is a seeded in-memory OrderRepository that doubles as the
// CancellationService the order-management backend would normally provide.
// Development and tests only.
type InMemoryOrders struct {
	mu     sync.RWMutex
	orders map[string]*entity.Order
}

// NewInMemoryOrders returns orders seeded across the lifecycle.
func NewInMemoryOrders() *InMemoryOrders {
	return &InMemoryOrders{
		orders: map[string]*entity.Order{
			"ord_1001": {ID: "ord_1001", Status: entity.StatusPending, PaymentMethod: entity.PaymentMethodCreditCard, PaymentStatus: entity.PaymentStatusPending},
			"ord_1002": {ID: "ord_1002", Status: entity.StatusShipped, PaymentMethod: entity.PaymentMethodBankTransfer, PaymentStatus: entity.PaymentStatusPaid},
			"ord_1003": {ID: "ord_1003", Status: entity.StatusInTransit, PaymentMethod: entity.PaymentMethodCreditCard, PaymentStatus: entity.PaymentStatusPaid},
			"ord_1004": {ID: "ord_1004", Status: entity.StatusCancelled, PaymentMethod: entity.PaymentMethodBankTransfer, PaymentStatus: entity.PaymentStatusPending},
			"ord_1005": {ID: "ord_1005", Status: entity.StatusProcessing, PaymentMethod: entity.PaymentMethodBankTransfer, PaymentStatus: entity.PaymentStatusPaid},
		},
	}
}

func (o *InMemoryOrders) Order(ctx context.Context, id string) (*entity.Order, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	ord, ok := o.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %q: %w", id, ErrNotFound)
	}
	cp := *ord
	return &cp, nil
}

// RequestCancellation mimics the backend: it accepts the request only while
// the order is still customer-cancellable and flips the status to
// order_cancel_request. The storefront itself never computes status.
func (o *InMemoryOrders) RequestCancellation(ctx context.Context, orderID, reason string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	ord, ok := o.orders[orderID]
	if !ok {
		return fmt.Errorf("order %q: %w", orderID, ErrNotFound)
	}

	switch ord.Status {
	case entity.StatusPending, entity.StatusPendingPayment, entity.StatusProcessing:
		ord.Status = entity.StatusOrderCancelRequest
		return nil
	}
	return fmt.Errorf("order %q in status %q cannot be cancelled", orderID, ord.Status)
}
