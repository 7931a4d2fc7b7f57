package ports

import (
	"context"

	"github.com/jcmexdev/storefront/internal/storefront/core/domain/entity"
)

// ProductRepository is the port the pricing engine's callers fetch normalized
// product records through. The core performs no network I/O itself.
type ProductRepository interface {
	Product(ctx context.Context, id string) (*entity.Product, error)
}
