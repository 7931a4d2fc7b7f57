package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/storefront/internal/pkg/cache"
	"github.com/jcmexdev/storefront/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/storefront/internal/storefront/core/ports"
)

type mapCache struct {
	values map[string]string
	sets   int
}

func newMapCache() *mapCache {
	return &mapCache{values: make(map[string]string)}
}

func (m *mapCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.values[key] = value.(string)
	m.sets++
	return nil
}

func (m *mapCache) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", cache.ErrMiss
	}
	return v, nil
}

func (m *mapCache) Key(kind, id string) string {
	return fmt.Sprintf("test:%s:%s", kind, id)
}

type countingCatalog struct {
	inner ports.ProductRepository
	calls int
}

func (c *countingCatalog) Product(ctx context.Context, id string) (*entity.Product, error) {
	c.calls++
	return c.inner.Product(ctx, id)
}

func TestCachedCatalogReadThrough(t *testing.T) {
	ctx := context.Background()
	inner := &countingCatalog{inner: NewInMemoryCatalog()}
	c := newMapCache()
	catalog := NewCachedCatalog(inner, c, time.Minute)

	first, err := catalog.Product(ctx, "prod_wardrobe")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, 1, c.sets)

	// Second read is served from the cache.
	second, err := catalog.Product(ctx, "prod_wardrobe")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)

	// The cached record must round-trip losslessly, tagged modifiers included.
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.BasePriceGross.Amount.Equal(second.BasePriceGross.Amount))
	require.Len(t, second.CustomOptions, len(first.CustomOptions))
	for i, opt := range first.CustomOptions {
		require.Len(t, second.CustomOptions[i].Values, len(opt.Values))
		for j, v := range opt.Values {
			assert.IsType(t, v.Modifier, second.CustomOptions[i].Values[j].Modifier,
				"option %s value %s", opt.ID, v.ID)
		}
	}
	require.Len(t, second.Services, len(first.Services))
}

func TestCachedCatalogMissesPropagateNotFound(t *testing.T) {
	ctx := context.Background()
	catalog := NewCachedCatalog(NewInMemoryCatalog(), newMapCache(), time.Minute)

	_, err := catalog.Product(ctx, "prod_missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCachedCatalogCorruptEntryFallsThrough(t *testing.T) {
	ctx := context.Background()
	inner := &countingCatalog{inner: NewInMemoryCatalog()}
	c := newMapCache()
	c.values[c.Key("product", "prod_lamp")] = "{not json"

	catalog := NewCachedCatalog(inner, c, time.Minute)

	p, err := catalog.Product(ctx, "prod_lamp")
	require.NoError(t, err)
	assert.Equal(t, "prod_lamp", p.ID)
	assert.Equal(t, 1, inner.calls)
}
