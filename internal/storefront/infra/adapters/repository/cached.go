package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/storefront/internal/pkg/cache"
	"github.com/jcmexdev/storefront/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/storefront/internal/storefront/core/ports"
)

// CachedCatalog is a read-through decorator over a ProductRepository. Catalog
// records change rarely, so a short TTL in Redis keeps quote recomputation
// off the upstream on every keystroke. Cache failures degrade to the inner
// repository, never to an error.
type CachedCatalog struct {
	inner ports.ProductRepository
	cache cache.Cache
	ttl   time.Duration
}

var _ ports.ProductRepository = (*CachedCatalog)(nil)

// NewCachedCatalog wraps inner with a cache using the given TTL.
func NewCachedCatalog(inner ports.ProductRepository, c cache.Cache, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{inner: inner, cache: c, ttl: ttl}
}

func (c *CachedCatalog) Product(ctx context.Context, id string) (*entity.Product, error) {
	key := c.cache.Key("product", id)

	if raw, err := c.cache.Get(ctx, key); err == nil {
		var rec productRecord
		if err := json.Unmarshal([]byte(raw), &rec); err == nil {
			return rec.toEntity()
		}
		// A corrupt cache entry falls through to the inner repository.
	}

	p, err := c.inner.Product(ctx, id)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(newProductRecord(p))
	if err == nil {
		if err := c.cache.Set(ctx, key, string(raw), c.ttl); err != nil {
			slog.WarnContext(ctx, "product cache write failed", "product_id", id, "error", err)
		}
	}

	return p, nil
}

// productRecord is the cache wire format. Price modifiers carry an explicit
// kind tag because the entity modifier is an interface and would not survive
// a plain JSON round trip.
type productRecord struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	BasePriceGross decimal.Decimal `json:"base_price_gross"`
	Options        []optionRecord  `json:"options,omitempty"`
	Services       []serviceRecord `json:"services,omitempty"`
}

type optionRecord struct {
	ID         string        `json:"id"`
	IsRequired bool          `json:"is_required,omitempty"`
	Type       string        `json:"type"`
	Values     []valueRecord `json:"values"`
}

type valueRecord struct {
	ID           string          `json:"id"`
	DisplayLabel string          `json:"label"`
	ModifierKind string          `json:"modifier_kind"`
	Modifier     decimal.Decimal `json:"modifier"`
}

type serviceRecord struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Price      decimal.Decimal `json:"price"`
	IsRequired bool            `json:"is_required,omitempty"`
}

const (
	modifierKindFixed      = "fixed"
	modifierKindPercentage = "percentage"
)

func newProductRecord(p *entity.Product) productRecord {
	rec := productRecord{
		ID:             p.ID,
		Name:           p.Name,
		BasePriceGross: p.BasePriceGross.Amount,
	}
	for _, opt := range p.CustomOptions {
		or := optionRecord{ID: opt.ID, IsRequired: opt.IsRequired, Type: string(opt.Type)}
		for _, v := range opt.Values {
			vr := valueRecord{ID: v.ID, DisplayLabel: v.DisplayLabel}
			switch m := v.Modifier.(type) {
			case entity.FixedModifier:
				vr.ModifierKind = modifierKindFixed
				vr.Modifier = m.Amount
			case entity.PercentageModifier:
				vr.ModifierKind = modifierKindPercentage
				vr.Modifier = m.Rate
			}
			or.Values = append(or.Values, vr)
		}
		rec.Options = append(rec.Options, or)
	}
	for _, s := range p.Services {
		rec.Services = append(rec.Services, serviceRecord{
			ID:         s.ID,
			Title:      s.Title,
			Price:      s.Price.Amount,
			IsRequired: s.IsRequired,
		})
	}
	return rec
}

func (rec productRecord) toEntity() (*entity.Product, error) {
	p := &entity.Product{
		ID:             rec.ID,
		Name:           rec.Name,
		BasePriceGross: entity.GrossEUR(rec.BasePriceGross),
	}
	for _, or := range rec.Options {
		opt := entity.CustomOption{ID: or.ID, IsRequired: or.IsRequired, Type: entity.OptionType(or.Type)}
		for _, vr := range or.Values {
			v := entity.CustomOptionValue{ID: vr.ID, DisplayLabel: vr.DisplayLabel}
			switch vr.ModifierKind {
			case modifierKindFixed:
				v.Modifier = entity.FixedModifier{Amount: vr.Modifier}
			case modifierKindPercentage:
				v.Modifier = entity.PercentageModifier{Rate: vr.Modifier}
			default:
				return nil, fmt.Errorf("repository: unknown modifier kind %q", vr.ModifierKind)
			}
			opt.Values = append(opt.Values, v)
		}
		p.CustomOptions = append(p.CustomOptions, opt)
	}
	for _, sr := range rec.Services {
		p.Services = append(p.Services, entity.Service{
			ID:         sr.ID,
			Title:      sr.Title,
			Price:      entity.GrossEUR(sr.Price),
			IsRequired: sr.IsRequired,
		})
	}
	return p, nil
}
