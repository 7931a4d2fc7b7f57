// Package pricing derives the final payable amount for a configured product
// from its base price, selected custom options, selected services, and
// quantity.
//
// Compose is pure and side-effect free: it is invoked from debounced UI
// handlers on every selection change, so repeated calls with identical inputs
// must return identical results and partial configuration state must degrade
// gracefully instead of failing the whole computation.
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/storefront/internal/storefront/core/domain/entity"
)

// ErrInvalidQuantity is the only rejection the composer produces. All other
// malformed inputs (stale option/value/service ids) are absorbed by the
// ignore-unknown-id rule so the UI stays responsive mid-configuration.
var ErrInvalidQuantity = errors.New("pricing: quantity must be at least 1")

// Selection maps a custom option id to the selected value id. A map key per
// option gives single-select semantics: changing a choice overwrites the
// previous one.
type Selection map[string]string

// Result is the itemized outcome of one Compose call. It is a fresh,
// immutable value object; every amount shares the currency and basis of the
// base price it was derived from.
type Result struct {
	BasePrice     entity.Money
	OptionsDelta  entity.Money
	ServicesDelta entity.Money
	UnitPrice     entity.Money
	LineTotal     entity.Money
	Quantity      int
}

var hundred = decimal.NewFromInt(100)

// Compose computes the itemized total for one configured product line.
//
// Fixed modifiers contribute their amount directly; percentage modifiers
// contribute a share of the base gross price, so multiple percentages sum
// rather than compound. Services add their fixed price once per unit.
// The unit price is floored at zero in case fixed discounts drive it
// negative; quantity is applied after all per-unit modifiers.
func Compose(
	basePriceGross entity.Money,
	selections Selection,
	catalogOptions []entity.CustomOption,
	selectedServiceIDs []string,
	catalogServices []entity.Service,
	quantity int,
) (Result, error) {
	if quantity < 1 {
		return Result{}, ErrInvalidQuantity
	}

	// Walk the catalog, not the selection map, so iteration order is fixed
	// and selections referencing unknown options fall through silently.
	optionsDelta := decimal.Zero
	for _, opt := range catalogOptions {
		valueID, ok := selections[opt.ID]
		if !ok {
			continue
		}
		value, ok := findValue(opt, valueID)
		if !ok {
			continue
		}
		switch m := value.Modifier.(type) {
		case entity.FixedModifier:
			optionsDelta = optionsDelta.Add(m.Amount)
		case entity.PercentageModifier:
			optionsDelta = optionsDelta.Add(basePriceGross.Amount.Mul(m.Rate).Div(hundred))
		}
	}

	servicesDelta := decimal.Zero
	for _, id := range selectedServiceIDs {
		svc, ok := findService(catalogServices, id)
		if !ok {
			continue
		}
		servicesDelta = servicesDelta.Add(svc.Price.Amount)
	}

	unit := basePriceGross.Amount.Add(optionsDelta).Add(servicesDelta)
	if unit.IsNegative() {
		unit = decimal.Zero
	}
	line := unit.Mul(decimal.NewFromInt(int64(quantity)))

	return Result{
		BasePrice:     basePriceGross,
		OptionsDelta:  basePriceGross.WithAmount(optionsDelta),
		ServicesDelta: basePriceGross.WithAmount(servicesDelta),
		UnitPrice:     basePriceGross.WithAmount(unit),
		LineTotal:     basePriceGross.WithAmount(line),
		Quantity:      quantity,
	}, nil
}

func findValue(opt entity.CustomOption, valueID string) (entity.CustomOptionValue, bool) {
	for _, v := range opt.Values {
		if v.ID == valueID {
			return v, true
		}
	}
	return entity.CustomOptionValue{}, false
}

func findService(services []entity.Service, id string) (entity.Service, bool) {
	for _, s := range services {
		if s.ID == id {
			return s, true
		}
	}
	return entity.Service{}, false
}
