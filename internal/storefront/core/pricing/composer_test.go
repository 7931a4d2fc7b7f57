package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/storefront/internal/storefront/core/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testCatalog() ([]entity.CustomOption, []entity.Service) {
	options := []entity.CustomOption{
		{
			ID:   "size",
			Type: entity.OptionTypeRadio,
			Values: []entity.CustomOptionValue{
				{ID: "small", Modifier: entity.FixedModifier{Amount: decimal.Zero}},
				{ID: "large", Modifier: entity.FixedModifier{Amount: dec("25")}},
				{ID: "xl", Modifier: entity.PercentageModifier{Rate: dec("10")}},
			},
		},
		{
			ID:   "finish",
			Type: entity.OptionTypeSelect,
			Values: []entity.CustomOptionValue{
				{ID: "standard", Modifier: entity.FixedModifier{Amount: decimal.Zero}},
				{ID: "premium", Modifier: entity.PercentageModifier{Rate: dec("5")}},
				{ID: "clearance", Modifier: entity.FixedModifier{Amount: dec("-150")}},
			},
		},
	}
	services := []entity.Service{
		{ID: "assembly", Title: "Assembly", Price: entity.GrossEUR(dec("59"))},
		{ID: "disposal", Title: "Disposal", Price: entity.GrossEUR(dec("29"))},
	}
	return options, services
}

func TestComposeBreakdown(t *testing.T) {
	options, services := testCatalog()
	base := entity.GrossEUR(dec("100"))

	res, err := Compose(base,
		Selection{"size": "large"},
		options,
		[]string{"assembly"},
		services,
		3,
	)
	require.NoError(t, err)

	assert.True(t, res.OptionsDelta.Amount.Equal(dec("25")), "options delta = %s", res.OptionsDelta.Amount)
	assert.True(t, res.ServicesDelta.Amount.Equal(dec("59")), "services delta = %s", res.ServicesDelta.Amount)
	assert.True(t, res.UnitPrice.Amount.Equal(dec("184")), "unit price = %s", res.UnitPrice.Amount)
	assert.True(t, res.LineTotal.Amount.Equal(dec("552")), "line total = %s", res.LineTotal.Amount)
	assert.Equal(t, entity.CurrencyEUR, res.LineTotal.Currency)
	assert.Equal(t, entity.BasisGross, res.LineTotal.Basis)
}

func TestComposeSumIdentities(t *testing.T) {
	options, services := testCatalog()
	base := entity.GrossEUR(dec("123.45"))

	res, err := Compose(base,
		Selection{"size": "xl", "finish": "premium"},
		options,
		[]string{"assembly", "disposal"},
		services,
		7,
	)
	require.NoError(t, err)

	sum := res.BasePrice.Amount.Add(res.OptionsDelta.Amount).Add(res.ServicesDelta.Amount)
	assert.True(t, res.UnitPrice.Amount.Equal(sum), "unit = base + options + services exactly")

	line := res.UnitPrice.Amount.Mul(decimal.NewFromInt(7))
	assert.True(t, res.LineTotal.Amount.Equal(line), "line = unit * quantity exactly")
}

func TestComposePercentagesNeverCompound(t *testing.T) {
	options, _ := testCatalog()
	base := entity.GrossEUR(dec("100"))

	// 10% + 5% on a 100 base must yield 15, not 15.5.
	res, err := Compose(base, Selection{"size": "xl", "finish": "premium"}, options, nil, nil, 1)
	require.NoError(t, err)

	assert.True(t, res.OptionsDelta.Amount.Equal(dec("15")), "options delta = %s", res.OptionsDelta.Amount)
	assert.True(t, res.UnitPrice.Amount.Equal(dec("115")))
}

func TestComposeFloorsNegativeUnitPrice(t *testing.T) {
	options, _ := testCatalog()
	base := entity.GrossEUR(dec("100"))

	res, err := Compose(base, Selection{"finish": "clearance"}, options, nil, nil, 2)
	require.NoError(t, err)

	assert.True(t, res.OptionsDelta.Amount.Equal(dec("-150")))
	assert.True(t, res.UnitPrice.Amount.IsZero(), "unit price floored at zero, got %s", res.UnitPrice.Amount)
	assert.True(t, res.LineTotal.Amount.IsZero())
}

func TestComposeIgnoresUnknownIDs(t *testing.T) {
	options, services := testCatalog()
	base := entity.GrossEUR(dec("100"))

	tests := []struct {
		name       string
		selections Selection
		serviceIDs []string
	}{
		{"unknown option id", Selection{"color": "red"}, nil},
		{"unknown value id", Selection{"size": "gigantic"}, nil},
		{"unknown service id", nil, []string{"gift_wrap"}},
		{"mixed stale state", Selection{"size": "gigantic", "color": "red"}, []string{"gift_wrap"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Compose(base, tt.selections, options, tt.serviceIDs, services, 1)
			require.NoError(t, err, "stale configuration must not fail the computation")
			assert.True(t, res.OptionsDelta.Amount.IsZero())
			assert.True(t, res.ServicesDelta.Amount.IsZero())
			assert.True(t, res.UnitPrice.Amount.Equal(dec("100")))
		})
	}
}

func TestComposeInvalidQuantity(t *testing.T) {
	options, services := testCatalog()
	base := entity.GrossEUR(dec("100"))

	for _, q := range []int{0, -1, -100} {
		_, err := Compose(base, nil, options, nil, services, q)
		assert.ErrorIs(t, err, ErrInvalidQuantity, "quantity %d", q)
	}
}

func TestComposeDeterministic(t *testing.T) {
	options, services := testCatalog()
	base := entity.GrossEUR(dec("499.90"))
	sel := Selection{"size": "xl", "finish": "premium"}
	ids := []string{"assembly", "disposal"}

	first, err := Compose(base, sel, options, ids, services, 4)
	require.NoError(t, err)
	second, err := Compose(base, sel, options, ids, services, 4)
	require.NoError(t, err)

	assert.True(t, first.OptionsDelta.Amount.Equal(second.OptionsDelta.Amount))
	assert.True(t, first.ServicesDelta.Amount.Equal(second.ServicesDelta.Amount))
	assert.True(t, first.UnitPrice.Amount.Equal(second.UnitPrice.Amount))
	assert.True(t, first.LineTotal.Amount.Equal(second.LineTotal.Amount))
}

func TestComposeQuantityAppliedAfterModifiers(t *testing.T) {
	options, services := testCatalog()
	base := entity.GrossEUR(dec("100"))

	res, err := Compose(base, Selection{"size": "xl"}, options, []string{"disposal"}, services, 5)
	require.NoError(t, err)

	// (100 + 10 + 29) * 5, never 100*5 + 10 + 29.
	assert.True(t, res.LineTotal.Amount.Equal(dec("695")), "line total = %s", res.LineTotal.Amount)
}
