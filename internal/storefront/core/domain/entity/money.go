package entity

import "github.com/shopspring/decimal"

// Basis states whether an amount includes tax.
type Basis string

const (
	BasisGross Basis = "gross"
	BasisNett  Basis = "nett"
)

type Currency string

// The storefront sells in a single currency.
const CurrencyEUR Currency = "EUR"

// Money is a decimal amount paired with its currency and tax basis.
// Amounts carry full precision; rounding happens only at display formatting.
// Values with different bases must never be combined without explicit
// conversion.
type Money struct {
	Amount   decimal.Decimal
	Currency Currency
	Basis    Basis
}

// GrossEUR builds a tax-inclusive EUR amount.
func GrossEUR(amount decimal.Decimal) Money {
	return Money{Amount: amount, Currency: CurrencyEUR, Basis: BasisGross}
}

// WithAmount returns a copy of m carrying a different amount but the same
// currency and basis. Used to derive totals that stay on the same basis as
// the price they were computed from.
func (m Money) WithAmount(amount decimal.Decimal) Money {
	return Money{Amount: amount, Currency: m.Currency, Basis: m.Basis}
}

// StringFixed formats the amount with the given number of decimal places.
func (m Money) StringFixed(places int32) string {
	return m.Amount.StringFixed(places)
}
