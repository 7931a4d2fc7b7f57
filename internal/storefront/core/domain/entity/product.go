package entity

import "github.com/shopspring/decimal"

// OptionType is the UI control a custom option renders as.
type OptionType string

const (
	OptionTypeRadio  OptionType = "radio"
	OptionTypeSelect OptionType = "select"
)

// PriceModifier adjusts a product's price when an option value is selected.
// The two concrete kinds are FixedModifier and PercentageModifier; keeping
// them as distinct types makes it impossible to apply a percentage to
// anything but the base price.
type PriceModifier interface {
	isPriceModifier()
}

// FixedModifier adds a signed amount to the unit price.
type FixedModifier struct {
	Amount decimal.Decimal
}

// PercentageModifier adds a percentage of the product's base gross price.
// Percentages never compound with each other or with fixed modifiers.
type PercentageModifier struct {
	Rate decimal.Decimal
}

func (FixedModifier) isPriceModifier()      {}
func (PercentageModifier) isPriceModifier() {}

// CustomOption is a configurable attribute of a product with an ordered list
// of selectable values.
type CustomOption struct {
	ID         string
	IsRequired bool
	Type       OptionType
	Values     []CustomOptionValue
}

// CustomOptionValue is one selectable choice for a CustomOption.
type CustomOptionValue struct {
	ID           string
	DisplayLabel string
	Modifier     PriceModifier
}

// Service is an optional add-on with a fixed price. Required services are not
// customer-toggleable but are still reflected in the price when selected.
type Service struct {
	ID         string
	Title      string
	Price      Money
	IsRequired bool
}

// Product is the normalized record the pricing engine consumes. It is
// supplied by the catalog repository; the core never fetches it itself.
type Product struct {
	ID             string
	Name           string
	BasePriceGross Money
	CustomOptions  []CustomOption
	Services       []Service
}
