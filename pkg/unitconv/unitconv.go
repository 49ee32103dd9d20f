// Package unitconv converts material quantities and prices between a
// material's primary (mass) and secondary (volume) units via a density
// coefficient, interpreted as primary-units per secondary-unit.
package unitconv

import "github.com/shopspring/decimal"

const (
	// QuantityScale is the display precision for converted quantities
	QuantityScale = 3
	// MoneyScale is the precision for monetary amounts
	MoneyScale = 2
)

// ToSecondary converts a primary-unit quantity to the secondary unit.
// A non-positive density means the lookup failed upstream; the conversion
// returns 0 so ledger writes stay non-fatal.
func ToSecondary(primaryQty, density float64) float64 {
	if density <= 0 {
		return 0
	}
	q := decimal.NewFromFloat(primaryQty).
		Div(decimal.NewFromFloat(density)).
		Round(QuantityScale)
	f, _ := q.Float64()
	return f
}

// ToPrimary converts a secondary-unit quantity to the primary unit.
func ToPrimary(secondaryQty, density float64) float64 {
	q := decimal.NewFromFloat(secondaryQty).
		Mul(decimal.NewFromFloat(density)).
		Round(QuantityScale)
	f, _ := q.Float64()
	return f
}

// PriceToPrimary converts a per-secondary-unit price to a per-primary-unit
// price. Price converts inversely to quantity so the line total stays
// unit-invariant: price_p * qty_p == price_s * qty_s.
func PriceToPrimary(secondaryPrice, density float64) float64 {
	if density <= 0 {
		return 0
	}
	p := decimal.NewFromFloat(secondaryPrice).
		Div(decimal.NewFromFloat(density)).
		Round(MoneyScale)
	f, _ := p.Float64()
	return f
}

// PriceToSecondary converts a per-primary-unit price to a per-secondary-unit price.
func PriceToSecondary(primaryPrice, density float64) float64 {
	p := decimal.NewFromFloat(primaryPrice).
		Mul(decimal.NewFromFloat(density)).
		Round(MoneyScale)
	f, _ := p.Float64()
	return f
}

// LineTotal computes quantity x unit price rounded to money precision.
func LineTotal(qty, unitPrice float64) float64 {
	t := decimal.NewFromFloat(qty).
		Mul(decimal.NewFromFloat(unitPrice)).
		Round(MoneyScale)
	f, _ := t.Float64()
	return f
}

// RoundQuantity rounds to the fixed quantity precision.
func RoundQuantity(qty float64) float64 {
	f, _ := decimal.NewFromFloat(qty).Round(QuantityScale).Float64()
	return f
}

// RoundMoney rounds to the fixed money precision.
func RoundMoney(amount float64) float64 {
	f, _ := decimal.NewFromFloat(amount).Round(MoneyScale).Float64()
	return f
}
