package calc

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// CalculatePercent returns pct percent of base.
func CalculatePercent(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(hundred)
}

// PercentFactor turns a percentage into a multiplicative factor: 20 -> 1.20.
func PercentFactor(pct decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Add(pct.Div(hundred))
}

// RoundPrice rounds to cents, as stored on documents and shown to buyers.
func RoundPrice(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
