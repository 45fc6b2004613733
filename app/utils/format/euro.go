package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

func euroAccounting() *accounting.Accounting {
	return &accounting.Accounting{Symbol: "€", Precision: 2, Thousand: ".", Decimal: ","}
}

// FormatEuro renders an amount the way the storefront shows prices, e.g. €1.836,00.
func FormatEuro(amount interface{}) string {
	var decAmount decimal.Decimal
	switch v := amount.(type) {
	case decimal.Decimal:
		decAmount = v
	case float64:
		decAmount = decimal.NewFromFloat(v)
	case int:
		decAmount = decimal.NewFromInt(int64(v))
	case int64:
		decAmount = decimal.NewFromInt(v)
	case string:
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			return euroAccounting().FormatMoneyDecimal(decimal.Zero)
		}
		decAmount = parsed
	default:
		decAmount = decimal.Zero
	}

	return euroAccounting().FormatMoneyDecimal(decAmount.Round(2))
}

// FormatAdjustment renders a directional percentage, e.g. +20% or -10%.
func FormatAdjustment(pct float64, direction string) string {
	sign := "+"
	if direction == "subtract" && pct != 0 {
		sign = "-"
	}
	return sign + decimal.NewFromFloat(pct).String() + "%"
}

// FormatMultiplier renders a factor as ×1.50.
func FormatMultiplier(m float64) string {
	return "×" + decimal.NewFromFloat(m).StringFixed(2)
}
