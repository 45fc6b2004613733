package calc

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type Direction string

const (
	DirectionAdd      Direction = "add"
	DirectionSubtract Direction = "subtract"
)

var (
	ErrAdjustmentOutOfRange = errors.New("calc: quality adjustment must be within [0, 100]")
	ErrSurchargeOutOfRange  = errors.New("calc: custom dimension surcharge must be within [0, 100]")
	ErrInvalidDirection     = errors.New("calc: quality direction must be add or subtract")
	ErrNonPositiveFactor    = errors.New("calc: base price and multipliers must be positive")
	ErrNegativeOverride     = errors.New("calc: price override must not be negative")
	ErrNegativePrice        = errors.New("calc: option adjustments push the price below zero")
)

func GetDefaultCustomSurchargePercent() decimal.Decimal {
	return decimal.NewFromInt(15)
}

type PriceInput struct {
	ShapeBasePrice           decimal.Decimal
	MaterialMultiplier       decimal.Decimal
	SizeMultiplier           decimal.Decimal
	QualityAdjustmentPercent decimal.Decimal
	QualityDirection         Direction

	// CustomDimensions enables the surcharge. A null CustomSurchargePercent
	// falls back to the default.
	CustomDimensions       bool
	CustomSurchargePercent decimal.NullDecimal

	OptionAdjustments []decimal.Decimal
	Override          decimal.NullDecimal
}

type PriceBreakdown struct {
	Subtotal          decimal.Decimal
	CustomSurcharge   decimal.Decimal
	QualityAdjustment decimal.Decimal
	OptionsTotal      decimal.Decimal
	Calculated        decimal.Decimal
	Override          decimal.NullDecimal
}

// Effective is the price shown and charged: the override when present,
// otherwise the calculated price.
func (b PriceBreakdown) Effective() decimal.Decimal {
	if b.Override.Valid {
		return b.Override.Decimal
	}
	return b.Calculated
}

// CalculatePrice applies, in order: the multiplicative chain, the custom
// dimension surcharge, the quality adjustment and the flat option
// adjustments. Out-of-range inputs are rejected, never clamped.
func CalculatePrice(in PriceInput) (PriceBreakdown, error) {
	var out PriceBreakdown

	for _, f := range []decimal.Decimal{in.ShapeBasePrice, in.MaterialMultiplier, in.SizeMultiplier} {
		if !f.IsPositive() {
			return out, ErrNonPositiveFactor
		}
	}
	if err := checkPercent(in.QualityAdjustmentPercent, ErrAdjustmentOutOfRange); err != nil {
		return out, err
	}
	if in.QualityDirection != DirectionAdd && in.QualityDirection != DirectionSubtract {
		return out, fmt.Errorf("%w: %q", ErrInvalidDirection, in.QualityDirection)
	}
	if in.Override.Valid && in.Override.Decimal.IsNegative() {
		return out, ErrNegativeOverride
	}

	out.Subtotal = in.ShapeBasePrice.Mul(in.MaterialMultiplier).Mul(in.SizeMultiplier)
	price := out.Subtotal

	if in.CustomDimensions {
		surcharge := GetDefaultCustomSurchargePercent()
		if in.CustomSurchargePercent.Valid {
			surcharge = in.CustomSurchargePercent.Decimal
		}
		if err := checkPercent(surcharge, ErrSurchargeOutOfRange); err != nil {
			return out, err
		}
		out.CustomSurcharge = CalculatePercent(price, surcharge)
		price = price.Add(out.CustomSurcharge)
	}

	out.QualityAdjustment = CalculatePercent(price, in.QualityAdjustmentPercent)
	if in.QualityDirection == DirectionSubtract {
		out.QualityAdjustment = out.QualityAdjustment.Neg()
	}
	price = price.Add(out.QualityAdjustment)

	out.OptionsTotal = decimal.Sum(decimal.Zero, in.OptionAdjustments...)
	price = price.Add(out.OptionsTotal)
	if price.IsNegative() {
		return out, ErrNegativePrice
	}

	out.Calculated = price
	out.Override = in.Override
	return out, nil
}

// LegacyQualityMultiplier expresses an additive quality adjustment as the
// multiplicative factor older storefront builds read: add 20 -> 1.2,
// subtract 10 -> 0.9.
func LegacyQualityMultiplier(pct decimal.Decimal, dir Direction) (decimal.Decimal, error) {
	if err := checkPercent(pct, ErrAdjustmentOutOfRange); err != nil {
		return decimal.Zero, err
	}
	switch dir {
	case DirectionAdd:
		return PercentFactor(pct), nil
	case DirectionSubtract:
		return PercentFactor(pct.Neg()), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidDirection, dir)
	}
}

func checkPercent(pct decimal.Decimal, errOut error) error {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return fmt.Errorf("%w: got %s", errOut, pct.String())
	}
	return nil
}
