package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Rakhulsr/go-furniture/app/helpers"
	"github.com/Rakhulsr/go-furniture/app/models"
	"github.com/Rakhulsr/go-furniture/app/utils/calc"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	// ErrMissingReference means a configuration lacks one of its four
	// required references; it is never priced.
	ErrMissingReference = errors.New("configuration is missing a required reference")
	// ErrShapeNotPriced means the shape has no base price range.
	ErrShapeNotPriced = errors.New("shape has no base price range")
)

type PricingService struct {
	resolver  CatalogResolver
	validator *validator.Validate
}

func NewPricingService(resolver CatalogResolver, v *validator.Validate) *PricingService {
	return &PricingService{resolver: resolver, validator: v}
}

// PriceConfiguration resolves the configuration's references, validates
// every document involved and runs the price calculation.
func (s *PricingService) PriceConfiguration(ctx context.Context, cfg *models.TableConfiguration) (calc.PriceBreakdown, error) {
	if missing := cfg.MissingReferences(); len(missing) > 0 {
		return calc.PriceBreakdown{}, fmt.Errorf("%w: %s", ErrMissingReference, strings.Join(missing, ", "))
	}
	if err := helpers.ValidateDocument(s.validator, cfg); err != nil {
		return calc.PriceBreakdown{}, err
	}

	shape, err := s.resolver.GetShape(ctx, cfg.Shape.Ref)
	if err != nil {
		return calc.PriceBreakdown{}, err
	}
	material, err := s.resolver.GetMaterial(ctx, cfg.Material.Ref)
	if err != nil {
		return calc.PriceBreakdown{}, err
	}
	size, err := s.resolver.GetSize(ctx, cfg.Size.Ref)
	if err != nil {
		return calc.PriceBreakdown{}, err
	}
	quality, err := s.resolver.GetQuality(ctx, cfg.Quality.Ref)
	if err != nil {
		return calc.PriceBreakdown{}, err
	}

	for _, doc := range []models.Document{shape, material, size, quality} {
		if err := helpers.ValidateDocument(s.validator, doc); err != nil {
			return calc.PriceBreakdown{}, err
		}
	}
	if shape.BasePriceRange == nil {
		return calc.PriceBreakdown{}, fmt.Errorf("%w: %s", ErrShapeNotPriced, shape.Name)
	}

	in := calc.PriceInput{
		ShapeBasePrice:           decimal.NewFromFloat(shape.BasePriceRange.Midpoint()),
		MaterialMultiplier:       decimal.NewFromFloat(material.PriceMultiplier),
		SizeMultiplier:           decimal.NewFromFloat(size.PriceMultiplier),
		QualityAdjustmentPercent: decimal.NewFromFloat(quality.QualityAdjustment),
		QualityDirection:         calc.Direction(quality.PriceDirection),
	}
	if cfg.HasCustomDimensions() {
		in.CustomDimensions = true
		in.CustomSurchargePercent = decimal.NewNullDecimal(decimal.NewFromFloat(cfg.CustomDimensions.SurchargePercent()))
	}
	for _, opt := range cfg.AdditionalOptions {
		in.OptionAdjustments = append(in.OptionAdjustments, decimal.NewFromFloat(opt.PriceAdjustment))
	}
	if cfg.PriceOverride != nil {
		in.Override = decimal.NewNullDecimal(decimal.NewFromFloat(*cfg.PriceOverride))
	}

	return calc.CalculatePrice(in)
}

// StoredPrice is the rounded calculated price as written to calculatedPrice.
func StoredPrice(b calc.PriceBreakdown) float64 {
	return calc.RoundPrice(b.Calculated).InexactFloat64()
}
