package fakers

import (
	"context"
	"math/rand"
	"testing"

	"github.com/Rakhulsr/go-furniture/app/helpers"
	"github.com/Rakhulsr/go-furniture/app/models"
	"github.com/Rakhulsr/go-furniture/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoCatalog() *services.Catalog {
	return &services.Catalog{
		Shapes: []models.TableShape{
			{Meta: models.Meta{ID: "tableShape-round"}, Name: "Round", Slug: models.NewSlug("round"), AreaMultiplier: 0.8, IsActive: true,
				BasePriceRange: &models.PriceRange{Min: 250, Max: 1100}},
			{Meta: models.Meta{ID: "tableShape-unpriced"}, Name: "Unpriced", Slug: models.NewSlug("unpriced"), AreaMultiplier: 1, IsActive: true},
		},
		Materials: []models.TableMaterial{
			{Meta: models.Meta{ID: "tableMaterial-oak"}, Name: "Oak", Slug: models.NewSlug("oak"), PriceMultiplier: 1.5, IsActive: true},
		},
		Sizes: []models.TableSize{
			{Meta: models.Meta{ID: "tableSize-small"}, Name: "Small", Slug: models.NewSlug("small"), PriceMultiplier: 1, IsActive: true,
				Dimensions:     models.Dimensions{Length: 120, Width: 120, Height: 75},
				SuitableShapes: []models.Reference{models.NewReference("tableShape-round")}},
			{Meta: models.Meta{ID: "tableSize-banquet"}, Name: "Banquet", Slug: models.NewSlug("banquet"), PriceMultiplier: 3, IsActive: true,
				Dimensions:     models.Dimensions{Length: 300, Width: 110, Height: 76},
				SuitableShapes: []models.Reference{models.NewReference("tableShape-rectangular")}},
		},
		Qualities: []models.TableQuality{
			{Meta: models.Meta{ID: "tableQuality-rustic"}, Name: "Rustic", Slug: models.NewSlug("rustic"), Grade: models.GradeRustic,
				QualityAdjustment: 10, PriceDirection: models.DirectionSubtract, IsActive: true},
		},
	}
}

func TestConfigurationsFaker(t *testing.T) {
	catalog := demoCatalog()
	pricing := services.NewPricingService(catalog, helpers.NewValidator())
	v := helpers.NewValidator()

	configurations, err := ConfigurationsFaker(context.Background(), catalog, pricing, 20, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	require.Len(t, configurations, 20)

	seen := map[string]bool{}
	for _, c := range configurations {
		assert.NoError(t, helpers.ValidateDocument(v, &c))
		assert.Equal(t, "tableShape-round", c.Shape.Ref)
		assert.Equal(t, "tableSize-small", c.Size.Ref)
		assert.GreaterOrEqual(t, c.LeadTime, 14)
		assert.LessOrEqual(t, c.LeadTime, 56)
		assert.LessOrEqual(t, len(c.AdditionalOptions), 2)
		assert.Greater(t, c.CalculatedPrice, 0.0)
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true

		// 675 × 1.5 × 1 × 0.9 before options and surcharge
		if !c.HasCustomDimensions() && len(c.AdditionalOptions) == 0 {
			assert.Equal(t, 911.25, c.CalculatedPrice)
		}
	}
}

func TestConfigurationFakerIncompleteCatalog(t *testing.T) {
	catalog := demoCatalog()
	catalog.Qualities[0].IsActive = false
	pricing := services.NewPricingService(catalog, helpers.NewValidator())

	_, err := ConfigurationFaker(context.Background(), catalog, pricing, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrIncompleteCatalog)

	catalog = demoCatalog()
	catalog.Sizes = catalog.Sizes[1:]
	_, err = ConfigurationFaker(context.Background(), catalog, services.NewPricingService(catalog, helpers.NewValidator()), rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrIncompleteCatalog)
}
