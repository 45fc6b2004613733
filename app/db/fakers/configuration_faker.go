package fakers

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/Rakhulsr/go-furniture/app/models"
	"github.com/Rakhulsr/go-furniture/app/services"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// ErrIncompleteCatalog means the catalog has no priced shape or lacks active
// materials, sizes or qualities to combine.
var ErrIncompleteCatalog = errors.New("catalog cannot produce a configuration")

var demoOptions = []models.AdditionalOption{
	{Name: "Extension leaf", PriceAdjustment: 150},
	{Name: "Matching bench", PriceAdjustment: 220},
	{Name: "Hard wax oil finish", PriceAdjustment: 40},
	{Name: "Felt floor pads", PriceAdjustment: 0, IsRequired: true},
}

// ConfigurationFaker combines random active catalog documents into a priced
// demo configuration.
func ConfigurationFaker(ctx context.Context, catalog *services.Catalog, pricing *services.PricingService, rng *rand.Rand) (*models.TableConfiguration, error) {
	active := catalog.Active()

	var shapes []models.TableShape
	for _, s := range active.Shapes {
		if s.BasePriceRange != nil {
			shapes = append(shapes, s)
		}
	}
	if len(shapes) == 0 || len(active.Materials) == 0 || len(active.Qualities) == 0 {
		return nil, ErrIncompleteCatalog
	}

	shape := shapes[rng.Intn(len(shapes))]
	var sizes []models.TableSize
	for _, s := range active.Sizes {
		if s.FitsShape(shape.ID) {
			sizes = append(sizes, s)
		}
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("%w: no size fits %s", ErrIncompleteCatalog, shape.Name)
	}

	material := active.Materials[rng.Intn(len(active.Materials))]
	size := sizes[rng.Intn(len(sizes))]
	quality := active.Qualities[rng.Intn(len(active.Qualities))]

	name := fmt.Sprintf("%s %s %s table", capitalize(faker.Word()), material.Name, strings.ToLower(shape.Name))
	slugText := slug.Make(name + "-" + uuid.NewString()[:6])

	configuration := &models.TableConfiguration{
		Meta:        models.Meta{ID: models.DocumentIDFor(models.TypeConfiguration, slugText)},
		Name:        name,
		Slug:        models.NewSlug(slugText),
		Shape:       models.NewReference(shape.ID),
		Material:    models.NewReference(material.ID),
		Size:        models.NewReference(size.ID),
		Quality:     models.NewReference(quality.ID),
		LeadTime:    rng.Intn(43) + 14,
		IsAvailable: true,
		Notes:       faker.Sentence(),
	}

	for _, i := range rng.Perm(len(demoOptions))[:rng.Intn(3)] {
		opt := demoOptions[i]
		opt.Key = uuid.NewString()[:8]
		configuration.AdditionalOptions = append(configuration.AdditionalOptions, opt)
	}

	if rng.Intn(5) == 0 {
		configuration.CustomDimensions = &models.CustomDimensions{
			IsCustom: true,
			Length:   size.Dimensions.Length + 20,
			Width:    size.Dimensions.Width,
			Height:   size.Dimensions.Height,
		}
	}

	breakdown, err := pricing.PriceConfiguration(ctx, configuration)
	if err != nil {
		return nil, fmt.Errorf("price demo configuration: %w", err)
	}
	configuration.CalculatedPrice = services.StoredPrice(breakdown)

	return configuration, nil
}

func ConfigurationsFaker(ctx context.Context, catalog *services.Catalog, pricing *services.PricingService, count int, rng *rand.Rand) ([]models.TableConfiguration, error) {
	configurations := make([]models.TableConfiguration, 0, count)
	for i := 0; i < count; i++ {
		c, err := ConfigurationFaker(ctx, catalog, pricing, rng)
		if err != nil {
			return nil, err
		}
		configurations = append(configurations, *c)
	}
	return configurations, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
