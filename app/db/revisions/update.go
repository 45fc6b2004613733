package revisions

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-furniture/app/db/batch"
	"github.com/Rakhulsr/go-furniture/app/models"
	"github.com/Rakhulsr/go-furniture/app/services"
	"go.uber.org/zap"
)

func patchItem(client services.CMSClient, id string, set map[string]any) batch.Item {
	return batch.Item{
		Name: id,
		Run: func(ctx context.Context) error {
			return client.Patch(ctx, id, set)
		},
	}
}

func notInCatalog(docType, slug string) batch.Item {
	return batch.Item{
		Name: models.DocumentIDFor(docType, slug),
		Run: func(context.Context) error {
			return fmt.Errorf("no %s with slug %q: %w", docType, slug, models.ErrDocumentNotFound)
		},
	}
}

// UpdatePricing patches the multipliers and quality adjustments named in
// rev onto the catalog documents with matching slugs. The legacy quality
// priceMultiplier is rewritten from the new adjustment. Slugs that match no
// document are reported as failures.
func UpdatePricing(ctx context.Context, client services.CMSClient, catalog *services.Catalog, rev Revision, logger *zap.Logger) (*batch.Report, error) {
	if err := rev.Validate(); err != nil {
		return nil, err
	}
	logger.Info("applying pricing revision", zap.String("revision", rev.Name))

	var items []batch.Item

	materials := map[string]string{}
	for _, m := range catalog.Materials {
		materials[m.Slug.Current] = m.ID
	}
	for _, s := range sortedKeys(rev.Materials) {
		id, ok := materials[s]
		if !ok {
			items = append(items, notInCatalog(models.TypeMaterial, s))
			continue
		}
		items = append(items, patchItem(client, id, map[string]any{"priceMultiplier": rev.Materials[s]}))
	}

	sizes := map[string]string{}
	for _, sz := range catalog.Sizes {
		sizes[sz.Slug.Current] = sz.ID
	}
	for _, s := range sortedKeys(rev.Sizes) {
		id, ok := sizes[s]
		if !ok {
			items = append(items, notInCatalog(models.TypeSize, s))
			continue
		}
		items = append(items, patchItem(client, id, map[string]any{"priceMultiplier": rev.Sizes[s]}))
	}

	qualities := map[string]string{}
	for _, q := range catalog.Qualities {
		qualities[q.Slug.Current] = q.ID
	}
	for _, s := range sortedKeys(rev.Qualities) {
		id, ok := qualities[s]
		if !ok {
			items = append(items, notInCatalog(models.TypeQuality, s))
			continue
		}
		q := rev.Qualities[s]
		legacy, _ := q.legacyMultiplier()
		items = append(items, patchItem(client, id, map[string]any{
			"qualityAdjustment": q.Adjustment,
			"priceDirection":    q.Direction,
			"priceMultiplier":   legacy,
		}))
	}

	return batch.Run(ctx, logger, items), nil
}

// RecalculatePrices recomputes calculatedPrice for every configuration and
// patches the ones whose stored value differs. Configurations that cannot
// be priced are reported as failures and keep their old price.
func RecalculatePrices(ctx context.Context, client services.CMSClient, pricing *services.PricingService, configurations []models.TableConfiguration, logger *zap.Logger) *batch.Report {
	items := make([]batch.Item, 0, len(configurations))
	for i := range configurations {
		cfg := &configurations[i]
		name := cfg.ID
		if name == "" {
			name = cfg.Name
		}
		items = append(items, batch.Item{
			Name: name,
			Run: func(ctx context.Context) error {
				breakdown, err := pricing.PriceConfiguration(ctx, cfg)
				if err != nil {
					return err
				}
				price := services.StoredPrice(breakdown)
				if price == cfg.CalculatedPrice {
					logger.Debug("price unchanged", zap.String("configuration", name), zap.Float64("price", price))
					return nil
				}
				logger.Info("price changed",
					zap.String("configuration", name),
					zap.Float64("from", cfg.CalculatedPrice),
					zap.Float64("to", price),
				)
				return client.Patch(ctx, cfg.ID, map[string]any{"calculatedPrice": price})
			},
		})
	}
	return batch.Run(ctx, logger, items)
}
