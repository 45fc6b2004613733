package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/Rakhulsr/go-furniture/app/configs"
	"github.com/Rakhulsr/go-furniture/app/db/batch"
	"github.com/Rakhulsr/go-furniture/app/db/fakers"
	"github.com/Rakhulsr/go-furniture/app/db/revisions"
	"github.com/Rakhulsr/go-furniture/app/db/seeders"
	"github.com/Rakhulsr/go-furniture/app/models/migrations"
	"github.com/Rakhulsr/go-furniture/app/repositories"
	"github.com/Rakhulsr/go-furniture/app/schema"
	"github.com/Rakhulsr/go-furniture/app/services"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *App) writeClient() (services.CMSClient, error) {
	if err := a.cfg.CMS.Require(true); err != nil {
		return nil, err
	}
	return services.NewCMSClient(a.cfg.CMS), nil
}

func (a *App) readClient() (services.CMSClient, error) {
	if err := a.cfg.CMS.Require(false); err != nil {
		return nil, err
	}
	return services.NewCMSClient(a.cfg.CMS), nil
}

func (a *App) openDB(ctx context.Context) (*gorm.DB, error) {
	if err := a.cfg.DB.Require(); err != nil {
		return nil, err
	}
	return configs.OpenConnection(ctx, a.cfg.DB, a.logger)
}

func (a *App) migrate(ctx context.Context, cmd *cli.Command) error {
	db, err := a.openDB(ctx)
	if err != nil {
		return err
	}
	if err := migrations.AutoMigrate(db); err != nil {
		return err
	}
	a.logger.Info("migration complete")
	return nil
}

func (a *App) printSchema(ctx context.Context, cmd *cli.Command) error {
	return schema.Export(a.stdout)
}

func (a *App) seed(ctx context.Context, cmd *cli.Command) error {
	client, err := a.writeClient()
	if err != nil {
		return err
	}
	file, err := seeders.LoadSeedFile(cmd.String("file"))
	if err != nil {
		return err
	}

	report := seeders.DBSeed(ctx, client, a.validator, a.logger, seeders.SeedersRegister(file))
	return a.finish(cmd, report)
}

func (a *App) seedDemo(ctx context.Context, cmd *cli.Command) error {
	client, err := a.writeClient()
	if err != nil {
		return err
	}
	count := int(cmd.Int("count"))
	if count < 1 {
		return fmt.Errorf("--count must be at least 1, got %d", count)
	}

	catalog, err := services.LoadCatalog(ctx, client)
	if err != nil {
		return err
	}
	pricing := services.NewPricingService(catalog, a.validator)
	configurations, err := fakers.ConfigurationsFaker(ctx, catalog, pricing, count, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		return err
	}

	items := make([]batch.Item, 0, len(configurations))
	for i := range configurations {
		c := &configurations[i]
		items = append(items, batch.Item{
			Name: c.ID,
			Run: func(ctx context.Context) error {
				_, err := client.Create(ctx, c)
				return err
			},
		})
	}
	return a.finish(cmd, batch.Run(ctx, a.logger, items))
}

func (a *App) updatePricing(ctx context.Context, cmd *cli.Command) error {
	client, err := a.writeClient()
	if err != nil {
		return err
	}

	rev := revisions.DefaultRevision()
	if path := cmd.String("file"); path != "" {
		if rev, err = revisions.LoadRevision(path); err != nil {
			return err
		}
	}

	catalog, err := services.LoadCatalog(ctx, client)
	if err != nil {
		return err
	}
	report, err := revisions.UpdatePricing(ctx, client, catalog, rev, a.logger)
	if err != nil {
		return err
	}

	if cmd.Bool("recalculate") {
		recalculated, err := a.recalculate(ctx, client)
		if err != nil {
			return err
		}
		report.Merge(recalculated)
	}
	return a.finish(cmd, report)
}

func (a *App) recalculatePrices(ctx context.Context, cmd *cli.Command) error {
	client, err := a.writeClient()
	if err != nil {
		return err
	}
	report, err := a.recalculate(ctx, client)
	if err != nil {
		return err
	}
	return a.finish(cmd, report)
}

// recalculate reloads the catalog so prices reflect any patch applied
// earlier in the same run.
func (a *App) recalculate(ctx context.Context, client services.CMSClient) (*batch.Report, error) {
	catalog, err := services.LoadCatalog(ctx, client)
	if err != nil {
		return nil, err
	}
	configurations, err := services.LoadConfigurations(ctx, client)
	if err != nil {
		return nil, err
	}
	a.logger.Info("recalculating prices", zap.Int("configurations", len(configurations)))

	pricing := services.NewPricingService(catalog, a.validator)
	return revisions.RecalculatePrices(ctx, client, pricing, configurations, a.logger), nil
}

func (a *App) sync(ctx context.Context, cmd *cli.Command) error {
	client, err := a.readClient()
	if err != nil {
		return err
	}
	db, err := a.openDB(ctx)
	if err != nil {
		return err
	}
	if err := migrations.AutoMigrate(db); err != nil {
		return err
	}

	svc := services.NewSyncService(client, repositories.NewCatalogRepository(db), repositories.NewConfigurationRepository(db), a.logger)
	report, err := svc.Sync(ctx)
	if err != nil {
		return err
	}
	return writeJSON(a.stdout, report)
}

func (a *App) productPaths(ctx context.Context, cmd *cli.Command) error {
	client, err := a.readClient()
	if err != nil {
		return err
	}
	paths, err := services.ProductPaths(ctx, client)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		if paths == nil {
			paths = []string{}
		}
		return writeJSON(a.stdout, paths)
	}
	for _, p := range paths {
		if _, err := fmt.Fprintln(a.stdout, p); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
