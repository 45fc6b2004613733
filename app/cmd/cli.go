package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Rakhulsr/go-furniture/app/configs"
	"github.com/Rakhulsr/go-furniture/app/db/batch"
	"github.com/Rakhulsr/go-furniture/app/helpers"
	"github.com/go-playground/validator/v10"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// App holds what every command needs once the environment is loaded.
type App struct {
	cfg       configs.Config
	logger    *zap.Logger
	validator *validator.Validate
	stdout    io.Writer
}

func RunCli(ctx context.Context, args []string) error {
	return NewCommand(os.Stdout).Run(ctx, args)
}

// NewCommand builds the command tree. Output meant for other programs
// (schema JSON, product paths, reports) goes to stdout; logs go to stderr.
func NewCommand(stdout io.Writer) *cli.Command {
	app := &App{stdout: stdout, validator: helpers.NewValidator()}

	return &cli.Command{
		Name:  "furniture",
		Usage: "table configurator catalog tools and storefront API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "env-file", Value: ".env", Usage: "dotenv file loaded when present"},
			&cli.BoolFlag{Name: "debug", Usage: "log at debug level"},
			&cli.BoolFlag{Name: "strict", Usage: "exit with an error when any item of a batch fails"},
		},
		Action: app.action(app.serve),
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Create or update the catalog mirror tables",
				Action: app.action(app.migrate),
			},
			{
				Name:   "schema",
				Usage:  "Print the content schema as JSON",
				Action: app.action(app.printSchema),
			},
			{
				Name:  "seed",
				Usage: "Create categories, catalog documents and products from a seed file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Value: "seed.yaml", Usage: "seed file"},
				},
				Action: app.action(app.seed),
			},
			{
				Name:  "seed-demo",
				Usage: "Create random priced demo configurations from the current catalog",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Value: 10, Usage: "number of configurations"},
				},
				Action: app.action(app.seedDemo),
			},
			{
				Name:  "update-pricing",
				Usage: "Apply a pricing revision to materials, sizes and qualities",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "revision file; the built-in price list when empty"},
					&cli.BoolFlag{Name: "recalculate", Usage: "recalculate every configuration afterwards"},
				},
				Action: app.action(app.updatePricing),
			},
			{
				Name:   "recalculate-prices",
				Usage:  "Recompute calculatedPrice for every configuration",
				Action: app.action(app.recalculatePrices),
			},
			{
				Name:   "sync",
				Usage:  "Copy the CMS catalog into the mirror database",
				Action: app.action(app.sync),
			},
			{
				Name:  "product-paths",
				Usage: "Print the product slugs the static build generates pages for",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "print a JSON array"},
				},
				Action: app.action(app.productPaths),
			},
			{
				Name:   "serve",
				Usage:  "Run the storefront API",
				Action: app.action(app.serve),
			},
		},
	}
}

// action loads the environment and logger before running fn.
func (a *App) action(fn func(ctx context.Context, cmd *cli.Command) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := configs.LoadEnv(cmd.String("env-file"))
		if err != nil {
			return err
		}
		logger, err := configs.NewLogger(cfg, cmd.Bool("debug"))
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		a.cfg = cfg
		a.logger = logger.With(zap.String("command", cmd.Name))
		return fn(ctx, cmd)
	}
}

// finish logs the batch summary and decides the exit status.
func (a *App) finish(cmd *cli.Command, report *batch.Report) error {
	report.Log(a.logger, cmd.Name)
	if cmd.Bool("strict") && report.HasFailures() {
		return fmt.Errorf("%d item(s) failed: %s", len(report.Failed), strings.Join(report.FailedNames(), ", "))
	}
	return nil
}
