package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Rakhulsr/go-furniture/app/handlers"
	"github.com/Rakhulsr/go-furniture/app/repositories"
	"github.com/Rakhulsr/go-furniture/app/routes"
	"github.com/Rakhulsr/go-furniture/app/services"
	"github.com/Rakhulsr/go-furniture/app/utils/renderer"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func (a *App) serve(ctx context.Context, cmd *cli.Command) error {
	db, err := a.openDB(ctx)
	if err != nil {
		return err
	}

	catalogRepo := repositories.NewCatalogRepository(db)
	configurationRepo := repositories.NewConfigurationRepository(db)
	pricing := services.NewPricingService(catalogRepo, a.validator)
	h := handlers.NewConfigurationHandler(configurationRepo, catalogRepo, pricing, renderer.New(!a.cfg.IsProduction()), a.logger)

	server := &http.Server{
		Addr:              a.cfg.Port,
		Handler:           routes.NewRouter(h, a.logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server starting", zap.String("addr", server.Addr), zap.String("env", a.cfg.AppEnv))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
