package main

import (
	root "backoffice"
	"backoffice/internal/api"
	"backoffice/internal/auth"
	"backoffice/internal/bootcheck"
	"backoffice/internal/config"
	"backoffice/pkg/logger"
	"backoffice/pkg/storage"
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, cfg *config.Config, strg storage.Storage) func(ctx context.Context) {
	tokens, err := auth.NewTokenService(auth.TokenServiceOptions{
		Issuer:    cfg.JWT.Issuer,
		Audience:  cfg.JWT.Audience,
		SecretKey: cfg.JWT.SecretKey,
		TTL:       cfg.JWT.TokenTTL,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create token service", zap.Error(err))
	}

	server, err := api.NewServer(api.Deps{
		Storage: strg,
		Auth:    auth.NewService(strg, tokens),
		Tokens:  tokens,
	}, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...")
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the API server",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			migrator, err := bootcheck.NewGooseMigrator(strg.SQLDB(), root.Migrations, "migrations")
			if err != nil {
				logger.Error(ctx, "could not create migrator, skipping startup diagnostic", zap.Error(err))
			} else {
				report := bootcheck.Run(ctx, strg, migrator, bootcheck.Options{
					MinServerVersion: cfg.Database.MinServerVersion,
					Timeout:          cfg.BootCheckTimeout,
				})
				logger.Info(ctx, "startup diagnostic finished",
					zap.String("state", string(report.State)),
					zap.Bool("verified", report.Verified()),
				)
			}

			stopWebserver := setupServer(ctx, cfg, strg)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
		},
	}

	return cmd
}
