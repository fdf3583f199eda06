package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/99minutos/payment-console/internal/api"
	"github.com/99minutos/payment-console/internal/core/service"
	"github.com/99minutos/payment-console/internal/infrastructure/db"
	"github.com/99minutos/payment-console/internal/infrastructure/paymentapi"
	"github.com/99minutos/payment-console/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var (
		port        string
		paymentsURL string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the console API",
		Long: `Start the console API.

Examples:
  console serve
  console serve --port 9000 --payments-url http://payments:8080/api/payments
  STORAGE_DRIVER=redis console serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			if paymentsURL != "" {
				cfg.Payments.BaseURL = paymentsURL
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store, closeStore, err := db.Open(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeStore(context.Background()); err != nil {
					log.Warn().Err(err).Msg("closing storage")
				}
			}()

			gateway := paymentapi.NewClient(paymentapi.Config{
				BaseURL: cfg.Payments.BaseURL,
				Timeout: cfg.Payments.Timeout,
			}, nil, logger.Component("gateway"))

			console := service.NewConsole(store, gateway, service.ConsoleOptions{
				UsersKey:     cfg.Storage.UsersKey,
				AuthDelay:    cfg.Session.AuthDelay,
				PollInterval: cfg.Session.PollInterval,
			}, log)
			if err := console.Init(ctx); err != nil {
				return err
			}
			defer console.Close()

			e := api.NewRouter(api.Dependencies{
				Sessions:      console.Sessions(),
				Payments:      console.Payments(),
				State:         console,
				Credentials:   console.Credentials(),
				Storage:       store,
				StorageDriver: cfg.Storage.Driver,
			}, logger.Component("api"))

			errCh := make(chan error, 1)
			go func() {
				log.Info().
					Str("port", cfg.Port).
					Str("payments_api", cfg.Payments.BaseURL).
					Str("storage", cfg.Storage.Driver).
					Msg("console API listening")
				errCh <- e.Start(":" + cfg.Port)
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "override PORT")
	cmd.Flags().StringVar(&paymentsURL, "payments-url", "", "override PAYMENTS_API_URL")
	return cmd
}
