// Command console runs the payment console: a JSON API over the session,
// order and dashboard state of a payment service client.
//
// @title        Payment Console API
// @version      1.0
// @description  Session, payment order and dashboard state of a payment service client.
// @BasePath     /
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/99minutos/payment-console/internal/infrastructure/config"
	"github.com/99minutos/payment-console/pkg/logger"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "console",
		Short:         "Payment console - client for the payments API",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("log-level", "", "override LOG_LEVEL (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("storage", "", "override STORAGE_DRIVER (file, memory, redis, mongo, postgres)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(usersCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads the environment configuration, applies the persistent flag
// overrides and initialises the logger.
func bootstrap(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(commandContext(cmd))
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := cmd.Flags().GetString("storage"); v != "" {
		cfg.Storage.Driver = v
		if err := cfg.Validate(); err != nil {
			return nil, zerolog.Nop(), err
		}
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})
	return cfg, log, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
