package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/99minutos/payment-console/internal/core/service"
	"github.com/99minutos/payment-console/internal/infrastructure/db"
	"github.com/99minutos/payment-console/pkg/logger"
)

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Inspect and extend the local user list",
	}
	cmd.AddCommand(usersListCmd())
	cmd.AddCommand(usersAddCmd())
	return cmd
}

// openCredentials loads the user list from the configured storage, seeding
// the defaults on first use.
func openCredentials(cmd *cobra.Command) (*service.CredentialStore, func(), error) {
	cfg, _, err := bootstrap(cmd)
	if err != nil {
		return nil, nil, err
	}
	ctx := commandContext(cmd)

	store, closeStore, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	creds := service.NewCredentialStore(store, cfg.Storage.UsersKey, logger.Component("credentials"))
	if err := creds.Initialize(ctx); err != nil {
		_ = closeStore(ctx)
		return nil, nil, err
	}
	return creds, func() { _ = closeStore(ctx) }, nil
}

func usersListCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered users (passwords are never printed)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, done, err := openCredentials(cmd)
			if err != nil {
				return err
			}
			defer done()

			type row struct {
				Username string `json:"username"`
				Role     string `json:"role"`
			}
			users := creds.Users(commandContext(cmd))
			rows := make([]row, 0, len(users))
			for _, u := range users {
				rows = append(rows, row{Username: u.Username, Role: string(u.Role)})
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "USERNAME\tROLE")
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%s\n", r.Username, r.Role)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output as JSON")
	return cmd
}

func usersAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [username] [password]",
		Short: "Register a customer account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, done, err := openCredentials(cmd)
			if err != nil {
				return err
			}
			defer done()

			if err := creds.Register(commandContext(cmd), args[0], args[1]); err != nil {
				return fmt.Errorf("add %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registered %s\n", args[0])
			return nil
		},
	}
}

