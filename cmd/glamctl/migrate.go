package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/glam-app/internal/config"
	"github.com/magabrotheeeer/glam-app/internal/storage/postgresql"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded PostgreSQL schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Storage.PostgresDSN == "" {
				return errors.New("POSTGRES_DSN is not set")
			}

			store, err := postgresql.New(cmd.Context(), cfg.Storage.PostgresDSN, true)
			if err != nil {
				return err
			}
			defer store.Close(context.Background())

			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
