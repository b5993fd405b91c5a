package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/glam-app/internal/config"
	"github.com/magabrotheeeer/glam-app/internal/lib/password"
	authservice "github.com/magabrotheeeer/glam-app/internal/services/auth"
	"github.com/magabrotheeeer/glam-app/internal/storage/driver"
)

// provisioner выдаёт права администратора.
type provisioner interface {
	ProvisionAdmin(ctx context.Context, email, name, password string) (bool, error)
}

func createAdminCmd() *cobra.Command {
	var email, name, pass string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account or promote an existing user",
		Long: `Create an admin account or promote an existing user.

The password can be passed with --password or through ADMIN_PASSWORD.
Sessions issued before the promotion keep the old role until the user logs in again.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if pass == "" {
				pass = os.Getenv("ADMIN_PASSWORD")
			}
			if email == "" || pass == "" {
				return errors.New("--email and --password are required")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))

			ctx := cmd.Context()
			store, err := driver.Open(ctx, cfg.Storage, log)
			if err != nil {
				return err
			}
			defer store.Close(context.Background())

			svc := authservice.NewAuthService(store, password.New(password.Cost), log)
			return runCreateAdmin(ctx, cmd.OutOrStdout(), svc, email, name, pass)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&name, "name", "ADMIN", "display name")
	cmd.Flags().StringVar(&pass, "password", "", "admin password (defaults to $ADMIN_PASSWORD)")
	return cmd
}

func runCreateAdmin(ctx context.Context, out io.Writer, p provisioner, email, name, pass string) error {
	created, err := p.ProvisionAdmin(ctx, email, name, pass)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(out, "admin %s created\n", email)
	} else {
		fmt.Fprintf(out, "user %s updated and promoted to admin\n", email)
	}
	return nil
}
