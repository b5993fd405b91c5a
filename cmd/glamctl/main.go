// Command glamctl выполняет служебные операции магазина: выдачу прав
// администратора и накатывание схемы PostgreSQL.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "glamctl",
		Short:         "Operator tool for the Glam shop backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		createAdminCmd(),
		migrateCmd(),
	)
	return root
}
