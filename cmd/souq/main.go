// Command souq runs the storefront API and its maintenance tasks:
//
//	souq serve
//	souq route:list
//	souq migrate | migrate:rollback | migrate:status
//	souq seed
//	souq user:create --email a@b.c --password secret123 --name Admin --role admin
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Migrations and seeders register themselves in init().
	_ "github.com/shashiranjanraj/souq/database/migrations"
	_ "github.com/shashiranjanraj/souq/database/seeders"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "souq",
	Short:         "Souq storefront and admin API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	rootCmd.AddCommand(userCreateCmd)
}
