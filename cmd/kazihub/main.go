package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kazihub-inc/kazihub/internal/interfaces/cli/migrate"
	"github.com/kazihub-inc/kazihub/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kazihub",
		Short: "KaziHub entitlement and checkout service",
		Long:  `KaziHub manages plan entitlements, free trials, and checkout for the job marketplace.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
