package main

import (
	"os"

	"github.com/spf13/cobra"

	"garage/internal/interfaces/cli/migrate"
	"garage/internal/interfaces/cli/seed"
	"garage/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "garage",
		Short: "Garage - service order management for repair shops",
		Long:  `Garage runs the service order API, database migrations and reference data seeding.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
