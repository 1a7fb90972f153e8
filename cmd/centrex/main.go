package main

import (
	"os"

	"github.com/spf13/cobra"

	"centrex/internal/interfaces/cli/migrate"
	"centrex/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "centrex",
		Short: "Centrex - hosted PBX admin console",
		Long:  `Centrex is the admin console and provisioning backend for a hosted PBX, with built-in server and migration tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
