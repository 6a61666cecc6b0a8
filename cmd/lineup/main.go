package main

import (
	"os"

	"github.com/spf13/cobra"

	"lineup/internal/interfaces/cli/migrate"
	"lineup/internal/interfaces/cli/server"
	"lineup/internal/interfaces/cli/token"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lineup",
		Short: "Lineup - service counter queue engine",
		Long:  `Lineup issues queue tickets, calls waiting holders to counters, and keeps an auditable history of every ticket.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
