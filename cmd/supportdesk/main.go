// @title Supportdesk API
// @version 1.0
// @description Customer support ticket API: create, list, inspect, update, comment on and delete tickets.
// @BasePath /api
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/orris-inc/supportdesk/internal/interfaces/cli/migrate"
	"github.com/orris-inc/supportdesk/internal/interfaces/cli/server"
	"github.com/orris-inc/supportdesk/internal/interfaces/cli/ticket"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "supportdesk",
		Short: "Supportdesk - customer support ticket system",
		Long:  `Supportdesk serves the ticket API and web UI, manages its database migrations, and works with tickets from the terminal.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		ticket.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
