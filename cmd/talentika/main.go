package main

import (
	"os"

	"github.com/spf13/cobra"

	"talentika/internal/interfaces/cli/migrate"
	"talentika/internal/interfaces/cli/seed"
	"talentika/internal/interfaces/cli/server"
	"talentika/internal/interfaces/cli/worker"
)

//	@title						Talentika API
//	@version					1.0
//	@description				Subscription checkout, payment webhooks and entitlement reads.
//	@BasePath					/api
//	@securityDefinitions.apikey	Bearer
//	@in							header
//	@name						Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:   "talentika",
		Short: "Talentika - subscription payments",
		Long:  `Talentika issues Xendit invoices for subscription plans, reconciles payment webhooks and activates premium access.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		worker.NewCommand(),
		seed.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
