package seed

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"talentika/internal/infrastructure/database"
	"talentika/internal/infrastructure/persistence/seeds"
	"talentika/internal/infrastructure/repository"
	"talentika/internal/interfaces/cli/bootstrap"
)

var (
	env      string
	planFile string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed reference data",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	plans := &cobra.Command{
		Use:   "plans",
		Short: "Create or update subscription plans from a YAML catalog",
		RunE:  runPlans,
	}
	plans.Flags().StringVarP(&planFile, "file", "f", "./configs/plans.yaml", "Path to the plan catalog")

	cmd.AddCommand(plans)
	return cmd
}

func runPlans(cmd *cobra.Command, args []string) error {
	plans, err := seeds.LoadPlanCatalog(planFile)
	if err != nil {
		return err
	}

	_, log, err := bootstrap.Init(env)
	if err != nil {
		return err
	}
	defer database.Close()

	repo := repository.NewPlanRepository(database.Get())
	if err := seeds.SeedPlans(context.Background(), repo, plans, log.Named("seed")); err != nil {
		return fmt.Errorf("failed to seed plans: %w", err)
	}

	fmt.Printf("Seeded %d plans from %s\n", len(plans), planFile)
	return nil
}
