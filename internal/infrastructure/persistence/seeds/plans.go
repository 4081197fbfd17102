package seeds

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"talentika/internal/domain/subscription"
	vo "talentika/internal/domain/subscription/valueobjects"
	"talentika/internal/shared/logger"
)

type planCatalog struct {
	Plans []planEntry `yaml:"plans"`
}

type planEntry struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Type         string `yaml:"type"`
	Price        int64  `yaml:"price"`
	BillingCycle string `yaml:"billing_cycle"`
	Active       *bool  `yaml:"active"`
}

// ParsePlanCatalog decodes a YAML plan catalogue. Entries omit `active` to mean active.
func ParsePlanCatalog(data []byte) ([]*subscription.Plan, error) {
	var catalog planCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse plan catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(catalog.Plans))
	plans := make([]*subscription.Plan, 0, len(catalog.Plans))
	for i, entry := range catalog.Plans {
		if _, dup := seen[entry.ID]; dup {
			return nil, fmt.Errorf("plan %d: duplicate id %q", i, entry.ID)
		}
		seen[entry.ID] = struct{}{}

		cycle, err := vo.NewBillingCycle(entry.BillingCycle)
		if err != nil {
			return nil, fmt.Errorf("plan %q: %w", entry.ID, err)
		}
		plan, err := subscription.NewPlan(entry.ID, entry.Name, entry.Type, entry.Price, cycle)
		if err != nil {
			return nil, fmt.Errorf("plan %d: %w", i, err)
		}
		if entry.Active != nil && !*entry.Active {
			plan.Deactivate()
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

func LoadPlanCatalog(path string) ([]*subscription.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan catalog: %w", err)
	}
	return ParsePlanCatalog(data)
}

// SeedPlans upserts every plan so the catalogue file stays the source of truth.
func SeedPlans(ctx context.Context, repo subscription.PlanRepository, plans []*subscription.Plan, log logger.Interface) error {
	for _, plan := range plans {
		if err := repo.Upsert(ctx, plan); err != nil {
			return fmt.Errorf("failed to seed plan %s: %w", plan.ID(), err)
		}
		log.Infow("plan seeded",
			"plan_id", plan.ID(),
			"type", plan.Type(),
			"price", plan.Price(),
			"billing_cycle", plan.BillingCycle(),
			"active", plan.IsActive(),
		)
	}
	return nil
}
