package valueobjects

import (
	"fmt"
	"strings"
)

type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleYearly  BillingCycle = "yearly"
)

func NewBillingCycle(s string) (BillingCycle, error) {
	bc := BillingCycle(strings.ToLower(strings.TrimSpace(s)))
	if !bc.IsValid() {
		return "", fmt.Errorf("invalid billing cycle: %s", s)
	}
	return bc, nil
}

func (b BillingCycle) IsValid() bool {
	return b == BillingCycleMonthly || b == BillingCycleYearly
}

func (b BillingCycle) String() string {
	return string(b)
}
