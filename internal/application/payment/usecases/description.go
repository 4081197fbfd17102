package usecases

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	subvo "talentika/internal/domain/subscription/valueobjects"
)

var (
	descriptionPolicy = bluemonday.StrictPolicy()
	idrPrinter        = message.NewPrinter(language.Indonesian)
)

// invoiceDescription renders the line shown on the hosted invoice page, for example
// "Talentika Premium (Bulanan) - Rp 99.000". Plan names come from the database and are
// stripped of markup before they reach the gateway.
func invoiceDescription(planName string, cycle subvo.BillingCycle, amount int64) string {
	name := strings.TrimSpace(descriptionPolicy.Sanitize(planName))
	if name == "" {
		name = "Premium"
	}
	return "Talentika " + name + " (" + cycleLabel(cycle) + ") - Rp " + formatIDR(amount)
}

func formatIDR(amount int64) string {
	return idrPrinter.Sprintf("%d", amount)
}

func cycleLabel(cycle subvo.BillingCycle) string {
	if cycle == subvo.BillingCycleYearly {
		return "Tahunan"
	}
	return "Bulanan"
}
