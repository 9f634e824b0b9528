package reconcile

import (
	"fmt"

	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/domain"
)

// displayDay renders a day the way users of the registry write it.
func displayDay(d domain.Day) string {
	return fmt.Sprintf("%02d-%02d-%04d", d.Day, int(d.Month), d.Year)
}

// Message composes the alert text for an equipment in the given category.
func Message(eq domain.Equipment, category domain.Category, due domain.Day) string {
	subject := fmt.Sprintf("Equipment %q", eq.Label())
	if eq.Serial != "" {
		subject += fmt.Sprintf(" (serial %s)", eq.Serial)
	}

	switch category {
	case domain.CategoryOverdue:
		return fmt.Sprintf("%s has maintenance OVERDUE since %s.", subject, displayDay(due))
	case domain.CategoryUpcoming:
		return fmt.Sprintf("%s requires maintenance before %s.", subject, displayDay(due))
	default:
		return fmt.Sprintf("%s has a maintenance notice for %s.", subject, displayDay(due))
	}
}
