package window

import (
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/domain"
)

// DefaultDays is the look-ahead used when no window is configured.
const DefaultDays = 30

type Classification struct {
	Category     domain.Category
	DistanceDays int
}

type Classifier struct {
	windowDays int
}

func NewClassifier(windowDays int) *Classifier {
	if windowDays <= 0 {
		windowDays = DefaultDays
	}
	return &Classifier{windowDays: windowDays}
}

func (c *Classifier) WindowDays() int {
	return c.windowDays
}

// Classify places due relative to today. Anything due today or earlier is
// overdue; anything within the window is upcoming.
func (c *Classifier) Classify(due, today domain.Day) Classification {
	distance := today.DaysUntil(due)

	switch {
	case distance <= 0:
		return Classification{Category: domain.CategoryOverdue, DistanceDays: distance}
	case distance <= c.windowDays:
		return Classification{Category: domain.CategoryUpcoming, DistanceDays: distance}
	default:
		return Classification{Category: domain.CategoryNone, DistanceDays: distance}
	}
}
