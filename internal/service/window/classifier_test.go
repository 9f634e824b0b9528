package window

import (
	"testing"
	"time"

	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/domain"
)

func TestClassifier_Classify(t *testing.T) {
	classifier := NewClassifier(30)
	today := domain.NewDay(2024, time.June, 1)

	tests := []struct {
		name         string
		due          domain.Day
		wantCategory domain.Category
		wantDistance int
	}{
		{
			name:         "due today is overdue",
			due:          domain.NewDay(2024, time.June, 1),
			wantCategory: domain.CategoryOverdue,
			wantDistance: 0,
		},
		{
			name:         "past due is overdue",
			due:          domain.NewDay(2024, time.May, 20),
			wantCategory: domain.CategoryOverdue,
			wantDistance: -12,
		},
		{
			name:         "tomorrow is upcoming",
			due:          domain.NewDay(2024, time.June, 2),
			wantCategory: domain.CategoryUpcoming,
			wantDistance: 1,
		},
		{
			name:         "two weeks out is upcoming",
			due:          domain.NewDay(2024, time.June, 15),
			wantCategory: domain.CategoryUpcoming,
			wantDistance: 14,
		},
		{
			name:         "window edge is upcoming",
			due:          domain.NewDay(2024, time.July, 1),
			wantCategory: domain.CategoryUpcoming,
			wantDistance: 30,
		},
		{
			name:         "one past window edge is none",
			due:          domain.NewDay(2024, time.July, 2),
			wantCategory: domain.CategoryNone,
			wantDistance: 31,
		},
		{
			name:         "far future is none",
			due:          domain.NewDay(2024, time.July, 15),
			wantCategory: domain.CategoryNone,
			wantDistance: 44,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(tt.due, today)

			if got.Category != tt.wantCategory {
				t.Errorf("Category = %s, want %s", got.Category, tt.wantCategory)
			}
			if got.DistanceDays != tt.wantDistance {
				t.Errorf("DistanceDays = %d, want %d", got.DistanceDays, tt.wantDistance)
			}
		})
	}
}

func TestClassifier_CustomWindow(t *testing.T) {
	classifier := NewClassifier(7)
	today := domain.NewDay(2024, time.June, 1)

	if got := classifier.Classify(domain.NewDay(2024, time.June, 8), today); got.Category != domain.CategoryUpcoming {
		t.Errorf("day 7: got %s, want upcoming", got.Category)
	}
	if got := classifier.Classify(domain.NewDay(2024, time.June, 9), today); got.Category != domain.CategoryNone {
		t.Errorf("day 8: got %s, want none", got.Category)
	}
}

func TestNewClassifier_DefaultWindow(t *testing.T) {
	for _, days := range []int{0, -5} {
		if got := NewClassifier(days).WindowDays(); got != DefaultDays {
			t.Errorf("NewClassifier(%d).WindowDays() = %d, want %d", days, got, DefaultDays)
		}
	}
}
