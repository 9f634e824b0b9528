package domain

// Category is the kind of alert record.
type Category string

const (
	CategoryNone     Category = "none"
	CategoryUpcoming Category = "upcoming"
	CategoryOverdue  Category = "overdue"
	// CategoryGeneral is reserved for alerts created outside the reconciler.
	CategoryGeneral Category = "general"
)

func (c Category) String() string {
	return string(c)
}

// Alerting reports whether the category produces an alert record.
func (c Category) Alerting() bool {
	return c == CategoryUpcoming || c == CategoryOverdue
}

func (c Category) Valid() bool {
	switch c {
	case CategoryUpcoming, CategoryOverdue, CategoryGeneral:
		return true
	default:
		return false
	}
}
