package duedate

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/domain"
)

var (
	isoPrefixPattern    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	dayMonthYearPattern = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)
)

// Zoned ISO layouts are converted to the normalizer's location; the rest are
// read as wall-clock time in it.
var (
	isoZonedLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04Z07:00",
		"2006-01-02 15:04:05Z07:00",
		"2006-01-02T15:04:05Z0700",
		"2006-01-02T15:04:05.999999999Z0700",
		"2006-01-02 15:04:05.999999999Z07",
	}
	isoLocalLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02 15:04",
	}
)

// Normalizer turns stored due-date encodings into calendar days of a single
// reference location.
type Normalizer struct {
	loc *time.Location
}

func NewNormalizer(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.Local
	}
	return &Normalizer{loc: loc}
}

func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Normalize returns the calendar day of raw. Failures are always a
// *domain.DateParseError.
func (n *Normalizer) Normalize(raw any) (domain.Day, error) {
	switch v := raw.(type) {
	case nil:
		return domain.Day{}, parseError(raw, domain.ErrEmptyDate)
	case time.Time:
		if v.IsZero() {
			return domain.Day{}, parseError(raw, domain.ErrEmptyDate)
		}
		return domain.DayOf(v.In(n.loc)), nil
	case *time.Time:
		if v == nil || v.IsZero() {
			return domain.Day{}, parseError(raw, domain.ErrEmptyDate)
		}
		return domain.DayOf(v.In(n.loc)), nil
	case domain.Day:
		if v.IsZero() {
			return domain.Day{}, parseError(raw, domain.ErrEmptyDate)
		}
		return v, nil
	case string:
		return n.normalizeString(v)
	case *string:
		if v == nil {
			return domain.Day{}, parseError(raw, domain.ErrEmptyDate)
		}
		return n.normalizeString(*v)
	case []byte:
		return n.normalizeString(string(v))
	case fmt.Stringer:
		return n.normalizeString(v.String())
	default:
		return domain.Day{}, parseError(raw, fmt.Errorf("unsupported type %T", raw))
	}
}

func (n *Normalizer) normalizeString(raw string) (domain.Day, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return domain.Day{}, parseError(raw, domain.ErrEmptyDate)
	}

	// An ISO prefix commits to the ISO layouts; dateparse would guess a day
	// from the leftovers.
	if isoPrefixPattern.MatchString(s) {
		if day, ok := n.parseISO(s); ok {
			return day, nil
		}
		return domain.Day{}, parseError(raw, domain.ErrDateParse)
	}

	if dayMonthYearPattern.MatchString(s) {
		t, err := time.ParseInLocation("02-01-2006", s, n.loc)
		if err != nil {
			return domain.Day{}, parseError(raw, err)
		}
		return domain.DayOf(t), nil
	}

	t, err := dateparse.ParseIn(s, n.loc)
	if err != nil {
		return domain.Day{}, parseError(raw, err)
	}
	return domain.DayOf(t.In(n.loc)), nil
}

func (n *Normalizer) parseISO(s string) (domain.Day, bool) {
	if len(s) == len("2006-01-02") {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return domain.Day{}, false
		}
		return domain.DayOf(t), true
	}

	for _, layout := range isoZonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.DayOf(t.In(n.loc)), true
		}
	}
	for _, layout := range isoLocalLayouts {
		if t, err := time.ParseInLocation(layout, s, n.loc); err == nil {
			return domain.DayOf(t), true
		}
	}

	return domain.Day{}, false
}

func parseError(raw any, err error) error {
	return &domain.DateParseError{Raw: raw, Err: err}
}
