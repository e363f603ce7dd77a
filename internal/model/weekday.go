package model

import (
	"strings"
	"time"

	apperrors "github.com/medagenda/clinic-api/pkg/errors"
)

// Weekday is the canonical day name used by schedule templates. The
// enumeration is fixed so slot generation never depends on the runtime
// locale: numeric weekdays map through the table below, nothing else.
type Weekday string

const (
	Monday    Weekday = "lunes"
	Tuesday   Weekday = "martes"
	Wednesday Weekday = "miércoles"
	Thursday  Weekday = "jueves"
	Friday    Weekday = "viernes"
	Saturday  Weekday = "sábado"
	Sunday    Weekday = "domingo"
)

var weekdayNames = map[time.Weekday]Weekday{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

// WeekdayOf returns the canonical name for a calendar date.
func WeekdayOf(t time.Time) Weekday {
	return weekdayNames[t.Weekday()]
}

// ParseWeekday normalizes and validates a day name.
func ParseWeekday(s string) (Weekday, error) {
	d := Weekday(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return d, nil
	}
	return "", apperrors.NewValidationf("unknown weekday %q", s)
}

// ParseWeekdays parses a list of day names, rejecting duplicates.
func ParseWeekdays(names []string) ([]Weekday, error) {
	if len(names) == 0 {
		return nil, apperrors.NewValidation("at least one weekday is required")
	}

	seen := make(map[Weekday]bool, len(names))
	days := make([]Weekday, 0, len(names))
	for _, n := range names {
		d, err := ParseWeekday(n)
		if err != nil {
			return nil, err
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}
	return days, nil
}
