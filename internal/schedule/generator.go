// Package schedule expands recurring availability templates into
// concrete bookable slots. Expansion is pure: no clock, no storage.
package schedule

import (
	"time"

	"github.com/medagenda/clinic-api/internal/model"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
)

// Expand produces the ordered sequence of available slots that fill
// every matching weekday of (month, year) within the template's time
// window. A slot is emitted only when its whole window fits inside
// [start, end); the remainder of an unevenly divisible window yields
// no partial slot.
func Expand(tpl *model.ScheduleTemplate, month time.Month, year int) ([]*model.Slot, error) {
	if err := tpl.Validate(); err != nil {
		return nil, err
	}
	if int(month) < 1 || int(month) > 12 {
		return nil, apperrors.NewValidation("month must be between 1 and 12")
	}
	if tpl.Month != int(month) {
		return nil, apperrors.NewValidationf("template covers month %d, not %d", tpl.Month, month)
	}

	start, err := tpl.StartOfDay()
	if err != nil {
		return nil, err
	}
	end, err := tpl.EndOfDay()
	if err != nil {
		return nil, err
	}

	step := time.Duration(tpl.DurationMinutes) * time.Minute
	var slots []*model.Slot

	// The zero day of the next month normalizes to the last day of
	// this one, which keeps leap February correct.
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
		if !tpl.HasWeekday(model.WeekdayOf(date)) {
			continue
		}

		cursor := time.Date(year, month, day, start.Hour(), start.Minute(), 0, 0, time.Local)
		dayEnd := time.Date(year, month, day, end.Hour(), end.Minute(), 0, 0, time.Local)

		for !cursor.Add(step).After(dayEnd) {
			slots = append(slots, &model.Slot{
				StartTime:     cursor,
				Status:        model.SlotStatusAvailable,
				DoctorLicense: tpl.DoctorLicense,
			})
			cursor = cursor.Add(step)
		}
	}

	return slots, nil
}
