package model

import (
	"strings"
	"time"

	apperrors "github.com/medagenda/clinic-api/pkg/errors"
)

const (
	MinSlotDurationMinutes = 1
	MaxSlotDurationMinutes = 480
)

// ScheduleTemplate is a doctor's recurring weekly availability pattern
// for one calendar month. One template exists per (doctor, month);
// templates are never deleted.
type ScheduleTemplate struct {
	DoctorLicense   int64     `db:"doctor_license" json:"doctor_license"`
	Month           int       `db:"month" json:"month"`
	Weekdays        []Weekday `db:"-" json:"weekdays"`
	WeekdaysRaw     string    `db:"weekdays" json:"-"`
	StartTime       string    `db:"start_time" json:"start_time"`
	EndTime         string    `db:"end_time" json:"end_time"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	Audit
}

// Validate checks the template invariants.
func (t *ScheduleTemplate) Validate() error {
	if t.DoctorLicense <= 0 {
		return apperrors.NewValidation("doctor license must be a positive number")
	}
	if t.Month < 1 || t.Month > 12 {
		return apperrors.NewValidation("month must be between 1 and 12")
	}
	if len(t.Weekdays) == 0 {
		return apperrors.NewValidation("at least one weekday is required")
	}
	for _, d := range t.Weekdays {
		if _, err := ParseWeekday(string(d)); err != nil {
			return err
		}
	}

	start, err := t.StartOfDay()
	if err != nil {
		return err
	}
	end, err := t.EndOfDay()
	if err != nil {
		return err
	}
	if !end.After(start) {
		return apperrors.NewValidation("end time must be after start time")
	}

	if t.DurationMinutes < MinSlotDurationMinutes || t.DurationMinutes > MaxSlotDurationMinutes {
		return apperrors.NewValidationf("slot duration must be between %d and %d minutes",
			MinSlotDurationMinutes, MaxSlotDurationMinutes)
	}
	return nil
}

// StartOfDay parses the template's start time-of-day.
func (t *ScheduleTemplate) StartOfDay() (time.Time, error) {
	parsed, err := time.Parse(TimeOfDayLayout, t.StartTime)
	if err != nil {
		return time.Time{}, apperrors.NewValidationf("start time must use HH:MM format, got %q", t.StartTime)
	}
	return parsed, nil
}

// EndOfDay parses the template's end time-of-day.
func (t *ScheduleTemplate) EndOfDay() (time.Time, error) {
	parsed, err := time.Parse(TimeOfDayLayout, t.EndTime)
	if err != nil {
		return time.Time{}, apperrors.NewValidationf("end time must use HH:MM format, got %q", t.EndTime)
	}
	return parsed, nil
}

// HasWeekday reports whether the template covers the given day.
func (t *ScheduleTemplate) HasWeekday(d Weekday) bool {
	for _, w := range t.Weekdays {
		if w == d {
			return true
		}
	}
	return false
}

// EncodeWeekdays packs the weekday set into its storage form.
func (t *ScheduleTemplate) EncodeWeekdays() string {
	names := make([]string, len(t.Weekdays))
	for i, d := range t.Weekdays {
		names[i] = string(d)
	}
	return strings.Join(names, ",")
}

// DecodeWeekdays unpacks the storage form back into the weekday set.
func (t *ScheduleTemplate) DecodeWeekdays() error {
	days, err := ParseWeekdays(strings.Split(t.WeekdaysRaw, ","))
	if err != nil {
		return err
	}
	t.Weekdays = days
	return nil
}

// CreateTemplateRequest is the API payload for registering a template.
type CreateTemplateRequest struct {
	DoctorLicense   int64    `json:"doctor_license" binding:"required,gt=0"`
	Month           int      `json:"month" binding:"required,min=1,max=12"`
	Weekdays        []string `json:"weekdays" binding:"required,min=1"`
	StartTime       string   `json:"start_time" binding:"required"`
	EndTime         string   `json:"end_time" binding:"required"`
	DurationMinutes int      `json:"duration_minutes" binding:"required,min=1,max=480"`
}

// UpdateTemplateRequest carries the fields that may change before a
// month has been generated.
type UpdateTemplateRequest struct {
	Weekdays        []string `json:"weekdays"`
	StartTime       *string  `json:"start_time"`
	EndTime         *string  `json:"end_time"`
	DurationMinutes *int     `json:"duration_minutes"`
}
