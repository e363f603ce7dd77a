package model

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/medagenda/clinic-api/pkg/errors"
)

type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusBooked    SlotStatus = "booked"
	SlotStatusAttended  SlotStatus = "attended"
	SlotStatusNoShow    SlotStatus = "no_show"
)

func (s SlotStatus) Valid() bool {
	switch s {
	case SlotStatusAvailable, SlotStatusBooked, SlotStatusAttended,
		SlotStatusNoShow:
		return true
	}
	return false
}

// Slot is one bookable unit of a doctor's time.
type Slot struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	StartTime     time.Time  `db:"start_time" json:"start_time"`
	Status        SlotStatus `db:"status" json:"status"`
	Motive        *string    `db:"motive" json:"motive,omitempty"`
	Notes         *string    `db:"notes" json:"notes,omitempty"`
	PatientDNI    *int64     `db:"patient_dni" json:"patient_dni,omitempty"`
	DoctorLicense int64      `db:"doctor_license" json:"doctor_license"`
	Audit
}

// Validate checks the full slot invariant set. Lifecycle operations run
// it before persisting any transition; a failure means the transition
// must not be applied.
func (s *Slot) Validate() error {
	if !s.Status.Valid() {
		return apperrors.NewValidationf("invalid slot status %q", s.Status)
	}
	if s.StartTime.IsZero() {
		return apperrors.NewValidation("slot must have a start timestamp")
	}
	if s.DoctorLicense <= 0 {
		return apperrors.NewValidation("slot must reference a doctor")
	}

	switch s.Status {
	case SlotStatusAvailable:
		if s.PatientDNI != nil {
			return apperrors.NewValidation("an available slot must not reference a patient")
		}
		if s.Motive != nil && *s.Motive != "" {
			return apperrors.NewValidation("an available slot must not carry a motive")
		}
	case SlotStatusBooked, SlotStatusAttended, SlotStatusNoShow:
		if s.PatientDNI == nil {
			return apperrors.NewValidationf("a %s slot must reference a patient", s.Status)
		}
		if err := ValidateDNI(*s.PatientDNI); err != nil {
			return err
		}
		if s.Motive == nil || *s.Motive == "" {
			return apperrors.NewValidationf("a %s slot must carry a motive", s.Status)
		}
	}
	return nil
}

// Date returns the slot's calendar date, time-of-day stripped.
func (s *Slot) Date() time.Time {
	y, m, d := s.StartTime.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.StartTime.Location())
}

// MaxQueryRangeDays caps period filters on slot listings and reports.
const MaxQueryRangeDays = 31

// SlotFilters narrows slot listings.
type SlotFilters struct {
	DoctorLicense int64
	SpecialtyID   int64
	Date          *time.Time
	Month         int
	Year          int
	From          *time.Time
	To            *time.Time
	Status        SlotStatus
}

// BookSlotRequest is the API payload for booking an available slot.
type BookSlotRequest struct {
	PatientDNI int64   `json:"patient_dni" binding:"required,gt=0"`
	Motive     string  `json:"motive" binding:"required"`
	Notes      *string `json:"notes"`
}

// CancelSlotRequest carries the optional cancellation note.
type CancelSlotRequest struct {
	Notes *string `json:"notes"`
}

// GenerateMonthRequest asks for a doctor's month to be expanded into slots.
type GenerateMonthRequest struct {
	DoctorLicense int64 `json:"doctor_license" binding:"required,gt=0"`
	Month         int   `json:"month" binding:"required,min=1,max=12"`
	Year          int   `json:"year" binding:"required,gt=0"`
}

// GenerateMonthResponse reports the created batch.
type GenerateMonthResponse struct {
	Count int     `json:"count"`
	Slots []*Slot `json:"slots"`
}
