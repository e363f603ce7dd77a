// Package slot implements the state machine governing a single slot:
// available → booked → {attended | no-show}, with cancellation
// returning a booked slot to available.
package slot

import (
	"time"

	"github.com/medagenda/clinic-api/internal/model"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
)

// Lifecycle applies state transitions to a slot in memory. Every
// operation mutates a copy first and revalidates the full invariant
// set, so a rejected transition leaves the slot untouched. Persisting
// the result is the caller's job.
type Lifecycle struct {
	// Now is swappable so time-gated transitions can be tested
	// against a fixed clock.
	Now func() time.Time
}

func NewLifecycle() *Lifecycle {
	return &Lifecycle{Now: time.Now}
}

// Book assigns a patient to an available slot.
func (l *Lifecycle) Book(s *model.Slot, patient *model.Patient, motive string, notes *string) error {
	if s.Status != model.SlotStatusAvailable {
		return apperrors.NewConflict("slot is not available for booking", nil)
	}
	if s.StartTime.Before(l.Now()) {
		return apperrors.NewPastSlot("cannot book a slot whose time has passed")
	}
	if patient == nil || !patient.Active {
		return apperrors.NewNotFoundf("no active patient for this booking")
	}
	if motive == "" {
		return apperrors.NewValidation("a booking motive is required")
	}

	next := *s
	next.Status = model.SlotStatusBooked
	next.PatientDNI = &patient.DNI
	next.Motive = &motive
	next.Notes = notes

	if err := next.Validate(); err != nil {
		return err
	}
	*s = next
	return nil
}

// Cancel returns a booked slot to available so it can be offered
// again. The patient reference and motive are cleared.
func (l *Lifecycle) Cancel(s *model.Slot, notes *string) error {
	if s.Status != model.SlotStatusBooked {
		return apperrors.NewValidationf("illegal transition: cannot cancel a %s slot", s.Status)
	}
	if s.StartTime.Before(l.Now()) {
		return apperrors.NewPastSlot("cannot cancel a slot whose time has passed")
	}

	next := *s
	next.Status = model.SlotStatusAvailable
	next.PatientDNI = nil
	next.Motive = nil
	next.Notes = notes

	if err := next.Validate(); err != nil {
		return err
	}
	*s = next
	return nil
}

// MarkAttended records that the patient showed up. Only slots of the
// current calendar day can be marked, and not before their scheduled
// time.
func (l *Lifecycle) MarkAttended(s *model.Slot) error {
	if s.Status != model.SlotStatusBooked {
		return apperrors.NewValidationf("illegal transition: cannot mark a %s slot attended", s.Status)
	}

	now := l.Now()
	ny, nm, nd := now.Date()
	sy, sm, sd := s.StartTime.Date()
	if ny != sy || nm != sm || nd != sd {
		return apperrors.NewValidation("only slots of the current day can be marked attended")
	}
	if now.Before(s.StartTime) {
		return apperrors.NewValidation("cannot mark a slot attended before its scheduled time")
	}

	next := *s
	next.Status = model.SlotStatusAttended

	if err := next.Validate(); err != nil {
		return err
	}
	*s = next
	return nil
}

// MarkNoShow records that the patient did not attend. The slot's time
// must already have passed.
func (l *Lifecycle) MarkNoShow(s *model.Slot) error {
	if s.Status != model.SlotStatusBooked {
		return apperrors.NewValidationf("illegal transition: cannot mark a %s slot no-show", s.Status)
	}
	if s.StartTime.After(l.Now()) {
		return apperrors.NewValidation("cannot mark a future slot no-show")
	}

	next := *s
	next.Status = model.SlotStatusNoShow

	if err := next.Validate(); err != nil {
		return err
	}
	*s = next
	return nil
}
