package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/medagenda/clinic-api/internal/model"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
)

// Book assigns a patient to an available slot. The status swap is
// conditional on the stored status so two concurrent bookings cannot
// both succeed.
func (s *Service) Book(ctx context.Context, slotID uuid.UUID, req *model.BookSlotRequest) (*model.Slot, error) {
	slot, err := s.slots.Get(ctx, slotID)
	if err != nil {
		return nil, err
	}

	patient, err := s.patients.Get(ctx, req.PatientDNI)
	if err != nil {
		return nil, err
	}

	if err := s.lifecycle.Book(slot, patient, req.Motive, req.Notes); err != nil {
		return nil, err
	}
	if err := s.slots.UpdateStatus(ctx, slot, model.SlotStatusAvailable); err != nil {
		return nil, err
	}

	s.metrics.SlotsBooked.Inc()
	s.notify(ctx, func(ctx context.Context) error {
		return s.notifier.BookingConfirmed(ctx, slot, patient)
	})
	return slot, nil
}

// Cancel returns a booked slot to the pool.
func (s *Service) Cancel(ctx context.Context, slotID uuid.UUID, req *model.CancelSlotRequest) (*model.Slot, error) {
	slot, err := s.slots.Get(ctx, slotID)
	if err != nil {
		return nil, err
	}

	// The patient reference is cleared by the transition; resolve it
	// first so the cancellation notice still has a recipient.
	var patient *model.Patient
	if slot.PatientDNI != nil {
		patient, _ = s.patients.Get(ctx, *slot.PatientDNI)
	}

	if err := s.lifecycle.Cancel(slot, req.Notes); err != nil {
		return nil, err
	}
	if err := s.slots.UpdateStatus(ctx, slot, model.SlotStatusBooked); err != nil {
		return nil, err
	}

	s.metrics.SlotsCancelled.Inc()
	if patient != nil {
		s.notify(ctx, func(ctx context.Context) error {
			return s.notifier.BookingCancelled(ctx, slot, patient)
		})
	}
	return slot, nil
}

// MarkAttended records that the patient showed up.
func (s *Service) MarkAttended(ctx context.Context, slotID uuid.UUID) (*model.Slot, error) {
	slot, err := s.slots.Get(ctx, slotID)
	if err != nil {
		return nil, err
	}

	if err := s.lifecycle.MarkAttended(slot); err != nil {
		return nil, err
	}
	if err := s.slots.UpdateStatus(ctx, slot, model.SlotStatusBooked); err != nil {
		return nil, err
	}

	s.metrics.SlotsAttended.Inc()
	return slot, nil
}

// MarkNoShow records that the patient did not attend.
func (s *Service) MarkNoShow(ctx context.Context, slotID uuid.UUID) (*model.Slot, error) {
	slot, err := s.slots.Get(ctx, slotID)
	if err != nil {
		return nil, err
	}

	if err := s.lifecycle.MarkNoShow(slot); err != nil {
		return nil, err
	}
	if err := s.slots.UpdateStatus(ctx, slot, model.SlotStatusBooked); err != nil {
		return nil, err
	}

	s.metrics.SlotsMarkedNoShow.Inc()
	return slot, nil
}

func (s *Service) GetSlot(ctx context.Context, slotID uuid.UUID) (*model.Slot, error) {
	return s.slots.Get(ctx, slotID)
}

// ListSlots returns slots matching the filters in chronological order.
func (s *Service) ListSlots(ctx context.Context, filters *model.SlotFilters) ([]*model.Slot, error) {
	if filters.Month != 0 && (filters.Month < 1 || filters.Month > 12) {
		return nil, apperrors.NewValidation("month must be between 1 and 12")
	}
	if filters.From != nil && filters.To != nil {
		if filters.To.Before(*filters.From) {
			return nil, apperrors.NewValidation("period end must not precede its start")
		}
		if filters.To.Sub(*filters.From) > model.MaxQueryRangeDays*24*time.Hour {
			return nil, apperrors.NewValidationf("period must not exceed %d days", model.MaxQueryRangeDays)
		}
	}
	return s.slots.List(ctx, filters)
}

// SweepNoShows bulk-marks the still-booked slots of a past date as
// no-show. It backs the nightly worker.
func (s *Service) SweepNoShows(ctx context.Context, date time.Time) (int64, error) {
	today := s.Now()
	ty, tm, td := today.Date()
	startOfToday := time.Date(ty, tm, td, 0, 0, 0, 0, today.Location())
	if !date.Before(startOfToday) {
		return 0, apperrors.NewValidation("only past dates can be swept for no-shows")
	}

	start := time.Now()
	count, err := s.slots.MarkNoShowsForDate(ctx, date)
	s.metrics.DatabaseLatency.WithLabelValues("mark_no_shows").Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.DatabaseOperations.WithLabelValues("mark_no_shows", "error").Inc()
		return 0, err
	}
	s.metrics.DatabaseOperations.WithLabelValues("mark_no_shows", "success").Inc()

	if count > 0 {
		s.metrics.SlotsMarkedNoShow.Add(float64(count))
		s.logger.Info("no-show sweep completed",
			"date", date.Format(model.DateLayout), "marked", count)
	}
	return count, nil
}

// notify runs a notification best-effort. Delivery problems are logged
// and never surface to the caller.
func (s *Service) notify(ctx context.Context, fn func(context.Context) error) {
	if s.notifier == nil {
		return
	}
	if err := fn(ctx); err != nil {
		s.logger.Warn("notification delivery failed", "error", err.Error())
	}
}
