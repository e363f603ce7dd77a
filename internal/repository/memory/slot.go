package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/medagenda/clinic-api/internal/model"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
)

func (r *slotRepository) Create(ctx context.Context, slot *model.Slot) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	slot.ID = uuid.New()
	slot.CreatedAt = time.Now()
	slot.UpdatedAt = time.Now()
	r.store.slots[slot.ID] = cloneSlot(slot)
	return nil
}

func (r *slotRepository) Get(ctx context.Context, id uuid.UUID) (*model.Slot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	slot, ok := r.store.slots[id]
	if !ok {
		return nil, apperrors.NewNotFound("slot", nil)
	}
	return cloneSlot(slot), nil
}

func (r *slotRepository) UpdateStatus(ctx context.Context, slot *model.Slot, expected model.SlotStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.slots[slot.ID]
	if !ok {
		return apperrors.NewNotFound("slot", nil)
	}
	if existing.Status != expected {
		return apperrors.NewConflict("slot state changed concurrently", nil)
	}

	slot.CreatedAt = existing.CreatedAt
	slot.UpdatedAt = time.Now()
	r.store.slots[slot.ID] = cloneSlot(slot)
	return nil
}

func (r *slotRepository) ExistsForMonth(ctx context.Context, license int64, month, year int) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, s := range r.store.slots {
		if s.DoctorLicense == license &&
			int(s.StartTime.Month()) == month &&
			s.StartTime.Year() == year {
			return true, nil
		}
	}
	return false, nil
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (r *slotRepository) matches(s *model.Slot, f *model.SlotFilters) bool {
	if f.DoctorLicense != 0 && s.DoctorLicense != f.DoctorLicense {
		return false
	}
	if f.SpecialtyID != 0 {
		doctor, ok := r.store.doctors[s.DoctorLicense]
		if !ok || !doctor.Active || doctor.SpecialtyID != f.SpecialtyID {
			return false
		}
	}
	if f.Date != nil && !sameDate(s.StartTime, *f.Date) {
		return false
	}
	if f.Month != 0 && int(s.StartTime.Month()) != f.Month {
		return false
	}
	if f.Year != 0 && s.StartTime.Year() != f.Year {
		return false
	}
	if f.From != nil && s.StartTime.Before(*f.From) && !sameDate(s.StartTime, *f.From) {
		return false
	}
	if f.To != nil {
		end := f.To.AddDate(0, 0, 1)
		if !s.StartTime.Before(end) {
			return false
		}
	}
	if f.Status != "" && s.Status != f.Status {
		return false
	}
	return true
}

func (r *slotRepository) List(ctx context.Context, filters *model.SlotFilters) ([]*model.Slot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*model.Slot
	for _, s := range r.store.slots {
		if r.matches(s, filters) {
			out = append(out, cloneSlot(s))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

func (r *slotRepository) CountByStatus(ctx context.Context, specialtyID int64, from, to *time.Time) (map[model.SlotStatus]int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	filters := &model.SlotFilters{SpecialtyID: specialtyID, From: from, To: to}
	counts := make(map[model.SlotStatus]int)
	for _, s := range r.store.slots {
		if r.matches(s, filters) {
			counts[s.Status]++
		}
	}
	return counts, nil
}

func (r *slotRepository) ListAttendedPatients(ctx context.Context, from, to time.Time) ([]*model.Patient, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	seen := make(map[int64]bool)
	var out []*model.Patient
	end := to.AddDate(0, 0, 1)
	for _, s := range r.store.slots {
		if s.Status != model.SlotStatusAttended || s.PatientDNI == nil {
			continue
		}
		if s.StartTime.Before(from) && !sameDate(s.StartTime, from) {
			continue
		}
		if !s.StartTime.Before(end) {
			continue
		}
		if seen[*s.PatientDNI] {
			continue
		}
		patient, ok := r.store.patients[*s.PatientDNI]
		if !ok || !patient.Active {
			continue
		}
		seen[*s.PatientDNI] = true
		out = append(out, clonePatient(patient))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

func (r *slotRepository) MarkNoShowsForDate(ctx context.Context, date time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var count int64
	for _, s := range r.store.slots {
		if s.Status == model.SlotStatusBooked && sameDate(s.StartTime, date) {
			s.Status = model.SlotStatusNoShow
			s.UpdatedAt = time.Now()
			count++
		}
	}
	return count, nil
}
