// Package report aggregates occupancy and attendance statistics over
// the slot history.
package report

import (
	"context"
	"time"

	"github.com/medagenda/clinic-api/internal/model"
	"github.com/medagenda/clinic-api/internal/repository"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
)

// StatusReport is the slot census for one scope.
type StatusReport struct {
	SpecialtyID   int64                    `json:"specialty_id,omitempty"`
	SpecialtyName string                   `json:"specialty_name,omitempty"`
	Counts        map[model.SlotStatus]int `json:"counts"`
	Total         int                      `json:"total"`
}

type Service struct {
	slots       repository.SlotRepository
	specialties repository.SpecialtyRepository
}

func NewService(slots repository.SlotRepository, specialties repository.SpecialtyRepository) *Service {
	return &Service{slots: slots, specialties: specialties}
}

func validateRange(from, to *time.Time) error {
	if from == nil || to == nil {
		return nil
	}
	if to.Before(*from) {
		return apperrors.NewValidation("period end must not precede its start")
	}
	if to.Sub(*from) > model.MaxQueryRangeDays*24*time.Hour {
		return apperrors.NewValidationf("period must not exceed %d days", model.MaxQueryRangeDays)
	}
	return nil
}

// StatusCounts reports how many slots sit in each state, optionally
// restricted to one specialty and a period.
func (s *Service) StatusCounts(ctx context.Context, specialtyID int64, from, to *time.Time) (*StatusReport, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	report := &StatusReport{SpecialtyID: specialtyID}
	if specialtyID != 0 {
		specialty, err := s.specialties.Get(ctx, specialtyID)
		if err != nil {
			return nil, err
		}
		report.SpecialtyName = specialty.Name
	}

	counts, err := s.slots.CountByStatus(ctx, specialtyID, from, to)
	if err != nil {
		return nil, err
	}
	report.Counts = counts
	for _, n := range counts {
		report.Total += n
	}
	return report, nil
}

// StatusCountsBySpecialty produces one census per active specialty.
func (s *Service) StatusCountsBySpecialty(ctx context.Context, from, to *time.Time) ([]*StatusReport, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	specialties, err := s.specialties.List(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]*StatusReport, 0, len(specialties))
	for _, sp := range specialties {
		counts, err := s.slots.CountByStatus(ctx, sp.ID, from, to)
		if err != nil {
			return nil, err
		}
		report := &StatusReport{
			SpecialtyID:   sp.ID,
			SpecialtyName: sp.Name,
			Counts:        counts,
		}
		for _, n := range counts {
			report.Total += n
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// PatientsAttended lists the distinct patients seen within a period.
func (s *Service) PatientsAttended(ctx context.Context, from, to time.Time) ([]*model.Patient, error) {
	if err := validateRange(&from, &to); err != nil {
		return nil, err
	}
	return s.slots.ListAttendedPatients(ctx, from, to)
}
