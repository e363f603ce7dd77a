// Package visit manages clinical records, consultations and
// prescriptions.
package visit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/medagenda/clinic-api/internal/model"
	"github.com/medagenda/clinic-api/internal/repository"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
	"github.com/medagenda/clinic-api/pkg/logger"
)

type Service struct {
	visits   repository.VisitRepository
	patients repository.PatientRepository
	doctors  repository.DoctorRepository
	logger   *logger.Logger

	Now func() time.Time
}

func NewService(
	visits repository.VisitRepository,
	patients repository.PatientRepository,
	doctors repository.DoctorRepository,
	log *logger.Logger,
) *Service {
	return &Service{
		visits:   visits,
		patients: patients,
		doctors:  doctors,
		logger:   log,
		Now:      time.Now,
	}
}

// CreateVisit records a consultation on the patient's clinical record,
// creating the record on first use.
func (s *Service) CreateVisit(ctx context.Context, req *model.CreateVisitRequest) (*model.Visit, error) {
	if _, err := s.patients.Get(ctx, req.PatientDNI); err != nil {
		return nil, err
	}
	if _, err := s.doctors.Get(ctx, req.DoctorLicense); err != nil {
		return nil, err
	}

	record, err := s.visits.GetOrCreateRecord(ctx, req.PatientDNI)
	if err != nil {
		return nil, err
	}

	visit := &model.Visit{
		VisitTime:     s.Now(),
		Diagnosis:     req.Diagnosis,
		Notes:         req.Notes,
		RecordID:      record.ID,
		DoctorLicense: req.DoctorLicense,
	}
	if err := visit.Validate(); err != nil {
		return nil, err
	}
	if err := s.visits.CreateVisit(ctx, visit); err != nil {
		return nil, err
	}

	s.logger.Info("visit recorded",
		"record_id", record.ID, "doctor_license", req.DoctorLicense)
	return visit, nil
}

func (s *Service) GetVisit(ctx context.Context, id uuid.UUID) (*model.Visit, error) {
	return s.visits.GetVisit(ctx, id)
}

// History returns a patient's clinical record with its visits, newest
// first.
func (s *Service) History(ctx context.Context, patientDNI int64) (*model.ClinicalRecord, []*model.Visit, error) {
	if _, err := s.patients.Get(ctx, patientDNI); err != nil {
		return nil, nil, err
	}

	record, err := s.visits.GetOrCreateRecord(ctx, patientDNI)
	if err != nil {
		return nil, nil, err
	}

	visits, err := s.visits.ListVisitsByRecord(ctx, record.ID)
	if err != nil {
		return nil, nil, err
	}
	return record, visits, nil
}

// Prescribe issues a prescription against an existing visit.
func (s *Service) Prescribe(ctx context.Context, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
	visitID, err := uuid.Parse(req.VisitID)
	if err != nil {
		return nil, apperrors.NewValidation("visit id must be a valid uuid")
	}
	if _, err := s.visits.GetVisit(ctx, visitID); err != nil {
		return nil, err
	}

	p := &model.Prescription{
		IssuedAt:    s.Now(),
		Medications: req.Medications,
		Detail:      req.Detail,
		VisitID:     visitID,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.visits.CreatePrescription(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListPrescriptions(ctx context.Context, visitID uuid.UUID) ([]*model.Prescription, error) {
	return s.visits.ListPrescriptionsByVisit(ctx, visitID)
}
