// Package patient manages the patient registry.
package patient

import (
	"context"
	"time"

	"github.com/medagenda/clinic-api/internal/model"
	"github.com/medagenda/clinic-api/internal/repository"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
	"github.com/medagenda/clinic-api/pkg/logger"
)

type Service struct {
	patients repository.PatientRepository
	logger   *logger.Logger
}

func NewService(patients repository.PatientRepository, log *logger.Logger) *Service {
	return &Service{patients: patients, logger: log}
}

func parseBirthDate(raw string) (*time.Time, error) {
	parsed, err := time.Parse(model.DateLayout, raw)
	if err != nil {
		return nil, apperrors.NewValidationf("birth date must use %s format", model.DateLayout)
	}
	return &parsed, nil
}

func (s *Service) Create(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	patient := &model.Patient{
		DNI:       req.DNI,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Address:   req.Address,
	}
	if req.BirthDate != nil {
		birth, err := parseBirthDate(*req.BirthDate)
		if err != nil {
			return nil, err
		}
		patient.BirthDate = birth
	}

	if err := patient.Validate(); err != nil {
		return nil, err
	}
	if err := s.patients.Create(ctx, patient); err != nil {
		return nil, err
	}

	s.logger.Info("patient registered", "dni", patient.DNI)
	return patient, nil
}

func (s *Service) Get(ctx context.Context, dni int64) (*model.Patient, error) {
	return s.patients.Get(ctx, dni)
}

func (s *Service) Update(ctx context.Context, dni int64, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.patients.Get(ctx, dni)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		patient.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		patient.LastName = *req.LastName
	}
	if req.BirthDate != nil {
		birth, err := parseBirthDate(*req.BirthDate)
		if err != nil {
			return nil, err
		}
		patient.BirthDate = birth
	}
	if req.Email != nil {
		patient.Email = *req.Email
	}
	if req.Address != nil {
		patient.Address = *req.Address
	}

	if err := patient.Validate(); err != nil {
		return nil, err
	}
	if err := s.patients.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *Service) Deactivate(ctx context.Context, dni int64) error {
	if err := s.patients.Deactivate(ctx, dni); err != nil {
		return err
	}
	s.logger.Info("patient deactivated", "dni", dni)
	return nil
}

func (s *Service) List(ctx context.Context, lastName string) ([]*model.Patient, error) {
	if lastName != "" {
		return s.patients.ListByLastName(ctx, lastName)
	}
	return s.patients.List(ctx)
}
