// Package doctor manages the staff roster. Doctors are deactivated,
// never deleted, so historical slots keep a valid reference.
package doctor

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/medagenda/clinic-api/internal/model"
	"github.com/medagenda/clinic-api/internal/repository"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
	"github.com/medagenda/clinic-api/pkg/logger"
)

type Service struct {
	doctors     repository.DoctorRepository
	specialties repository.SpecialtyRepository
	logger      *logger.Logger
}

func NewService(doctors repository.DoctorRepository, specialties repository.SpecialtyRepository, log *logger.Logger) *Service {
	return &Service{doctors: doctors, specialties: specialties, logger: log}
}

func (s *Service) Create(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	if _, err := s.specialties.Get(ctx, req.SpecialtyID); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewPersistence(err)
	}

	doctor := &model.Doctor{
		License:      req.License,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		SpecialtyID:  req.SpecialtyID,
		PasswordHash: string(hash),
	}
	if err := doctor.Validate(); err != nil {
		return nil, err
	}

	if err := s.doctors.Create(ctx, doctor); err != nil {
		return nil, err
	}

	s.logger.Info("doctor registered", "license", doctor.License)
	return doctor, nil
}

func (s *Service) Get(ctx context.Context, license int64) (*model.Doctor, error) {
	return s.doctors.Get(ctx, license)
}

func (s *Service) Update(ctx context.Context, license int64, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	doctor, err := s.doctors.Get(ctx, license)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		doctor.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		doctor.LastName = *req.LastName
	}
	if req.Email != nil {
		doctor.Email = *req.Email
	}
	if req.SpecialtyID != nil {
		if _, err := s.specialties.Get(ctx, *req.SpecialtyID); err != nil {
			return nil, err
		}
		doctor.SpecialtyID = *req.SpecialtyID
	}

	if err := doctor.Validate(); err != nil {
		return nil, err
	}
	if err := s.doctors.Update(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *Service) Deactivate(ctx context.Context, license int64) error {
	if err := s.doctors.Deactivate(ctx, license); err != nil {
		return err
	}
	s.logger.Info("doctor deactivated", "license", license)
	return nil
}

func (s *Service) List(ctx context.Context, specialtyID int64) ([]*model.Doctor, error) {
	return s.doctors.List(ctx, specialtyID)
}
