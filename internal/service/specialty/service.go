// Package specialty manages the medical specialty catalog.
package specialty

import (
	"context"

	"github.com/medagenda/clinic-api/internal/model"
	"github.com/medagenda/clinic-api/internal/repository"
	"github.com/medagenda/clinic-api/pkg/logger"
)

type Service struct {
	specialties repository.SpecialtyRepository
	logger      *logger.Logger
}

func NewService(specialties repository.SpecialtyRepository, log *logger.Logger) *Service {
	return &Service{specialties: specialties, logger: log}
}

func (s *Service) Create(ctx context.Context, req *model.CreateSpecialtyRequest) (*model.Specialty, error) {
	specialty := &model.Specialty{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := specialty.Validate(); err != nil {
		return nil, err
	}
	if err := s.specialties.Create(ctx, specialty); err != nil {
		return nil, err
	}

	s.logger.Info("specialty created", "id", specialty.ID, "name", specialty.Name)
	return specialty, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Specialty, error) {
	return s.specialties.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req *model.UpdateSpecialtyRequest) (*model.Specialty, error) {
	specialty, err := s.specialties.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		specialty.Name = *req.Name
	}
	if req.Description != nil {
		specialty.Description = *req.Description
	}

	if err := specialty.Validate(); err != nil {
		return nil, err
	}
	if err := s.specialties.Update(ctx, specialty); err != nil {
		return nil, err
	}
	return specialty, nil
}

func (s *Service) Deactivate(ctx context.Context, id int64) error {
	return s.specialties.Deactivate(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.Specialty, error) {
	return s.specialties.List(ctx)
}
