// Package auth authenticates staff accounts and issues access tokens.
package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/medagenda/clinic-api/internal/model"
	"github.com/medagenda/clinic-api/internal/repository"
	"github.com/medagenda/clinic-api/pkg/auth"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
	"github.com/medagenda/clinic-api/pkg/logger"
)

type Service struct {
	doctors repository.DoctorRepository
	jwt     *auth.JWTService
	logger  *logger.Logger
}

func NewService(doctors repository.DoctorRepository, jwt *auth.JWTService, log *logger.Logger) *Service {
	return &Service{doctors: doctors, jwt: jwt, logger: log}
}

// Login verifies doctor credentials and issues a token. Unknown
// accounts and bad passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	doctor, err := s.doctors.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewUnauthorized(nil)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(doctor.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("failed login attempt", "email", req.Email)
		return nil, apperrors.NewUnauthorized(nil)
	}

	token, err := s.jwt.GenerateToken(doctor.License, doctor.Email)
	if err != nil {
		return nil, apperrors.NewPersistence(err)
	}

	return &model.TokenResponse{
		AccessToken:   token,
		DoctorLicense: doctor.License,
	}, nil
}
