package model

import (
	"fmt"

	apperrors "github.com/medagenda/clinic-api/pkg/errors"
)

// Doctor is keyed by license number. Doctors are deactivated, never
// deleted.
type Doctor struct {
	License      int64  `db:"license" json:"license"`
	FirstName    string `db:"first_name" json:"first_name"`
	LastName     string `db:"last_name" json:"last_name"`
	Email        string `db:"email" json:"email"`
	SpecialtyID  int64  `db:"specialty_id" json:"specialty_id"`
	PasswordHash string `db:"password_hash" json:"-"`
	Active       bool   `db:"active" json:"active"`
	Audit
}

func (d *Doctor) Validate() error {
	if d.License <= 0 {
		return apperrors.NewValidation("doctor license must be a positive number")
	}
	if d.FirstName == "" || d.LastName == "" {
		return apperrors.NewValidation("doctor must have a first and last name")
	}
	if d.SpecialtyID <= 0 {
		return apperrors.NewValidation("doctor must reference a specialty")
	}
	return nil
}

func (d *Doctor) FullName() string {
	return fmt.Sprintf("%s %s", d.FirstName, d.LastName)
}

type CreateDoctorRequest struct {
	License     int64  `json:"license" binding:"required,gt=0"`
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	SpecialtyID int64  `json:"specialty_id" binding:"required,gt=0"`
	Password    string `json:"password" binding:"required,min=8"`
}

type UpdateDoctorRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email" binding:"omitempty,email"`
	SpecialtyID *int64  `json:"specialty_id"`
}
