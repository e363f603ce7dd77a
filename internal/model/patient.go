package model

import (
	"fmt"
	"time"

	apperrors "github.com/medagenda/clinic-api/pkg/errors"
)

// ValidateDNI checks a national identity number: 7 or 8 digits.
func ValidateDNI(dni int64) error {
	if dni < 1_000_000 || dni > 99_999_999 {
		return apperrors.NewValidation("patient DNI must have 7 or 8 digits")
	}
	return nil
}

// Patient is keyed by DNI. Patients are soft-deleted via the active
// flag; inactive patients stay on record for historical integrity.
type Patient struct {
	DNI       int64      `db:"dni" json:"dni"`
	FirstName string     `db:"first_name" json:"first_name"`
	LastName  string     `db:"last_name" json:"last_name"`
	BirthDate *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	Email     string     `db:"email" json:"email,omitempty"`
	Address   string     `db:"address" json:"address,omitempty"`
	Active    bool       `db:"active" json:"active"`
	Audit
}

func (p *Patient) Validate() error {
	if err := ValidateDNI(p.DNI); err != nil {
		return err
	}
	if p.FirstName == "" || p.LastName == "" {
		return apperrors.NewValidation("patient must have a first and last name")
	}
	return nil
}

func (p *Patient) FullName() string {
	return fmt.Sprintf("%s %s", p.FirstName, p.LastName)
}

type CreatePatientRequest struct {
	DNI       int64   `json:"dni" binding:"required,gt=0"`
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	BirthDate *string `json:"birth_date"`
	Email     string  `json:"email" binding:"omitempty,email"`
	Address   string  `json:"address"`
}

type UpdatePatientRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	BirthDate *string `json:"birth_date"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Address   *string `json:"address"`
}
