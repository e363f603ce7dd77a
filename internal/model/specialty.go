package model

import (
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
)

// Specialty groups doctors; soft-deleted via the active flag.
type Specialty struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description,omitempty"`
	Active      bool   `db:"active" json:"active"`
	Audit
}

func (s *Specialty) Validate() error {
	if s.Name == "" {
		return apperrors.NewValidation("specialty must have a name")
	}
	return nil
}

type CreateSpecialtyRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateSpecialtyRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
