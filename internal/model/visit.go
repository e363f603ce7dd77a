package model

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/medagenda/clinic-api/pkg/errors"
)

// ClinicalRecord is a patient's clinical history; one per patient.
type ClinicalRecord struct {
	ID         int64 `db:"id" json:"id"`
	PatientDNI int64 `db:"patient_dni" json:"patient_dni"`
	Audit
}

// Visit records one consultation against a clinical record.
type Visit struct {
	ID            uuid.UUID `db:"id" json:"id"`
	VisitTime     time.Time `db:"visit_time" json:"visit_time"`
	Diagnosis     string    `db:"diagnosis" json:"diagnosis"`
	Notes         *string   `db:"notes" json:"notes,omitempty"`
	RecordID      int64     `db:"record_id" json:"record_id"`
	DoctorLicense int64     `db:"doctor_license" json:"doctor_license"`
	Audit
}

func (v *Visit) Validate() error {
	if v.VisitTime.IsZero() {
		return apperrors.NewValidation("visit must have a date and time")
	}
	if v.RecordID <= 0 {
		return apperrors.NewValidation("visit must reference a clinical record")
	}
	if v.DoctorLicense <= 0 {
		return apperrors.NewValidation("visit must reference a doctor")
	}
	return nil
}

// Prescription hangs off a visit.
type Prescription struct {
	ID          uuid.UUID `db:"id" json:"id"`
	IssuedAt    time.Time `db:"issued_at" json:"issued_at"`
	Medications string    `db:"medications" json:"medications"`
	Detail      *string   `db:"detail" json:"detail,omitempty"`
	VisitID     uuid.UUID `db:"visit_id" json:"visit_id"`
	Audit
}

func (p *Prescription) Validate() error {
	if p.IssuedAt.IsZero() {
		return apperrors.NewValidation("prescription must have an issue date")
	}
	if p.Medications == "" {
		return apperrors.NewValidation("prescription must include medications")
	}
	if p.VisitID == uuid.Nil {
		return apperrors.NewValidation("prescription must reference a visit")
	}
	return nil
}

type CreateVisitRequest struct {
	PatientDNI    int64   `json:"patient_dni" binding:"required,gt=0"`
	DoctorLicense int64   `json:"doctor_license" binding:"required,gt=0"`
	Diagnosis     string  `json:"diagnosis" binding:"required"`
	Notes         *string `json:"notes"`
}

type CreatePrescriptionRequest struct {
	VisitID     string  `json:"visit_id" binding:"required,uuid"`
	Medications string  `json:"medications" binding:"required"`
	Detail      *string `json:"detail"`
}
