package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/medagenda/clinic-api/internal/model"
)

// TemplateRepository stores schedule templates. Templates are never
// deleted; the contract deliberately has no Delete.
type TemplateRepository interface {
	Create(ctx context.Context, tpl *model.ScheduleTemplate) error
	Update(ctx context.Context, tpl *model.ScheduleTemplate) error
	GetByDoctorAndMonth(ctx context.Context, license int64, month int) (*model.ScheduleTemplate, error)
}

// SlotRepository stores appointment slots. Slots are never physically
// deleted either; cancellation reuses the record.
type SlotRepository interface {
	Create(ctx context.Context, slot *model.Slot) error
	Get(ctx context.Context, id uuid.UUID) (*model.Slot, error)
	// UpdateStatus persists a state transition only if the stored
	// status still equals expected; a stale status yields a
	// conflict. This closes the concurrent double-booking window
	// without table locks.
	UpdateStatus(ctx context.Context, slot *model.Slot, expected model.SlotStatus) error
	ExistsForMonth(ctx context.Context, license int64, month, year int) (bool, error)
	List(ctx context.Context, filters *model.SlotFilters) ([]*model.Slot, error)
	CountByStatus(ctx context.Context, specialtyID int64, from, to *time.Time) (map[model.SlotStatus]int, error)
	ListAttendedPatients(ctx context.Context, from, to time.Time) ([]*model.Patient, error)
	// MarkNoShowsForDate bulk-marks the still-booked slots of a past
	// calendar date as no-show and reports how many changed.
	MarkNoShowsForDate(ctx context.Context, date time.Time) (int64, error)
}

type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	Get(ctx context.Context, license int64) (*model.Doctor, error)
	GetByEmail(ctx context.Context, email string) (*model.Doctor, error)
	Update(ctx context.Context, doctor *model.Doctor) error
	Deactivate(ctx context.Context, license int64) error
	// List returns active doctors, optionally restricted to one
	// specialty (0 means all).
	List(ctx context.Context, specialtyID int64) ([]*model.Doctor, error)
}

type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, dni int64) (*model.Patient, error)
	Update(ctx context.Context, patient *model.Patient) error
	Deactivate(ctx context.Context, dni int64) error
	List(ctx context.Context) ([]*model.Patient, error)
	ListByLastName(ctx context.Context, lastName string) ([]*model.Patient, error)
}

type SpecialtyRepository interface {
	Create(ctx context.Context, specialty *model.Specialty) error
	Get(ctx context.Context, id int64) (*model.Specialty, error)
	GetByName(ctx context.Context, name string) (*model.Specialty, error)
	Update(ctx context.Context, specialty *model.Specialty) error
	Deactivate(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*model.Specialty, error)
}

// VisitRepository stores clinical records, visits and prescriptions.
type VisitRepository interface {
	GetOrCreateRecord(ctx context.Context, patientDNI int64) (*model.ClinicalRecord, error)
	CreateVisit(ctx context.Context, visit *model.Visit) error
	GetVisit(ctx context.Context, id uuid.UUID) (*model.Visit, error)
	ListVisitsByRecord(ctx context.Context, recordID int64) ([]*model.Visit, error)
	CreatePrescription(ctx context.Context, p *model.Prescription) error
	ListPrescriptionsByVisit(ctx context.Context, visitID uuid.UUID) ([]*model.Prescription, error)
}
