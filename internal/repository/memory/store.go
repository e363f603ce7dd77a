// Package memory provides map-backed implementations of the repository
// contracts. They keep the same error taxonomy as the postgres layer
// and back the service test suites.
package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/medagenda/clinic-api/internal/model"
	"github.com/medagenda/clinic-api/internal/repository"
)

// Store is the shared in-memory state behind the per-entity
// repositories. All repositories created from one Store see the same
// data, mirroring a shared database.
type Store struct {
	mu sync.RWMutex

	templates     map[templateKey]*model.ScheduleTemplate
	slots         map[uuid.UUID]*model.Slot
	doctors       map[int64]*model.Doctor
	patients      map[int64]*model.Patient
	specialties   map[int64]*model.Specialty
	recordsByDNI  map[int64]*model.ClinicalRecord
	visits        map[uuid.UUID]*model.Visit
	prescriptions map[uuid.UUID]*model.Prescription

	nextRecordID    int64
	nextSpecialtyID int64
}

type templateKey struct {
	license int64
	month   int
}

func NewStore() *Store {
	return &Store{
		templates:     make(map[templateKey]*model.ScheduleTemplate),
		slots:         make(map[uuid.UUID]*model.Slot),
		doctors:       make(map[int64]*model.Doctor),
		patients:      make(map[int64]*model.Patient),
		specialties:   make(map[int64]*model.Specialty),
		recordsByDNI:  make(map[int64]*model.ClinicalRecord),
		visits:        make(map[uuid.UUID]*model.Visit),
		prescriptions: make(map[uuid.UUID]*model.Prescription),
	}
}

func (s *Store) Templates() repository.TemplateRepository { return &templateRepository{store: s} }
func (s *Store) Slots() repository.SlotRepository         { return &slotRepository{store: s} }
func (s *Store) Doctors() repository.DoctorRepository     { return &doctorRepository{store: s} }
func (s *Store) Patients() repository.PatientRepository   { return &patientRepository{store: s} }
func (s *Store) Specialties() repository.SpecialtyRepository {
	return &specialtyRepository{store: s}
}
func (s *Store) Visits() repository.VisitRepository { return &visitRepository{store: s} }

type templateRepository struct{ store *Store }
type slotRepository struct{ store *Store }
type doctorRepository struct{ store *Store }
type patientRepository struct{ store *Store }
type specialtyRepository struct{ store *Store }
type visitRepository struct{ store *Store }

func cloneTemplate(t *model.ScheduleTemplate) *model.ScheduleTemplate {
	c := *t
	c.Weekdays = append([]model.Weekday(nil), t.Weekdays...)
	return &c
}

func cloneSlot(s *model.Slot) *model.Slot {
	c := *s
	if s.Motive != nil {
		m := *s.Motive
		c.Motive = &m
	}
	if s.Notes != nil {
		n := *s.Notes
		c.Notes = &n
	}
	if s.PatientDNI != nil {
		d := *s.PatientDNI
		c.PatientDNI = &d
	}
	return &c
}

func cloneDoctor(d *model.Doctor) *model.Doctor {
	c := *d
	return &c
}

func clonePatient(p *model.Patient) *model.Patient {
	c := *p
	if p.BirthDate != nil {
		b := *p.BirthDate
		c.BirthDate = &b
	}
	return &c
}

func cloneSpecialty(sp *model.Specialty) *model.Specialty {
	c := *sp
	return &c
}

func cloneVisit(v *model.Visit) *model.Visit {
	c := *v
	if v.Notes != nil {
		n := *v.Notes
		c.Notes = &n
	}
	return &c
}

func clonePrescription(p *model.Prescription) *model.Prescription {
	c := *p
	if p.Detail != nil {
		d := *p.Detail
		c.Detail = &d
	}
	return &c
}
