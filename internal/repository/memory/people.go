package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/medagenda/clinic-api/internal/model"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
)

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.doctors[doctor.License]; ok {
		return apperrors.NewConflict("doctor already exists", nil)
	}

	doctor.Active = true
	doctor.CreatedAt = time.Now()
	doctor.UpdatedAt = time.Now()
	r.store.doctors[doctor.License] = cloneDoctor(doctor)
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, license int64) (*model.Doctor, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	doctor, ok := r.store.doctors[license]
	if !ok || !doctor.Active {
		return nil, apperrors.NewNotFound("doctor", nil)
	}
	return cloneDoctor(doctor), nil
}

func (r *doctorRepository) GetByEmail(ctx context.Context, email string) (*model.Doctor, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, d := range r.store.doctors {
		if d.Active && strings.EqualFold(d.Email, email) {
			return cloneDoctor(d), nil
		}
	}
	return nil, apperrors.NewNotFound("doctor", nil)
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.doctors[doctor.License]
	if !ok || !existing.Active {
		return apperrors.NewNotFound("doctor", nil)
	}

	doctor.Active = existing.Active
	doctor.CreatedAt = existing.CreatedAt
	doctor.UpdatedAt = time.Now()
	r.store.doctors[doctor.License] = cloneDoctor(doctor)
	return nil
}

func (r *doctorRepository) Deactivate(ctx context.Context, license int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doctor, ok := r.store.doctors[license]
	if !ok || !doctor.Active {
		return apperrors.NewNotFound("doctor", nil)
	}
	doctor.Active = false
	doctor.UpdatedAt = time.Now()
	return nil
}

func (r *doctorRepository) List(ctx context.Context, specialtyID int64) ([]*model.Doctor, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*model.Doctor
	for _, d := range r.store.doctors {
		if !d.Active {
			continue
		}
		if specialtyID != 0 && d.SpecialtyID != specialtyID {
			continue
		}
		out = append(out, cloneDoctor(d))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.patients[patient.DNI]; ok {
		return apperrors.NewConflict("patient already exists", nil)
	}

	patient.Active = true
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = time.Now()
	r.store.patients[patient.DNI] = clonePatient(patient)
	return nil
}

func (r *patientRepository) Get(ctx context.Context, dni int64) (*model.Patient, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	patient, ok := r.store.patients[dni]
	if !ok || !patient.Active {
		return nil, apperrors.NewNotFound("patient", nil)
	}
	return clonePatient(patient), nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.patients[patient.DNI]
	if !ok || !existing.Active {
		return apperrors.NewNotFound("patient", nil)
	}

	patient.Active = existing.Active
	patient.CreatedAt = existing.CreatedAt
	patient.UpdatedAt = time.Now()
	r.store.patients[patient.DNI] = clonePatient(patient)
	return nil
}

func (r *patientRepository) Deactivate(ctx context.Context, dni int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	patient, ok := r.store.patients[dni]
	if !ok || !patient.Active {
		return apperrors.NewNotFound("patient", nil)
	}
	patient.Active = false
	patient.UpdatedAt = time.Now()
	return nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	return r.ListByLastName(ctx, "")
}

func (r *patientRepository) ListByLastName(ctx context.Context, lastName string) ([]*model.Patient, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*model.Patient
	for _, p := range r.store.patients {
		if !p.Active {
			continue
		}
		if lastName != "" && !strings.HasPrefix(strings.ToLower(p.LastName), strings.ToLower(lastName)) {
			continue
		}
		out = append(out, clonePatient(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

func (r *specialtyRepository) Create(ctx context.Context, specialty *model.Specialty) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, sp := range r.store.specialties {
		if sp.Active && strings.EqualFold(sp.Name, specialty.Name) {
			return apperrors.NewConflict("specialty already exists", nil)
		}
	}

	r.store.nextSpecialtyID++
	specialty.ID = r.store.nextSpecialtyID
	specialty.Active = true
	specialty.CreatedAt = time.Now()
	specialty.UpdatedAt = time.Now()
	r.store.specialties[specialty.ID] = cloneSpecialty(specialty)
	return nil
}

func (r *specialtyRepository) Get(ctx context.Context, id int64) (*model.Specialty, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	sp, ok := r.store.specialties[id]
	if !ok || !sp.Active {
		return nil, apperrors.NewNotFound("specialty", nil)
	}
	return cloneSpecialty(sp), nil
}

func (r *specialtyRepository) GetByName(ctx context.Context, name string) (*model.Specialty, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, sp := range r.store.specialties {
		if sp.Active && strings.EqualFold(sp.Name, name) {
			return cloneSpecialty(sp), nil
		}
	}
	return nil, apperrors.NewNotFound("specialty", nil)
}

func (r *specialtyRepository) Update(ctx context.Context, specialty *model.Specialty) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.specialties[specialty.ID]
	if !ok || !existing.Active {
		return apperrors.NewNotFound("specialty", nil)
	}

	specialty.Active = existing.Active
	specialty.CreatedAt = existing.CreatedAt
	specialty.UpdatedAt = time.Now()
	r.store.specialties[specialty.ID] = cloneSpecialty(specialty)
	return nil
}

func (r *specialtyRepository) Deactivate(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	sp, ok := r.store.specialties[id]
	if !ok || !sp.Active {
		return apperrors.NewNotFound("specialty", nil)
	}
	sp.Active = false
	sp.UpdatedAt = time.Now()
	return nil
}

func (r *specialtyRepository) List(ctx context.Context) ([]*model.Specialty, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*model.Specialty
	for _, sp := range r.store.specialties {
		if sp.Active {
			out = append(out, cloneSpecialty(sp))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
