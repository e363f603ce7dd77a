package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/medagenda/clinic-api/internal/model"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
)

func (r *visitRepository) GetOrCreateRecord(ctx context.Context, patientDNI int64) (*model.ClinicalRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if record, ok := r.store.recordsByDNI[patientDNI]; ok {
		c := *record
		return &c, nil
	}

	r.store.nextRecordID++
	record := &model.ClinicalRecord{
		ID:         r.store.nextRecordID,
		PatientDNI: patientDNI,
	}
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()
	r.store.recordsByDNI[patientDNI] = record

	c := *record
	return &c, nil
}

func (r *visitRepository) CreateVisit(ctx context.Context, visit *model.Visit) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	visit.ID = uuid.New()
	visit.CreatedAt = time.Now()
	visit.UpdatedAt = time.Now()
	r.store.visits[visit.ID] = cloneVisit(visit)
	return nil
}

func (r *visitRepository) GetVisit(ctx context.Context, id uuid.UUID) (*model.Visit, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	visit, ok := r.store.visits[id]
	if !ok {
		return nil, apperrors.NewNotFound("visit", nil)
	}
	return cloneVisit(visit), nil
}

func (r *visitRepository) ListVisitsByRecord(ctx context.Context, recordID int64) ([]*model.Visit, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*model.Visit
	for _, v := range r.store.visits {
		if v.RecordID == recordID {
			out = append(out, cloneVisit(v))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VisitTime.After(out[j].VisitTime) })
	return out, nil
}

func (r *visitRepository) CreatePrescription(ctx context.Context, p *model.Prescription) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.visits[p.VisitID]; !ok {
		return apperrors.NewNotFound("visit", nil)
	}

	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	r.store.prescriptions[p.ID] = clonePrescription(p)
	return nil
}

func (r *visitRepository) ListPrescriptionsByVisit(ctx context.Context, visitID uuid.UUID) ([]*model.Prescription, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*model.Prescription
	for _, p := range r.store.prescriptions {
		if p.VisitID == visitID {
			out = append(out, clonePrescription(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IssuedAt.After(out[j].IssuedAt) })
	return out, nil
}
