package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/medagenda/clinic-api/internal/model"
)

// GetOrCreateRecord returns the patient's clinical record, creating it
// lazily on first visit.
func (r *visitRepository) GetOrCreateRecord(ctx context.Context, patientDNI int64) (*model.ClinicalRecord, error) {
	query := `
		SELECT id, patient_dni, created_at, updated_at
		FROM clinical_records
		WHERE patient_dni = $1
	`
	var record model.ClinicalRecord
	err := r.db.GetContext(ctx, &record, query, patientDNI)
	if err == nil {
		return &record, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, classify(err, "clinical record")
	}

	insert := `
		INSERT INTO clinical_records (patient_dni, created_at, updated_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	record.PatientDNI = patientDNI
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()

	if err := r.db.GetContext(ctx, &record.ID, insert,
		record.PatientDNI, record.CreatedAt, record.UpdatedAt,
	); err != nil {
		return nil, classify(err, "clinical record")
	}
	return &record, nil
}

func (r *visitRepository) CreateVisit(ctx context.Context, visit *model.Visit) error {
	query := `
		INSERT INTO visits (
			id, visit_time, diagnosis, notes, record_id, doctor_license,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	visit.ID = uuid.New()
	visit.CreatedAt = time.Now()
	visit.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		visit.ID,
		visit.VisitTime,
		visit.Diagnosis,
		visit.Notes,
		visit.RecordID,
		visit.DoctorLicense,
		visit.CreatedAt,
		visit.UpdatedAt,
	)
	if err != nil {
		return classify(err, "visit")
	}
	return nil
}

func (r *visitRepository) GetVisit(ctx context.Context, id uuid.UUID) (*model.Visit, error) {
	query := `
		SELECT id, visit_time, diagnosis, notes, record_id, doctor_license,
			   created_at, updated_at
		FROM visits
		WHERE id = $1
	`
	var visit model.Visit
	if err := r.db.GetContext(ctx, &visit, query, id); err != nil {
		return nil, classify(err, "visit")
	}
	return &visit, nil
}

func (r *visitRepository) ListVisitsByRecord(ctx context.Context, recordID int64) ([]*model.Visit, error) {
	query := `
		SELECT id, visit_time, diagnosis, notes, record_id, doctor_license,
			   created_at, updated_at
		FROM visits
		WHERE record_id = $1
		ORDER BY visit_time DESC
	`
	var visits []*model.Visit
	if err := r.db.SelectContext(ctx, &visits, query, recordID); err != nil {
		return nil, classify(err, "visit")
	}
	return visits, nil
}

func (r *visitRepository) CreatePrescription(ctx context.Context, p *model.Prescription) error {
	query := `
		INSERT INTO prescriptions (
			id, issued_at, medications, detail, visit_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.IssuedAt,
		p.Medications,
		p.Detail,
		p.VisitID,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return classify(err, "prescription")
	}
	return nil
}

func (r *visitRepository) ListPrescriptionsByVisit(ctx context.Context, visitID uuid.UUID) ([]*model.Prescription, error) {
	query := `
		SELECT id, issued_at, medications, detail, visit_id, created_at, updated_at
		FROM prescriptions
		WHERE visit_id = $1
		ORDER BY issued_at DESC
	`
	var prescriptions []*model.Prescription
	if err := r.db.SelectContext(ctx, &prescriptions, query, visitID); err != nil {
		return nil, classify(err, "prescription")
	}
	return prescriptions, nil
}
