package postgres

import (
	"context"
	"time"

	"github.com/medagenda/clinic-api/internal/model"
)

const patientColumns = `
	dni, first_name, last_name, birth_date, email, address, active,
	created_at, updated_at
`

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (
			dni, first_name, last_name, birth_date, email, address,
			active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	patient.Active = true
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		patient.DNI,
		patient.FirstName,
		patient.LastName,
		patient.BirthDate,
		patient.Email,
		patient.Address,
		patient.Active,
		patient.CreatedAt,
		patient.UpdatedAt,
	)
	if err != nil {
		return classify(err, "patient")
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, dni int64) (*model.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE dni = $1 AND active`

	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, dni); err != nil {
		return nil, classify(err, "patient")
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET first_name = $1, last_name = $2, birth_date = $3, email = $4,
			address = $5, updated_at = $6
		WHERE dni = $7 AND active
	`
	patient.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		patient.FirstName,
		patient.LastName,
		patient.BirthDate,
		patient.Email,
		patient.Address,
		patient.UpdatedAt,
		patient.DNI,
	)
	if err != nil {
		return classify(err, "patient")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return classify(err, "patient")
	}
	if rows == 0 {
		return classify(errNoRows(), "patient")
	}
	return nil
}

func (r *patientRepository) Deactivate(ctx context.Context, dni int64) error {
	query := `UPDATE patients SET active = false, updated_at = $1 WHERE dni = $2 AND active`

	result, err := r.db.ExecContext(ctx, query, time.Now(), dni)
	if err != nil {
		return classify(err, "patient")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return classify(err, "patient")
	}
	if rows == 0 {
		return classify(errNoRows(), "patient")
	}
	return nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE active ORDER BY last_name, first_name`

	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query); err != nil {
		return nil, classify(err, "patient")
	}
	return patients, nil
}

func (r *patientRepository) ListByLastName(ctx context.Context, lastName string) ([]*model.Patient, error) {
	query := `
		SELECT ` + patientColumns + `
		FROM patients
		WHERE active AND lower(last_name) LIKE lower($1)
		ORDER BY last_name, first_name
	`
	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query, lastName+"%"); err != nil {
		return nil, classify(err, "patient")
	}
	return patients, nil
}
