package postgres

import (
	"context"
	"time"

	"github.com/medagenda/clinic-api/internal/model"
)

const doctorColumns = `
	license, first_name, last_name, email, specialty_id, password_hash,
	active, created_at, updated_at
`

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (
			license, first_name, last_name, email, specialty_id,
			password_hash, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	doctor.Active = true
	doctor.CreatedAt = time.Now()
	doctor.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		doctor.License,
		doctor.FirstName,
		doctor.LastName,
		doctor.Email,
		doctor.SpecialtyID,
		doctor.PasswordHash,
		doctor.Active,
		doctor.CreatedAt,
		doctor.UpdatedAt,
	)
	if err != nil {
		return classify(err, "doctor")
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, license int64) (*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE license = $1 AND active`

	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, license); err != nil {
		return nil, classify(err, "doctor")
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByEmail(ctx context.Context, email string) (*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE email = $1 AND active`

	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, email); err != nil {
		return nil, classify(err, "doctor")
	}
	return &doctor, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	query := `
		UPDATE doctors
		SET first_name = $1, last_name = $2, email = $3, specialty_id = $4,
			updated_at = $5
		WHERE license = $6 AND active
	`
	doctor.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		doctor.FirstName,
		doctor.LastName,
		doctor.Email,
		doctor.SpecialtyID,
		doctor.UpdatedAt,
		doctor.License,
	)
	if err != nil {
		return classify(err, "doctor")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return classify(err, "doctor")
	}
	if rows == 0 {
		return classify(errNoRows(), "doctor")
	}
	return nil
}

// Deactivate soft-deletes. Doctor rows stay behind their slots forever.
func (r *doctorRepository) Deactivate(ctx context.Context, license int64) error {
	query := `UPDATE doctors SET active = false, updated_at = $1 WHERE license = $2 AND active`

	result, err := r.db.ExecContext(ctx, query, time.Now(), license)
	if err != nil {
		return classify(err, "doctor")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return classify(err, "doctor")
	}
	if rows == 0 {
		return classify(errNoRows(), "doctor")
	}
	return nil
}

func (r *doctorRepository) List(ctx context.Context, specialtyID int64) ([]*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE active`
	var args []interface{}

	if specialtyID != 0 {
		query += ` AND specialty_id = $1`
		args = append(args, specialtyID)
	}
	query += ` ORDER BY last_name, first_name`

	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query, args...); err != nil {
		return nil, classify(err, "doctor")
	}
	return doctors, nil
}
