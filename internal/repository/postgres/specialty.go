package postgres

import (
	"context"
	"time"

	"github.com/medagenda/clinic-api/internal/model"
)

func (r *specialtyRepository) Create(ctx context.Context, specialty *model.Specialty) error {
	query := `
		INSERT INTO specialties (name, description, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	specialty.Active = true
	specialty.CreatedAt = time.Now()
	specialty.UpdatedAt = time.Now()

	err := r.db.GetContext(ctx, &specialty.ID, query,
		specialty.Name,
		specialty.Description,
		specialty.Active,
		specialty.CreatedAt,
		specialty.UpdatedAt,
	)
	if err != nil {
		return classify(err, "specialty")
	}
	return nil
}

func (r *specialtyRepository) Get(ctx context.Context, id int64) (*model.Specialty, error) {
	query := `
		SELECT id, name, description, active, created_at, updated_at
		FROM specialties
		WHERE id = $1 AND active
	`
	var specialty model.Specialty
	if err := r.db.GetContext(ctx, &specialty, query, id); err != nil {
		return nil, classify(err, "specialty")
	}
	return &specialty, nil
}

func (r *specialtyRepository) GetByName(ctx context.Context, name string) (*model.Specialty, error) {
	query := `
		SELECT id, name, description, active, created_at, updated_at
		FROM specialties
		WHERE lower(name) = lower($1) AND active
	`
	var specialty model.Specialty
	if err := r.db.GetContext(ctx, &specialty, query, name); err != nil {
		return nil, classify(err, "specialty")
	}
	return &specialty, nil
}

func (r *specialtyRepository) Update(ctx context.Context, specialty *model.Specialty) error {
	query := `
		UPDATE specialties
		SET name = $1, description = $2, updated_at = $3
		WHERE id = $4 AND active
	`
	specialty.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		specialty.Name,
		specialty.Description,
		specialty.UpdatedAt,
		specialty.ID,
	)
	if err != nil {
		return classify(err, "specialty")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return classify(err, "specialty")
	}
	if rows == 0 {
		return classify(errNoRows(), "specialty")
	}
	return nil
}

func (r *specialtyRepository) Deactivate(ctx context.Context, id int64) error {
	query := `UPDATE specialties SET active = false, updated_at = $1 WHERE id = $2 AND active`

	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return classify(err, "specialty")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return classify(err, "specialty")
	}
	if rows == 0 {
		return classify(errNoRows(), "specialty")
	}
	return nil
}

func (r *specialtyRepository) List(ctx context.Context) ([]*model.Specialty, error) {
	query := `
		SELECT id, name, description, active, created_at, updated_at
		FROM specialties
		WHERE active
		ORDER BY name
	`
	var specialties []*model.Specialty
	if err := r.db.SelectContext(ctx, &specialties, query); err != nil {
		return nil, classify(err, "specialty")
	}
	return specialties, nil
}
