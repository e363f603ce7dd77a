package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medagenda/clinic-api/internal/model"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
)

const slotColumns = `
	id, start_time, status, motive, notes, patient_dni, doctor_license,
	created_at, updated_at
`

func (r *slotRepository) Create(ctx context.Context, slot *model.Slot) error {
	query := `
		INSERT INTO slots (
			id, start_time, status, motive, notes, patient_dni,
			doctor_license, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	slot.ID = uuid.New()
	slot.CreatedAt = time.Now()
	slot.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		slot.ID,
		slot.StartTime,
		slot.Status,
		slot.Motive,
		slot.Notes,
		slot.PatientDNI,
		slot.DoctorLicense,
		slot.CreatedAt,
		slot.UpdatedAt,
	)
	if err != nil {
		return classify(err, "slot")
	}
	return nil
}

func (r *slotRepository) Get(ctx context.Context, id uuid.UUID) (*model.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE id = $1`

	var slot model.Slot
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		return nil, classify(err, "slot")
	}
	return &slot, nil
}

// UpdateStatus is the compare-and-swap write behind every lifecycle
// transition: the row only changes when its stored status still equals
// expected, so two concurrent bookers cannot both win.
func (r *slotRepository) UpdateStatus(ctx context.Context, slot *model.Slot, expected model.SlotStatus) error {
	query := `
		UPDATE slots
		SET status = $1, motive = $2, notes = $3, patient_dni = $4, updated_at = $5
		WHERE id = $6 AND status = $7
	`
	slot.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		slot.Status,
		slot.Motive,
		slot.Notes,
		slot.PatientDNI,
		slot.UpdatedAt,
		slot.ID,
		expected,
	)
	if err != nil {
		return classify(err, "slot")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return classify(err, "slot")
	}
	if rows == 0 {
		return apperrors.NewConflict("slot state changed concurrently", nil)
	}
	return nil
}

func (r *slotRepository) ExistsForMonth(ctx context.Context, license int64, month, year int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM slots
			WHERE doctor_license = $1
			  AND EXTRACT(MONTH FROM start_time) = $2
			  AND EXTRACT(YEAR FROM start_time) = $3
		)
	`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, license, month, year); err != nil {
		return false, classify(err, "slot")
	}
	return exists, nil
}

func (r *slotRepository) List(ctx context.Context, filters *model.SlotFilters) ([]*model.Slot, error) {
	query := `SELECT ` + joinSlotColumns("s") + ` FROM slots s`
	var args []interface{}
	where := " WHERE 1=1"
	argn := 1

	if filters.SpecialtyID != 0 {
		query += ` JOIN doctors d ON s.doctor_license = d.license`
		where += fmt.Sprintf(" AND d.specialty_id = $%d AND d.active", argn)
		args = append(args, filters.SpecialtyID)
		argn++
	}
	if filters.DoctorLicense != 0 {
		where += fmt.Sprintf(" AND s.doctor_license = $%d", argn)
		args = append(args, filters.DoctorLicense)
		argn++
	}
	if filters.Date != nil {
		where += fmt.Sprintf(" AND s.start_time::date = $%d::date", argn)
		args = append(args, *filters.Date)
		argn++
	}
	if filters.Month != 0 {
		where += fmt.Sprintf(" AND EXTRACT(MONTH FROM s.start_time) = $%d", argn)
		args = append(args, filters.Month)
		argn++
	}
	if filters.Year != 0 {
		where += fmt.Sprintf(" AND EXTRACT(YEAR FROM s.start_time) = $%d", argn)
		args = append(args, filters.Year)
		argn++
	}
	if filters.From != nil {
		where += fmt.Sprintf(" AND s.start_time::date >= $%d::date", argn)
		args = append(args, *filters.From)
		argn++
	}
	if filters.To != nil {
		where += fmt.Sprintf(" AND s.start_time::date <= $%d::date", argn)
		args = append(args, *filters.To)
		argn++
	}
	if filters.Status != "" {
		where += fmt.Sprintf(" AND s.status = $%d", argn)
		args = append(args, filters.Status)
		argn++
	}

	query += where + " ORDER BY s.start_time ASC"

	var slots []*model.Slot
	if err := r.db.SelectContext(ctx, &slots, query, args...); err != nil {
		return nil, classify(err, "slot")
	}
	return slots, nil
}

func (r *slotRepository) CountByStatus(ctx context.Context, specialtyID int64, from, to *time.Time) (map[model.SlotStatus]int, error) {
	query := `SELECT s.status, COUNT(*) AS count FROM slots s`
	var args []interface{}
	where := " WHERE 1=1"
	argn := 1

	if specialtyID != 0 {
		query += ` JOIN doctors d ON s.doctor_license = d.license`
		where += fmt.Sprintf(" AND d.specialty_id = $%d AND d.active", argn)
		args = append(args, specialtyID)
		argn++
	}
	if from != nil {
		where += fmt.Sprintf(" AND s.start_time::date >= $%d::date", argn)
		args = append(args, *from)
		argn++
	}
	if to != nil {
		where += fmt.Sprintf(" AND s.start_time::date <= $%d::date", argn)
		args = append(args, *to)
		argn++
	}

	query += where + " GROUP BY s.status"

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err, "slot")
	}
	defer rows.Close()

	counts := make(map[model.SlotStatus]int)
	for rows.Next() {
		var status model.SlotStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, classify(err, "slot")
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err, "slot")
	}
	return counts, nil
}

func (r *slotRepository) ListAttendedPatients(ctx context.Context, from, to time.Time) ([]*model.Patient, error) {
	query := `
		SELECT DISTINCT p.dni, p.first_name, p.last_name, p.birth_date,
			   p.email, p.address, p.active, p.created_at, p.updated_at
		FROM slots s
		JOIN patients p ON s.patient_dni = p.dni
		WHERE s.status = 'attended'
		  AND p.active
		  AND s.start_time::date BETWEEN $1::date AND $2::date
		ORDER BY p.last_name, p.first_name
	`
	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query, from, to); err != nil {
		return nil, classify(err, "patient")
	}
	return patients, nil
}

func (r *slotRepository) MarkNoShowsForDate(ctx context.Context, date time.Time) (int64, error) {
	query := `
		UPDATE slots
		SET status = 'no_show', updated_at = $1
		WHERE status = 'booked'
		  AND start_time::date = $2::date
	`
	result, err := r.db.ExecContext(ctx, query, time.Now(), date)
	if err != nil {
		return 0, classify(err, "slot")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, classify(err, "slot")
	}
	return rows, nil
}

func joinSlotColumns(alias string) string {
	return fmt.Sprintf(
		"%[1]s.id, %[1]s.start_time, %[1]s.status, %[1]s.motive, %[1]s.notes, %[1]s.patient_dni, %[1]s.doctor_license, %[1]s.created_at, %[1]s.updated_at",
		alias,
	)
}
