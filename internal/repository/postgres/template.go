package postgres

import (
	"context"
	"time"

	"github.com/medagenda/clinic-api/internal/model"
)

func (r *templateRepository) Create(ctx context.Context, tpl *model.ScheduleTemplate) error {
	query := `
		INSERT INTO schedule_templates (
			doctor_license, month, weekdays, start_time, end_time,
			duration_minutes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	tpl.WeekdaysRaw = tpl.EncodeWeekdays()
	tpl.CreatedAt = time.Now()
	tpl.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		tpl.DoctorLicense,
		tpl.Month,
		tpl.WeekdaysRaw,
		tpl.StartTime,
		tpl.EndTime,
		tpl.DurationMinutes,
		tpl.CreatedAt,
		tpl.UpdatedAt,
	)
	if err != nil {
		return classify(err, "schedule template")
	}
	return nil
}

func (r *templateRepository) Update(ctx context.Context, tpl *model.ScheduleTemplate) error {
	query := `
		UPDATE schedule_templates
		SET weekdays = $1, start_time = $2, end_time = $3,
			duration_minutes = $4, updated_at = $5
		WHERE doctor_license = $6 AND month = $7
	`
	tpl.WeekdaysRaw = tpl.EncodeWeekdays()
	tpl.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		tpl.WeekdaysRaw,
		tpl.StartTime,
		tpl.EndTime,
		tpl.DurationMinutes,
		tpl.UpdatedAt,
		tpl.DoctorLicense,
		tpl.Month,
	)
	if err != nil {
		return classify(err, "schedule template")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return classify(err, "schedule template")
	}
	if rows == 0 {
		return classify(errNoRows(), "schedule template")
	}
	return nil
}

func (r *templateRepository) GetByDoctorAndMonth(ctx context.Context, license int64, month int) (*model.ScheduleTemplate, error) {
	query := `
		SELECT doctor_license, month, weekdays, start_time, end_time,
			   duration_minutes, created_at, updated_at
		FROM schedule_templates
		WHERE doctor_license = $1 AND month = $2
	`
	var tpl model.ScheduleTemplate
	if err := r.db.GetContext(ctx, &tpl, query, license, month); err != nil {
		return nil, classify(err, "schedule template")
	}
	if err := tpl.DecodeWeekdays(); err != nil {
		return nil, err
	}
	return &tpl, nil
}
