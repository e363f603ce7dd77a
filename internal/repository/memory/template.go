package memory

import (
	"context"
	"time"

	"github.com/medagenda/clinic-api/internal/model"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
)

func (r *templateRepository) Create(ctx context.Context, tpl *model.ScheduleTemplate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := templateKey{license: tpl.DoctorLicense, month: tpl.Month}
	if _, ok := r.store.templates[key]; ok {
		return apperrors.NewConflict("schedule template already exists", nil)
	}

	tpl.CreatedAt = time.Now()
	tpl.UpdatedAt = time.Now()
	r.store.templates[key] = cloneTemplate(tpl)
	return nil
}

func (r *templateRepository) Update(ctx context.Context, tpl *model.ScheduleTemplate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := templateKey{license: tpl.DoctorLicense, month: tpl.Month}
	existing, ok := r.store.templates[key]
	if !ok {
		return apperrors.NewNotFound("schedule template", nil)
	}

	tpl.CreatedAt = existing.CreatedAt
	tpl.UpdatedAt = time.Now()
	r.store.templates[key] = cloneTemplate(tpl)
	return nil
}

func (r *templateRepository) GetByDoctorAndMonth(ctx context.Context, license int64, month int) (*model.ScheduleTemplate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	tpl, ok := r.store.templates[templateKey{license: license, month: month}]
	if !ok {
		return nil, apperrors.NewNotFound("schedule template", nil)
	}
	return cloneTemplate(tpl), nil
}
