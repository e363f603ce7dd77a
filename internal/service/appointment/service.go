// Package appointment coordinates schedule templates, month
// generation and the booking lifecycle against storage.
package appointment

import (
	"context"
	"time"

	"github.com/medagenda/clinic-api/internal/model"
	"github.com/medagenda/clinic-api/internal/repository"
	"github.com/medagenda/clinic-api/internal/schedule"
	slotsvc "github.com/medagenda/clinic-api/internal/service/slot"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
	"github.com/medagenda/clinic-api/pkg/logger"
	"github.com/medagenda/clinic-api/pkg/metrics"
)

// Notifier delivers best-effort booking notifications. Implementations
// must never block bookings on delivery.
type Notifier interface {
	BookingConfirmed(ctx context.Context, slot *model.Slot, patient *model.Patient) error
	BookingCancelled(ctx context.Context, slot *model.Slot, patient *model.Patient) error
}

// Config tunes scheduling policy.
type Config struct {
	// AllowCurrentMonth permits generating the month already in
	// progress; slots whose time has passed are skipped. When false
	// only future months can be generated.
	AllowCurrentMonth bool
}

type Service struct {
	templates repository.TemplateRepository
	slots     repository.SlotRepository
	doctors   repository.DoctorRepository
	patients  repository.PatientRepository
	lifecycle *slotsvc.Lifecycle
	notifier  Notifier
	logger    *logger.Logger
	metrics   *metrics.Metrics
	cfg       Config

	// Now is swappable for tests.
	Now func() time.Time
}

func NewService(
	templates repository.TemplateRepository,
	slots repository.SlotRepository,
	doctors repository.DoctorRepository,
	patients repository.PatientRepository,
	notifier Notifier,
	log *logger.Logger,
	m *metrics.Metrics,
	cfg Config,
) *Service {
	return &Service{
		templates: templates,
		slots:     slots,
		doctors:   doctors,
		patients:  patients,
		lifecycle: slotsvc.NewLifecycle(),
		notifier:  notifier,
		logger:    log,
		metrics:   m,
		cfg:       cfg,
		Now:       time.Now,
	}
}

// WithClock pins the service and its lifecycle to a fixed clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.Now = now
	s.lifecycle.Now = now
	return s
}

// CreateTemplate registers a doctor's availability pattern for a month.
func (s *Service) CreateTemplate(ctx context.Context, req *model.CreateTemplateRequest) (*model.ScheduleTemplate, error) {
	if _, err := s.doctors.Get(ctx, req.DoctorLicense); err != nil {
		return nil, err
	}

	weekdays, err := model.ParseWeekdays(req.Weekdays)
	if err != nil {
		return nil, err
	}

	tpl := &model.ScheduleTemplate{
		DoctorLicense:   req.DoctorLicense,
		Month:           req.Month,
		Weekdays:        weekdays,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationMinutes: req.DurationMinutes,
	}
	if err := tpl.Validate(); err != nil {
		return nil, err
	}

	if err := s.templates.Create(ctx, tpl); err != nil {
		return nil, err
	}

	s.logger.Info("schedule template created",
		"doctor_license", tpl.DoctorLicense, "month", tpl.Month)
	return tpl, nil
}

// UpdateTemplate changes an existing pattern. Once the month it would
// next generate has slots, the pattern is frozen.
func (s *Service) UpdateTemplate(ctx context.Context, license int64, month int, req *model.UpdateTemplateRequest) (*model.ScheduleTemplate, error) {
	tpl, err := s.templates.GetByDoctorAndMonth(ctx, license, month)
	if err != nil {
		return nil, err
	}

	year := s.targetYear(month)
	exists, err := s.slots.ExistsForMonth(ctx, license, month, year)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflict("slots were already generated from this template", nil)
	}

	if req.Weekdays != nil {
		weekdays, err := model.ParseWeekdays(req.Weekdays)
		if err != nil {
			return nil, err
		}
		tpl.Weekdays = weekdays
	}
	if req.StartTime != nil {
		tpl.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		tpl.EndTime = *req.EndTime
	}
	if req.DurationMinutes != nil {
		tpl.DurationMinutes = *req.DurationMinutes
	}

	if err := tpl.Validate(); err != nil {
		return nil, err
	}
	if err := s.templates.Update(ctx, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

func (s *Service) GetTemplate(ctx context.Context, license int64, month int) (*model.ScheduleTemplate, error) {
	return s.templates.GetByDoctorAndMonth(ctx, license, month)
}

// targetYear is the year in which the given template month next occurs.
func (s *Service) targetYear(month int) int {
	now := s.Now()
	if month < int(now.Month()) {
		return now.Year() + 1
	}
	return now.Year()
}

// GenerateMonth expands a doctor's template into the concrete slots of
// (month, year) and persists them in chronological order. A month is
// generated at most once per doctor.
func (s *Service) GenerateMonth(ctx context.Context, req *model.GenerateMonthRequest) (*model.GenerateMonthResponse, error) {
	start := time.Now()
	defer func() {
		s.metrics.GenerationLatency.Observe(time.Since(start).Seconds())
	}()

	if req.Month < 1 || req.Month > 12 {
		return nil, apperrors.NewValidation("month must be between 1 and 12")
	}

	now := s.Now()
	firstOfTarget := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.Local)
	firstOfCurrent := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)

	switch {
	case firstOfTarget.Before(firstOfCurrent):
		return nil, apperrors.NewValidationf("cannot generate slots for past month %d/%d", req.Month, req.Year)
	case firstOfTarget.Equal(firstOfCurrent) && !s.cfg.AllowCurrentMonth:
		return nil, apperrors.NewValidation("generating the current month is disabled")
	}

	if _, err := s.doctors.Get(ctx, req.DoctorLicense); err != nil {
		return nil, err
	}

	tpl, err := s.templates.GetByDoctorAndMonth(ctx, req.DoctorLicense, req.Month)
	if err != nil {
		return nil, err
	}

	exists, err := s.slots.ExistsForMonth(ctx, req.DoctorLicense, req.Month, req.Year)
	if err != nil {
		return nil, err
	}
	if exists {
		s.metrics.GenerationConflicts.Inc()
		return nil, apperrors.NewConflict("slots for this month were already generated", nil)
	}

	expanded, err := schedule.Expand(tpl, time.Month(req.Month), req.Year)
	if err != nil {
		return nil, err
	}

	// Mid-month generation must not create slots that are already
	// unbookable.
	persisted := make([]*model.Slot, 0, len(expanded))
	for _, slot := range expanded {
		if slot.StartTime.Before(now) {
			continue
		}
		if err := s.slots.Create(ctx, slot); err != nil {
			return nil, err
		}
		persisted = append(persisted, slot)
	}

	s.metrics.SlotsGenerated.Add(float64(len(persisted)))
	s.logger.Info("month generated",
		"doctor_license", req.DoctorLicense,
		"month", req.Month, "year", req.Year,
		"slots", len(persisted))

	return &model.GenerateMonthResponse{Count: len(persisted), Slots: persisted}, nil
}
