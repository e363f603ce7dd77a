package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medagenda/clinic-api/internal/model"
	"github.com/medagenda/clinic-api/internal/repository/memory"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
	"github.com/medagenda/clinic-api/pkg/logger"
	"github.com/medagenda/clinic-api/pkg/metrics"
)

// Registered once: prometheus panics on duplicate collectors.
var testMetrics = metrics.NewMetrics("medagenda_test", "appointment")

type fakeNotifier struct {
	confirmed []int64
	cancelled []int64
	err       error
}

func (n *fakeNotifier) BookingConfirmed(_ context.Context, _ *model.Slot, p *model.Patient) error {
	n.confirmed = append(n.confirmed, p.DNI)
	return n.err
}

func (n *fakeNotifier) BookingCancelled(_ context.Context, _ *model.Slot, p *model.Patient) error {
	n.cancelled = append(n.cancelled, p.DNI)
	return n.err
}

type fixture struct {
	svc      *Service
	store    *memory.Store
	notifier *fakeNotifier
	now      time.Time
}

func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()

	store := memory.NewStore()
	notifier := &fakeNotifier{}

	f := &fixture{
		store:    store,
		notifier: notifier,
		now:      time.Date(2025, time.February, 15, 12, 0, 0, 0, time.Local),
	}

	f.svc = NewService(
		store.Templates(),
		store.Slots(),
		store.Doctors(),
		store.Patients(),
		notifier,
		logger.NewLogger(nil),
		testMetrics,
		cfg,
	).WithClock(func() time.Time { return f.now })

	ctx := context.Background()
	require.NoError(t, store.Doctors().Create(ctx, &model.Doctor{
		License:     100,
		FirstName:   "María",
		LastName:    "Pérez",
		Email:       "mperez@clinic.example",
		SpecialtyID: 1,
	}))
	require.NoError(t, store.Patients().Create(ctx, &model.Patient{
		DNI:       30123456,
		FirstName: "Ana",
		LastName:  "García",
		Email:     "ana@example.com",
	}))

	return f
}

func (f *fixture) createMarchTemplate(t *testing.T) {
	t.Helper()
	_, err := f.svc.CreateTemplate(context.Background(), &model.CreateTemplateRequest{
		DoctorLicense:   100,
		Month:           3,
		Weekdays:        []string{"lunes", "miércoles"},
		StartTime:       "09:00",
		EndTime:         "10:00",
		DurationMinutes: 30,
	})
	require.NoError(t, err)
}

func TestGenerateMonth(t *testing.T) {
	f := newFixture(t, Config{AllowCurrentMonth: true})
	f.createMarchTemplate(t)

	resp, err := f.svc.GenerateMonth(context.Background(), &model.GenerateMonthRequest{
		DoctorLicense: 100, Month: 3, Year: 2025,
	})
	require.NoError(t, err)
	assert.Equal(t, 18, resp.Count)

	for i := 1; i < len(resp.Slots); i++ {
		assert.True(t, resp.Slots[i-1].StartTime.Before(resp.Slots[i].StartTime))
	}

	listed, err := f.svc.ListSlots(context.Background(), &model.SlotFilters{
		DoctorLicense: 100, Month: 3, Year: 2025,
	})
	require.NoError(t, err)
	assert.Len(t, listed, 18)
}

func TestGenerateMonthTwiceConflicts(t *testing.T) {
	f := newFixture(t, Config{AllowCurrentMonth: true})
	f.createMarchTemplate(t)

	_, err := f.svc.GenerateMonth(context.Background(), &model.GenerateMonthRequest{
		DoctorLicense: 100, Month: 3, Year: 2025,
	})
	require.NoError(t, err)

	_, err = f.svc.GenerateMonth(context.Background(), &model.GenerateMonthRequest{
		DoctorLicense: 100, Month: 3, Year: 2025,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestGenerateMonthWithoutTemplate(t *testing.T) {
	f := newFixture(t, Config{AllowCurrentMonth: true})

	_, err := f.svc.GenerateMonth(context.Background(), &model.GenerateMonthRequest{
		DoctorLicense: 100, Month: 3, Year: 2025,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGenerateMonthRejectsPast(t *testing.T) {
	f := newFixture(t, Config{AllowCurrentMonth: true})
	f.createMarchTemplate(t)

	_, err := f.svc.GenerateMonth(context.Background(), &model.GenerateMonthRequest{
		DoctorLicense: 100, Month: 3, Year: 2024,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestGenerateCurrentMonthPolicy(t *testing.T) {
	f := newFixture(t, Config{AllowCurrentMonth: false})
	f.createMarchTemplate(t)
	f.now = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.Local)

	_, err := f.svc.GenerateMonth(context.Background(), &model.GenerateMonthRequest{
		DoctorLicense: 100, Month: 3, Year: 2025,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestGenerateCurrentMonthSkipsElapsedSlots(t *testing.T) {
	f := newFixture(t, Config{AllowCurrentMonth: true})
	f.createMarchTemplate(t)
	// Mid-month, mid-day: March 3, 5 and the morning of the 10th have
	// already passed.
	f.now = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.Local)

	resp, err := f.svc.GenerateMonth(context.Background(), &model.GenerateMonthRequest{
		DoctorLicense: 100, Month: 3, Year: 2025,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, resp.Count)
	for _, s := range resp.Slots {
		assert.False(t, s.StartTime.Before(f.now))
	}
}

func generateAndPickSlot(t *testing.T, f *fixture) *model.Slot {
	t.Helper()
	f.createMarchTemplate(t)
	resp, err := f.svc.GenerateMonth(context.Background(), &model.GenerateMonthRequest{
		DoctorLicense: 100, Month: 3, Year: 2025,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	return resp.Slots[0]
}

func TestBookSlot(t *testing.T) {
	f := newFixture(t, Config{AllowCurrentMonth: true})
	target := generateAndPickSlot(t, f)

	booked, err := f.svc.Book(context.Background(), target.ID, &model.BookSlotRequest{
		PatientDNI: 30123456,
		Motive:     "checkup",
	})
	require.NoError(t, err)
	assert.Equal(t, model.SlotStatusBooked, booked.Status)

	stored, err := f.svc.GetSlot(context.Background(), target.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SlotStatusBooked, stored.Status)
	require.NotNil(t, stored.PatientDNI)
	assert.Equal(t, int64(30123456), *stored.PatientDNI)

	assert.Equal(t, []int64{30123456}, f.notifier.confirmed)
}

func TestBookSlotTwiceConflicts(t *testing.T) {
	f := newFixture(t, Config{AllowCurrentMonth: true})
	target := generateAndPickSlot(t, f)

	_, err := f.svc.Book(context.Background(), target.ID, &model.BookSlotRequest{
		PatientDNI: 30123456, Motive: "checkup",
	})
	require.NoError(t, err)

	_, err = f.svc.Book(context.Background(), target.ID, &model.BookSlotRequest{
		PatientDNI: 30123456, Motive: "again",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestBookSlotUnknownPatient(t *testing.T) {
	f := newFixture(t, Config{AllowCurrentMonth: true})
	target := generateAndPickSlot(t, f)

	_, err := f.svc.Book(context.Background(), target.ID, &model.BookSlotRequest{
		PatientDNI: 40999999, Motive: "checkup",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Empty(t, f.notifier.confirmed)
}

func TestBookSurvivesNotifierFailure(t *testing.T) {
	f := newFixture(t, Config{AllowCurrentMonth: true})
	f.notifier.err = errors.New("smtp down")
	target := generateAndPickSlot(t, f)

	booked, err := f.svc.Book(context.Background(), target.ID, &model.BookSlotRequest{
		PatientDNI: 30123456, Motive: "checkup",
	})
	require.NoError(t, err)
	assert.Equal(t, model.SlotStatusBooked, booked.Status)
}

func TestCancelFreesSlot(t *testing.T) {
	f := newFixture(t, Config{AllowCurrentMonth: true})
	target := generateAndPickSlot(t, f)

	_, err := f.svc.Book(context.Background(), target.ID, &model.BookSlotRequest{
		PatientDNI: 30123456, Motive: "checkup",
	})
	require.NoError(t, err)

	note := "patient called"
	freed, err := f.svc.Cancel(context.Background(), target.ID, &model.CancelSlotRequest{Notes: &note})
	require.NoError(t, err)
	assert.Equal(t, model.SlotStatusAvailable, freed.Status)
	assert.Nil(t, freed.PatientDNI)
	assert.Equal(t, []int64{30123456}, f.notifier.cancelled)

	// Same record, bookable again.
	rebooked, err := f.svc.Book(context.Background(), target.ID, &model.BookSlotRequest{
		PatientDNI: 30123456, Motive: "new visit",
	})
	require.NoError(t, err)
	assert.Equal(t, target.ID, rebooked.ID)
}

func TestMarkAttendedSameDay(t *testing.T) {
	f := newFixture(t, Config{AllowCurrentMonth: true})
	target := generateAndPickSlot(t, f)

	_, err := f.svc.Book(context.Background(), target.ID, &model.BookSlotRequest{
		PatientDNI: 30123456, Motive: "checkup",
	})
	require.NoError(t, err)

	// Before the slot's day: rejected.
	_, err = f.svc.MarkAttended(context.Background(), target.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	// On the day, past the start time: accepted.
	f.now = target.StartTime.Add(10 * time.Minute)
	attended, err := f.svc.MarkAttended(context.Background(), target.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SlotStatusAttended, attended.Status)
}

func TestMarkNoShowAfterDate(t *testing.T) {
	f := newFixture(t, Config{AllowCurrentMonth: true})
	target := generateAndPickSlot(t, f)

	_, err := f.svc.Book(context.Background(), target.ID, &model.BookSlotRequest{
		PatientDNI: 30123456, Motive: "checkup",
	})
	require.NoError(t, err)

	f.now = target.StartTime.AddDate(0, 0, 1)
	marked, err := f.svc.MarkNoShow(context.Background(), target.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SlotStatusNoShow, marked.Status)
	require.NotNil(t, marked.PatientDNI)
}

func TestListSlotsRangeCap(t *testing.T) {
	f := newFixture(t, Config{AllowCurrentMonth: true})

	from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 2, 0)
	_, err := f.svc.ListSlots(context.Background(), &model.SlotFilters{From: &from, To: &to})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	to = from.AddDate(0, 0, 30)
	_, err = f.svc.ListSlots(context.Background(), &model.SlotFilters{From: &from, To: &to})
	assert.NoError(t, err)
}

func TestSweepNoShows(t *testing.T) {
	f := newFixture(t, Config{AllowCurrentMonth: true})
	ctx := context.Background()

	dni := int64(30123456)
	motive := "checkup"
	yesterday := f.now.AddDate(0, 0, -1)
	require.NoError(t, f.store.Slots().Create(ctx, &model.Slot{
		StartTime:     yesterday,
		Status:        model.SlotStatusBooked,
		DoctorLicense: 100,
		PatientDNI:    &dni,
		Motive:        &motive,
	}))

	// Today cannot be swept yet.
	_, err := f.svc.SweepNoShows(ctx, f.now)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	count, err := f.svc.SweepNoShows(ctx, yesterday)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Nothing left to mark on a second pass.
	count, err = f.svc.SweepNoShows(ctx, yesterday)
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.Equal(t, 2.0,
		testutil.ToFloat64(testMetrics.DatabaseOperations.WithLabelValues("mark_no_shows", "success")))
}

func TestUpdateTemplateFrozenAfterGeneration(t *testing.T) {
	f := newFixture(t, Config{AllowCurrentMonth: true})
	f.createMarchTemplate(t)

	duration := 20
	_, err := f.svc.UpdateTemplate(context.Background(), 100, 3, &model.UpdateTemplateRequest{
		DurationMinutes: &duration,
	})
	require.NoError(t, err)

	_, err = f.svc.GenerateMonth(context.Background(), &model.GenerateMonthRequest{
		DoctorLicense: 100, Month: 3, Year: 2025,
	})
	require.NoError(t, err)

	duration = 15
	_, err = f.svc.UpdateTemplate(context.Background(), 100, 3, &model.UpdateTemplateRequest{
		DurationMinutes: &duration,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}
