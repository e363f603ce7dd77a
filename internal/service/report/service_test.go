package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medagenda/clinic-api/internal/model"
	"github.com/medagenda/clinic-api/internal/repository/memory"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
)

func seedStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, store.Specialties().Create(ctx, &model.Specialty{Name: "Cardiología"}))
	require.NoError(t, store.Specialties().Create(ctx, &model.Specialty{Name: "Pediatría"}))

	require.NoError(t, store.Doctors().Create(ctx, &model.Doctor{
		License: 100, FirstName: "María", LastName: "Pérez",
		Email: "mperez@clinic.example", SpecialtyID: 1,
	}))
	require.NoError(t, store.Patients().Create(ctx, &model.Patient{
		DNI: 30123456, FirstName: "Ana", LastName: "García",
	}))
	require.NoError(t, store.Patients().Create(ctx, &model.Patient{
		DNI: 28555444, FirstName: "Luis", LastName: "Moreno",
	}))

	dniA, dniB := int64(30123456), int64(28555444)
	motive := "checkup"
	base := time.Date(2025, time.March, 3, 9, 0, 0, 0, time.Local)

	slots := []*model.Slot{
		{StartTime: base, Status: model.SlotStatusAttended, DoctorLicense: 100, PatientDNI: &dniA, Motive: &motive},
		{StartTime: base.Add(30 * time.Minute), Status: model.SlotStatusAttended, DoctorLicense: 100, PatientDNI: &dniA, Motive: &motive},
		{StartTime: base.AddDate(0, 0, 2), Status: model.SlotStatusAttended, DoctorLicense: 100, PatientDNI: &dniB, Motive: &motive},
		{StartTime: base.AddDate(0, 0, 7), Status: model.SlotStatusBooked, DoctorLicense: 100, PatientDNI: &dniB, Motive: &motive},
		{StartTime: base.AddDate(0, 0, 7).Add(30 * time.Minute), Status: model.SlotStatusAvailable, DoctorLicense: 100},
		{StartTime: base.AddDate(0, 0, 9), Status: model.SlotStatusNoShow, DoctorLicense: 100, PatientDNI: &dniA, Motive: &motive},
	}
	for _, s := range slots {
		require.NoError(t, store.Slots().Create(ctx, s))
	}
	return store
}

func TestStatusCounts(t *testing.T) {
	store := seedStore(t)
	svc := NewService(store.Slots(), store.Specialties())

	report, err := svc.StatusCounts(context.Background(), 0, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 6, report.Total)
	assert.Equal(t, 3, report.Counts[model.SlotStatusAttended])
	assert.Equal(t, 1, report.Counts[model.SlotStatusBooked])
	assert.Equal(t, 1, report.Counts[model.SlotStatusAvailable])
	assert.Equal(t, 1, report.Counts[model.SlotStatusNoShow])
}

func TestStatusCountsBySpecialty(t *testing.T) {
	store := seedStore(t)
	svc := NewService(store.Slots(), store.Specialties())

	reports, err := svc.StatusCountsBySpecialty(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	byName := map[string]*StatusReport{}
	for _, r := range reports {
		byName[r.SpecialtyName] = r
	}
	assert.Equal(t, 6, byName["Cardiología"].Total)
	assert.Zero(t, byName["Pediatría"].Total)
}

func TestStatusCountsUnknownSpecialty(t *testing.T) {
	store := seedStore(t)
	svc := NewService(store.Slots(), store.Specialties())

	_, err := svc.StatusCounts(context.Background(), 99, nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestPatientsAttended(t *testing.T) {
	store := seedStore(t)
	svc := NewService(store.Slots(), store.Specialties())

	from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.Local)

	patients, err := svc.PatientsAttended(context.Background(), from, to)
	require.NoError(t, err)
	// Ana attended twice but appears once; the no-show does not count.
	require.Len(t, patients, 2)
	assert.Equal(t, "García", patients[0].LastName)
	assert.Equal(t, "Moreno", patients[1].LastName)

	// Narrow window only covers the first day.
	patients, err = svc.PatientsAttended(context.Background(), from, from.AddDate(0, 0, 3))
	require.NoError(t, err)
	require.Len(t, patients, 1)

	_, err = svc.PatientsAttended(context.Background(), to, from)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestReportWindowCap(t *testing.T) {
	store := seedStore(t)
	svc := NewService(store.Slots(), store.Specialties())

	from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local)
	far := from.AddDate(0, 6, 0)

	_, err := svc.PatientsAttended(context.Background(), from, far)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.StatusCounts(context.Background(), 0, &from, &far)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	// A whole calendar month still fits.
	month := from.AddDate(0, 1, 0)
	_, err = svc.PatientsAttended(context.Background(), from, month)
	assert.NoError(t, err)
}
