package visit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medagenda/clinic-api/internal/model"
	"github.com/medagenda/clinic-api/internal/repository/memory"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
	"github.com/medagenda/clinic-api/pkg/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, store.Doctors().Create(ctx, &model.Doctor{
		License: 100, FirstName: "María", LastName: "Pérez",
		Email: "mperez@clinic.example", SpecialtyID: 1,
	}))
	require.NoError(t, store.Patients().Create(ctx, &model.Patient{
		DNI: 30123456, FirstName: "Ana", LastName: "García",
	}))

	svc := NewService(store.Visits(), store.Patients(), store.Doctors(), logger.NewLogger(nil))
	svc.Now = func() time.Time {
		return time.Date(2025, time.March, 3, 10, 30, 0, 0, time.Local)
	}
	return svc
}

func TestCreateVisit(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateVisit(ctx, &model.CreateVisitRequest{
		PatientDNI:    30123456,
		DoctorLicense: 100,
		Diagnosis:     "faringitis",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "faringitis", created.Diagnosis)

	record, visits, err := svc.History(ctx, 30123456)
	require.NoError(t, err)
	assert.Equal(t, int64(30123456), record.PatientDNI)
	require.Len(t, visits, 1)
	assert.Equal(t, created.ID, visits[0].ID)

	// A second visit lands on the same record.
	_, err = svc.CreateVisit(ctx, &model.CreateVisitRequest{
		PatientDNI:    30123456,
		DoctorLicense: 100,
		Diagnosis:     "control",
	})
	require.NoError(t, err)

	record2, visits, err := svc.History(ctx, 30123456)
	require.NoError(t, err)
	assert.Equal(t, record.ID, record2.ID)
	assert.Len(t, visits, 2)
}

func TestCreateVisitUnknownReferences(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateVisit(ctx, &model.CreateVisitRequest{
		PatientDNI: 40999999, DoctorLicense: 100, Diagnosis: "x",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	_, err = svc.CreateVisit(ctx, &model.CreateVisitRequest{
		PatientDNI: 30123456, DoctorLicense: 999, Diagnosis: "x",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestPrescribe(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	visit, err := svc.CreateVisit(ctx, &model.CreateVisitRequest{
		PatientDNI: 30123456, DoctorLicense: 100, Diagnosis: "faringitis",
	})
	require.NoError(t, err)

	created, err := svc.Prescribe(ctx, &model.CreatePrescriptionRequest{
		VisitID:     visit.ID.String(),
		Medications: "amoxicilina 500mg",
	})
	require.NoError(t, err)
	assert.Equal(t, visit.ID, created.VisitID)

	listed, err := svc.ListPrescriptions(ctx, visit.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "amoxicilina 500mg", listed[0].Medications)
}

func TestPrescribeBadVisit(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Prescribe(ctx, &model.CreatePrescriptionRequest{
		VisitID: "not-a-uuid", Medications: "x",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Prescribe(ctx, &model.CreatePrescriptionRequest{
		VisitID: uuid.NewString(), Medications: "x",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
