package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/medagenda/clinic-api/internal/model"
	"github.com/medagenda/clinic-api/internal/repository/memory"
	pkgauth "github.com/medagenda/clinic-api/pkg/auth"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
	"github.com/medagenda/clinic-api/pkg/logger"
)

func newTestService(t *testing.T) (*Service, *pkgauth.JWTService) {
	t.Helper()

	store := memory.NewStore()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	require.NoError(t, store.Doctors().Create(context.Background(), &model.Doctor{
		License:      100,
		FirstName:    "María",
		LastName:     "Pérez",
		Email:        "mperez@clinic.example",
		SpecialtyID:  1,
		PasswordHash: string(hash),
	}))

	jwt := pkgauth.NewJWTService("test-secret", 1)
	return NewService(store.Doctors(), jwt, logger.NewLogger(nil)), jwt
}

func TestLogin(t *testing.T) {
	svc, jwt := newTestService(t)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "mperez@clinic.example",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.DoctorLicense)

	claims, err := jwt.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(100), claims.DoctorLicense)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "mperez@clinic.example",
		Password: "wrong-password",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.Code(err))
}

func TestLoginUnknownAccount(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@clinic.example",
		Password: "whatever123",
	})
	require.Error(t, err)
	// Indistinguishable from a bad password.
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.Code(err))
}
