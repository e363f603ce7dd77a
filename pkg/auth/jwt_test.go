package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 1)

	token, err := svc.GenerateToken(12345, "doctor@clinic.example")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), claims.DoctorLicense)
	assert.Equal(t, "doctor@clinic.example", claims.Email)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a", 1).GenerateToken(1, "a@b.c")
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", 1).ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	_, err := NewJWTService("secret", 1).ValidateToken("not.a.token")
	assert.Error(t, err)
}
