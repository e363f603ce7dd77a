package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func availableSlot() *Slot {
	return &Slot{
		StartTime:     time.Date(2025, time.March, 3, 9, 0, 0, 0, time.Local),
		Status:        SlotStatusAvailable,
		DoctorLicense: 100,
	}
}

func TestSlotValidateAvailable(t *testing.T) {
	require.NoError(t, availableSlot().Validate())

	s := availableSlot()
	dni := int64(30123456)
	s.PatientDNI = &dni
	assert.Error(t, s.Validate())

	s = availableSlot()
	motive := "checkup"
	s.Motive = &motive
	assert.Error(t, s.Validate())
}

func TestSlotValidateBooked(t *testing.T) {
	s := availableSlot()
	s.Status = SlotStatusBooked
	assert.Error(t, s.Validate(), "booked slot needs a patient")

	dni := int64(30123456)
	s.PatientDNI = &dni
	assert.Error(t, s.Validate(), "booked slot needs a motive")

	motive := "checkup"
	s.Motive = &motive
	require.NoError(t, s.Validate())

	short := int64(999)
	s.PatientDNI = &short
	assert.Error(t, s.Validate(), "DNI must have 7 or 8 digits")
}

func TestSlotValidateBasics(t *testing.T) {
	s := availableSlot()
	s.Status = "pending"
	assert.Error(t, s.Validate())

	s = availableSlot()
	s.StartTime = time.Time{}
	assert.Error(t, s.Validate())

	s = availableSlot()
	s.DoctorLicense = 0
	assert.Error(t, s.Validate())
}

func TestValidateDNI(t *testing.T) {
	assert.NoError(t, ValidateDNI(1_000_000))
	assert.NoError(t, ValidateDNI(99_999_999))
	assert.Error(t, ValidateDNI(999_999))
	assert.Error(t, ValidateDNI(100_000_000))
	assert.Error(t, ValidateDNI(-1))
}

func TestSlotDate(t *testing.T) {
	s := availableSlot()
	d := s.Date()
	assert.Equal(t, time.Date(2025, time.March, 3, 0, 0, 0, 0, time.Local), d)
}
