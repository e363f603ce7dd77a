package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdayOf(t *testing.T) {
	// 2025-03-03 is a Monday.
	monday := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	for i, want := range []Weekday{
		Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday,
	} {
		assert.Equal(t, want, WeekdayOf(monday.AddDate(0, 0, i)))
	}
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday("  LUNES ")
	require.NoError(t, err)
	assert.Equal(t, Monday, d)

	d, err = ParseWeekday("miércoles")
	require.NoError(t, err)
	assert.Equal(t, Wednesday, d)

	_, err = ParseWeekday("monday")
	assert.Error(t, err)

	// Unaccented spellings are not canonical.
	_, err = ParseWeekday("miercoles")
	assert.Error(t, err)
}

func TestParseWeekdays(t *testing.T) {
	days, err := ParseWeekdays([]string{"lunes", "viernes", "lunes"})
	require.NoError(t, err)
	assert.Equal(t, []Weekday{Monday, Friday}, days)

	_, err = ParseWeekdays(nil)
	assert.Error(t, err)

	_, err = ParseWeekdays([]string{"lunes", "feriado"})
	assert.Error(t, err)
}
