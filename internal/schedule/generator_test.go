package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medagenda/clinic-api/internal/model"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
)

func templateFixture() *model.ScheduleTemplate {
	return &model.ScheduleTemplate{
		DoctorLicense:   12345,
		Month:           3,
		Weekdays:        []model.Weekday{model.Monday, model.Wednesday},
		StartTime:       "09:00",
		EndTime:         "10:00",
		DurationMinutes: 30,
	}
}

func TestExpandMarch(t *testing.T) {
	slots, err := Expand(templateFixture(), time.March, 2025)
	require.NoError(t, err)

	// March 2025 has five Mondays and four Wednesdays, two slots each.
	assert.Len(t, slots, 18)

	first := slots[0]
	assert.Equal(t, time.Date(2025, time.March, 3, 9, 0, 0, 0, time.Local), first.StartTime)
	assert.Equal(t, model.SlotStatusAvailable, first.Status)
	assert.Equal(t, int64(12345), first.DoctorLicense)
	assert.Nil(t, first.PatientDNI)

	assert.Equal(t, time.Date(2025, time.March, 3, 9, 30, 0, 0, time.Local), slots[1].StartTime)
	assert.Equal(t, time.Date(2025, time.March, 5, 9, 0, 0, 0, time.Local), slots[2].StartTime)

	for _, s := range slots {
		day := model.WeekdayOf(s.StartTime)
		assert.Contains(t, []model.Weekday{model.Monday, model.Wednesday}, day)
	}
}

func TestExpandChronologicalOrder(t *testing.T) {
	slots, err := Expand(templateFixture(), time.March, 2025)
	require.NoError(t, err)

	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].StartTime.Before(slots[i].StartTime))
	}
}

func TestExpandDiscardsPartialSlot(t *testing.T) {
	tpl := templateFixture()
	tpl.EndTime = "10:15"

	slots, err := Expand(tpl, time.March, 2025)
	require.NoError(t, err)

	// 09:00-10:15 with 30-minute slots yields 09:00 and 09:30 only;
	// a 10:00 slot would spill past the window.
	for _, s := range slots {
		hm := s.StartTime.Format(model.TimeOfDayLayout)
		assert.Contains(t, []string{"09:00", "09:30"}, hm)
	}
	assert.Len(t, slots, 18)
}

func TestExpandLeapFebruary(t *testing.T) {
	tpl := templateFixture()
	tpl.Month = 2
	tpl.Weekdays = []model.Weekday{model.Thursday}

	slots, err := Expand(tpl, time.February, 2024)
	require.NoError(t, err)

	// February 29 2024 is a Thursday and must be covered.
	var covered bool
	for _, s := range slots {
		if s.StartTime.Day() == 29 {
			covered = true
		}
	}
	assert.True(t, covered)

	// Non-leap 2025: only four Thursdays, eight slots.
	tpl25 := templateFixture()
	tpl25.Month = 2
	tpl25.Weekdays = []model.Weekday{model.Thursday}
	slots25, err := Expand(tpl25, time.February, 2025)
	require.NoError(t, err)
	assert.Len(t, slots25, 8)
}

func TestExpandWindowTooSmall(t *testing.T) {
	tpl := templateFixture()
	tpl.EndTime = "09:20"

	slots, err := Expand(tpl, time.March, 2025)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestExpandMonthMismatch(t *testing.T) {
	_, err := Expand(templateFixture(), time.April, 2025)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestExpandInvalidTemplate(t *testing.T) {
	tpl := templateFixture()
	tpl.DurationMinutes = 0

	_, err := Expand(tpl, time.March, 2025)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	tpl = templateFixture()
	tpl.StartTime = "25:00"
	_, err = Expand(tpl, time.March, 2025)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	tpl = templateFixture()
	tpl.Weekdays = nil
	_, err = Expand(tpl, time.March, 2025)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
