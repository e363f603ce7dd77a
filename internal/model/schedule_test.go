package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTemplate() *ScheduleTemplate {
	return &ScheduleTemplate{
		DoctorLicense:   100,
		Month:           6,
		Weekdays:        []Weekday{Monday, Friday},
		StartTime:       "08:00",
		EndTime:         "12:00",
		DurationMinutes: 20,
	}
}

func TestTemplateValidate(t *testing.T) {
	require.NoError(t, validTemplate().Validate())

	cases := []struct {
		name   string
		mutate func(*ScheduleTemplate)
	}{
		{"no doctor", func(tpl *ScheduleTemplate) { tpl.DoctorLicense = 0 }},
		{"month zero", func(tpl *ScheduleTemplate) { tpl.Month = 0 }},
		{"month thirteen", func(tpl *ScheduleTemplate) { tpl.Month = 13 }},
		{"no weekdays", func(tpl *ScheduleTemplate) { tpl.Weekdays = nil }},
		{"bad start", func(tpl *ScheduleTemplate) { tpl.StartTime = "8am" }},
		{"bad end", func(tpl *ScheduleTemplate) { tpl.EndTime = "26:00" }},
		{"end before start", func(tpl *ScheduleTemplate) { tpl.EndTime = "07:00" }},
		{"end equals start", func(tpl *ScheduleTemplate) { tpl.EndTime = "08:00" }},
		{"duration zero", func(tpl *ScheduleTemplate) { tpl.DurationMinutes = 0 }},
		{"duration too long", func(tpl *ScheduleTemplate) { tpl.DurationMinutes = 481 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tpl := validTemplate()
			tc.mutate(tpl)
			assert.Error(t, tpl.Validate())
		})
	}
}

func TestTemplateWeekdayRoundTrip(t *testing.T) {
	tpl := validTemplate()
	tpl.WeekdaysRaw = tpl.EncodeWeekdays()
	assert.Equal(t, "lunes,viernes", tpl.WeekdaysRaw)

	tpl.Weekdays = nil
	require.NoError(t, tpl.DecodeWeekdays())
	assert.Equal(t, []Weekday{Monday, Friday}, tpl.Weekdays)
}

func TestTemplateHasWeekday(t *testing.T) {
	tpl := validTemplate()
	assert.True(t, tpl.HasWeekday(Monday))
	assert.False(t, tpl.HasWeekday(Sunday))
}
