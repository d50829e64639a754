package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func TestNextSendDate_Daily(t *testing.T) {
	last := date(2025, time.March, 10, 14, 30)

	next, err := NextSendDate(last, FrequencyDaily, nil)
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.March, 11, 14, 30), next)
}

func TestNextSendDate_DailyPinsPatternTime(t *testing.T) {
	last := date(2025, time.March, 10, 14, 30)

	next, err := NextSendDate(last, FrequencyDaily, &RecurrencePattern{Time: "09:00"})
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.March, 11, 9, 0), next)
}

func TestNextSendDate_Weekly(t *testing.T) {
	pattern := &RecurrencePattern{DaysOfWeek: []int{1, 3, 5}} // Mon, Wed, Fri

	testCases := []struct {
		name string
		last time.Time
		want time.Time
	}{
		{
			name: "monday advances to wednesday same week",
			last: date(2025, time.March, 10, 8, 0), // Monday
			want: date(2025, time.March, 12, 8, 0), // Wednesday
		},
		{
			name: "wednesday advances to friday same week",
			last: date(2025, time.March, 12, 8, 0),
			want: date(2025, time.March, 14, 8, 0),
		},
		{
			name: "saturday wraps to monday next week",
			last: date(2025, time.March, 15, 8, 0), // Saturday
			want: date(2025, time.March, 17, 8, 0), // Monday
		},
		{
			name: "friday wraps to monday next week",
			last: date(2025, time.March, 14, 8, 0),
			want: date(2025, time.March, 17, 8, 0),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next, err := NextSendDate(tc.last, FrequencyWeekly, pattern)
			require.NoError(t, err)
			assert.Equal(t, tc.want, next)
		})
	}
}

func TestNextSendDate_WeeklyUnsortedDays(t *testing.T) {
	last := date(2025, time.March, 10, 8, 0) // Monday

	next, err := NextSendDate(last, FrequencyWeekly, &RecurrencePattern{DaysOfWeek: []int{5, 1, 3}})
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.March, 12, 8, 0), next)
}

func TestNextSendDate_WeeklyWithoutDays(t *testing.T) {
	last := date(2025, time.March, 10, 8, 0)

	next, err := NextSendDate(last, FrequencyWeekly, nil)
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.March, 17, 8, 0), next)
}

func TestNextSendDate_MonthlyClampsDayOfMonth(t *testing.T) {
	day := 31
	pattern := &RecurrencePattern{DayOfMonth: &day}

	testCases := []struct {
		name string
		last time.Time
		want time.Time
	}{
		{
			name: "january into february clamps to 28",
			last: date(2025, time.January, 31, 10, 0),
			want: date(2025, time.February, 28, 10, 0),
		},
		{
			name: "january into leap february clamps to 29",
			last: date(2024, time.January, 31, 10, 0),
			want: date(2024, time.February, 29, 10, 0),
		},
		{
			name: "march into april clamps to 30",
			last: date(2025, time.March, 31, 10, 0),
			want: date(2025, time.April, 30, 10, 0),
		},
		{
			name: "april into may keeps 31",
			last: date(2025, time.April, 30, 10, 0),
			want: date(2025, time.May, 31, 10, 0),
		},
		{
			name: "december wraps into january",
			last: date(2025, time.December, 31, 10, 0),
			want: date(2026, time.January, 31, 10, 0),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next, err := NextSendDate(tc.last, FrequencyMonthly, pattern)
			require.NoError(t, err)
			assert.Equal(t, tc.want, next)
		})
	}
}

func TestNextSendDate_MonthlyWithoutDayNormalizes(t *testing.T) {
	// Without a configured day-of-month the calculation keeps AddDate
	// normalization: Jan 31 + 1 month lands in early March.
	last := date(2025, time.January, 31, 10, 0)

	next, err := NextSendDate(last, FrequencyMonthly, nil)
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.March, 3, 10, 0), next)
}

func TestNextSendDate_MonthlyPinsPatternTime(t *testing.T) {
	day := 15
	last := date(2025, time.June, 15, 18, 45)

	next, err := NextSendDate(last, FrequencyMonthly, &RecurrencePattern{DayOfMonth: &day, Time: "08:30"})
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.July, 15, 8, 30), next)
}

func TestNextSendDate_UnknownFrequency(t *testing.T) {
	testCases := []time.Time{
		date(2025, time.January, 1, 0, 0),
		date(2024, time.February, 29, 12, 0),
		time.Now().UTC(),
	}

	for _, last := range testCases {
		_, err := NextSendDate(last, Frequency("fortnightly"), nil)
		assert.ErrorIs(t, err, ErrUnknownFrequency)
	}
}

func TestNextSendDate_IgnoresMalformedPatternTime(t *testing.T) {
	last := date(2025, time.March, 10, 14, 30)

	next, err := NextSendDate(last, FrequencyDaily, &RecurrencePattern{Time: "morning"})
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.March, 11, 14, 30), next)
}
