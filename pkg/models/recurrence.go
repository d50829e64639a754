package models

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Frequency is how often a recurring campaign sends.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// ErrUnknownFrequency is returned when a recurrence cannot be computed.
// Callers must treat it as a scheduling failure, never as a silent default.
var ErrUnknownFrequency = errors.New("unknown recurrence frequency")

// RecurrencePattern refines a frequency: an optional time of day ("HH:MM"),
// days of the week (0=Sunday..6=Saturday) for weekly sends, and a day of the
// month for monthly sends.
type RecurrencePattern struct {
	Time       string `json:"time,omitempty"`
	DaysOfWeek []int  `json:"days_of_week,omitempty"`
	DayOfMonth *int   `json:"day_of_month,omitempty"`
}

// NextSendDate computes the next send instant for a recurring schedule,
// starting from the last send.
//
// Daily advances one day. Weekly picks the smallest configured weekday
// strictly after lastSentAt's weekday, wrapping into the next week when none
// remains; without configured weekdays it advances seven days. Monthly
// advances one calendar month, clamping a configured day-of-month to the last
// day of the target month (Jan 31 -> Feb 28/29); without a configured day it
// keeps date normalization semantics, which can shift across months with
// fewer days. The date advances first, then the pattern time is pinned.
func NextSendDate(lastSentAt time.Time, frequency Frequency, pattern *RecurrencePattern) (time.Time, error) {
	var next time.Time

	switch frequency {
	case FrequencyDaily:
		next = lastSentAt.AddDate(0, 0, 1)
	case FrequencyWeekly:
		next = nextWeekly(lastSentAt, pattern)
	case FrequencyMonthly:
		next = nextMonthly(lastSentAt, pattern)
	default:
		return time.Time{}, ErrUnknownFrequency
	}

	if pattern != nil {
		next = pinTime(next, pattern.Time)
	}

	return next, nil
}

func nextWeekly(lastSentAt time.Time, pattern *RecurrencePattern) time.Time {
	if pattern == nil || len(pattern.DaysOfWeek) == 0 {
		return lastSentAt.AddDate(0, 0, 7)
	}

	days := make([]int, len(pattern.DaysOfWeek))
	copy(days, pattern.DaysOfWeek)
	sort.Ints(days)

	current := int(lastSentAt.Weekday())

	for _, day := range days {
		if day > current {
			return lastSentAt.AddDate(0, 0, day-current)
		}
	}

	// No remaining day this week, wrap to the first configured day next week.
	return lastSentAt.AddDate(0, 0, 7-current+days[0])
}

func nextMonthly(lastSentAt time.Time, pattern *RecurrencePattern) time.Time {
	if pattern == nil || pattern.DayOfMonth == nil {
		return lastSentAt.AddDate(0, 1, 0)
	}

	year, month, _ := lastSentAt.Date()

	lastDay := daysInMonth(year, month+1)

	day := *pattern.DayOfMonth
	if day > lastDay {
		day = lastDay
	}

	hour, minute, sec := lastSentAt.Clock()

	return time.Date(year, month+1, day, hour, minute, sec, lastSentAt.Nanosecond(), lastSentAt.Location())
}

// daysInMonth returns the number of days in the given month; month may be
// outside 1..12 and is normalized the same way time.Date normalizes it.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// pinTime overwrites the hour and minute of t with an "HH:MM" pattern time.
// Malformed values leave the clock unchanged.
func pinTime(t time.Time, at string) time.Time {
	if at == "" {
		return t
	}

	parts := strings.SplitN(at, ":", 2)
	if len(parts) != 2 {
		return t
	}

	hour, err1 := strconv.Atoi(parts[0])
	minute, err2 := strconv.Atoi(parts[1])

	if err1 != nil || err2 != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return t
	}

	year, month, day := t.Date()

	return time.Date(year, month, day, hour, minute, 0, 0, t.Location())
}
