package models

import (
	"errors"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrInvalidCron is returned when a time_based workflow carries a missing or
// unparsable cron expression.
var ErrInvalidCron = errors.New("invalid cron expression")

// cronParser accepts the standard 5-field format
// (minute hour day month weekday).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// UpdateNextRunAt recomputes NextRunAt for a time_based workflow from its
// cron expression, relative to the given reference time. The precomputed
// value lets the scheduler sweep due workflows with a single indexed query
// instead of holding a timer per workflow.
func (w *Workflow) UpdateNextRunAt(reference time.Time) error {
	expr := w.CronExpression()
	if expr == "" {
		return ErrInvalidCron
	}

	schedule, err := cronParser.Parse(expr)
	if err != nil {
		return ErrInvalidCron
	}

	next := schedule.Next(reference)
	w.NextRunAt = &next

	return nil
}
