package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflow_UpdateNextRunAt(t *testing.T) {
	workflow := &Workflow{
		TriggerType: TriggerTimeBased,
		TriggerData: map[string]any{"cron": "0 9 * * 1"}, // Mondays 09:00
	}

	reference := date(2025, time.March, 12, 10, 0) // Wednesday

	err := workflow.UpdateNextRunAt(reference)
	require.NoError(t, err)
	require.NotNil(t, workflow.NextRunAt)
	assert.Equal(t, date(2025, time.March, 17, 9, 0), *workflow.NextRunAt)
}

func TestWorkflow_UpdateNextRunAt_InvalidExpression(t *testing.T) {
	testCases := []struct {
		name        string
		triggerData map[string]any
	}{
		{name: "missing", triggerData: nil},
		{name: "empty", triggerData: map[string]any{"cron": ""}},
		{name: "malformed", triggerData: map[string]any{"cron": "not a cron"}},
		{name: "wrong field count", triggerData: map[string]any{"cron": "* * *"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			workflow := &Workflow{TriggerType: TriggerTimeBased, TriggerData: tc.triggerData}

			err := workflow.UpdateNextRunAt(time.Now().UTC())
			assert.ErrorIs(t, err, ErrInvalidCron)
		})
	}
}

func TestCampaign_ReachedLimit(t *testing.T) {
	now := date(2025, time.June, 1, 12, 0)
	three := 3
	past := date(2025, time.May, 1, 0, 0)
	future := date(2025, time.July, 1, 0, 0)

	testCases := []struct {
		name     string
		campaign Campaign
		want     bool
	}{
		{name: "no limits", campaign: Campaign{OccurrenceCount: 10}, want: false},
		{name: "under max occurrences", campaign: Campaign{OccurrenceCount: 2, MaxOccurrences: &three}, want: false},
		{name: "at max occurrences", campaign: Campaign{OccurrenceCount: 3, MaxOccurrences: &three}, want: true},
		{name: "end date passed", campaign: Campaign{EndDate: &past}, want: true},
		{name: "end date ahead", campaign: Campaign{EndDate: &future}, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.campaign.ReachedLimit(now))
		})
	}
}
