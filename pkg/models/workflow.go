// Package models defines the core domain models for CRM automation.
package models

import "time"

// TriggerType identifies the business event a workflow reacts to.
type TriggerType string

const (
	TriggerLeadCreated       TriggerType = "lead_created"
	TriggerLeadStatusChanged TriggerType = "lead_status_changed"
	TriggerLeadAssigned      TriggerType = "lead_assigned"
	TriggerCampaignCompleted TriggerType = "campaign_completed"
	TriggerEmailOpened       TriggerType = "email_opened"
	TriggerTimeBased         TriggerType = "time_based"
	TriggerScoreThreshold    TriggerType = "score_threshold"
	TriggerTagAdded          TriggerType = "tag_added"
	TriggerManual            TriggerType = "manual"
)

// WorkflowAction is one step of a workflow: an action type plus its
// type-specific configuration. The type is resolved against the action
// registry at execution time.
type WorkflowAction struct {
	Type   string         `json:"type"   validate:"required"`
	Config map[string]any `json:"config"`
}

// Workflow is a persisted automation rule: a trigger type, optional equality
// conditions over the event payload, and an ordered action list.
//
// The execution engine treats a workflow as read-only except for the
// Executions counter and LastRunAt, which are updated after successful runs.
type Workflow struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"         validate:"required,min=3"`
	TriggerType TriggerType      `json:"trigger_type" validate:"required"`
	TriggerData map[string]any   `json:"trigger_data"` // equality conditions against event data
	Actions     []WorkflowAction `json:"actions"`
	IsActive    bool             `json:"is_active"`
	Executions  int64            `json:"executions"`
	LastRunAt   *time.Time       `json:"last_run_at,omitempty"`
	NextRunAt   *time.Time       `json:"next_run_at,omitempty"` // time_based workflows only
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   *time.Time       `json:"deleted_at,omitempty"`
}

// CronExpression returns the cron expression configured for a time_based
// workflow, or "" when none is set.
func (w *Workflow) CronExpression() string {
	if w.TriggerData == nil {
		return ""
	}

	expr, _ := w.TriggerData["cron"].(string)

	return expr
}
