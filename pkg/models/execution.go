package models

import "time"

// ExecutionStatus is the lifecycle state of one workflow run. It is
// append-only: a RUNNING execution moves to exactly one terminal state and is
// never reversed.
type ExecutionStatus string

const (
	ExecutionStatusRunning ExecutionStatus = "running"
	ExecutionStatusSuccess ExecutionStatus = "success"
	ExecutionStatusFailed  ExecutionStatus = "failed"
)

// WorkflowExecution is the audit record of one attempt to run a workflow
// against one event. It is created in RUNNING state before any side effect so
// every attempted run leaves a trail, and is terminally updated exactly once.
// Executions are never deleted by the engine; retention is external.
type WorkflowExecution struct {
	ID          string          `json:"id"`
	WorkflowID  string          `json:"workflow_id"`
	Status      ExecutionStatus `json:"status"`
	LeadID      *string         `json:"lead_id,omitempty"`
	Metadata    map[string]any  `json:"metadata,omitempty"` // the triggering event's data
	Error       *string         `json:"error,omitempty"`
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}
