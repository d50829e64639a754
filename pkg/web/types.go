// Package web provides the HTTP API for triggers, workflows and campaign
// dashboards.
package web

import "github.com/josh9381/estatepulse/pkg/models"

// TriggerRequest is the body of POST /triggers.
type TriggerRequest struct {
	Type   string         `json:"type"    validate:"required"`
	Data   map[string]any `json:"data"`
	LeadID *string        `json:"lead_id,omitempty"`
	UserID *string        `json:"user_id,omitempty"`
}

// CreateWorkflowRequest is the body of POST /workflows.
type CreateWorkflowRequest struct {
	Name        string                  `json:"name"         validate:"required,min=3"`
	TriggerType string                  `json:"trigger_type" validate:"required"`
	TriggerData map[string]any          `json:"trigger_data"`
	Actions     []models.WorkflowAction `json:"actions"`
	IsActive    bool                    `json:"is_active"`
}

// ExecuteWorkflowRequest is the body of POST /workflows/:id/execute, used for
// manual and administrative re-runs.
type ExecuteWorkflowRequest struct {
	Data   map[string]any `json:"data"`
	LeadID *string        `json:"lead_id,omitempty"`
}
