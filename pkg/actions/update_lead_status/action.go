// Package update_lead_status implements the workflow action that moves the
// triggering lead to a new funnel status and records an audit activity.
package update_lead_status

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/josh9381/estatepulse/pkg/models"
	"github.com/josh9381/estatepulse/pkg/protocol"
)

type UpdateLeadStatusAction struct {
	Status string

	deps protocol.Dependencies
}

func NewUpdateLeadStatusAction(config map[string]any, deps protocol.Dependencies) *UpdateLeadStatusAction {
	status, _ := config["status"].(string)

	return &UpdateLeadStatusAction{Status: status, deps: deps}
}

func (a *UpdateLeadStatusAction) Execute(ctx context.Context, event models.TriggerEvent, logger *slog.Logger) (map[string]any, error) {
	logger = logger.With("action_type", "update_lead_status")

	// A trigger without a lead is a configuration mismatch, not a failure:
	// the action is skipped so the rest of the run proceeds.
	if event.LeadID == nil {
		logger.WarnContext(ctx, "Skipping update_lead_status, event carries no lead")

		return map[string]any{"skipped": true}, nil
	}

	lead, err := a.deps.Persistence.Leads().GetByID(ctx, *event.LeadID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lead %s: %w", *event.LeadID, err)
	}

	newStatus := models.LeadStatus(a.Status)

	err = a.deps.Persistence.Leads().UpdateStatus(ctx, lead.ID, newStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to update lead status: %w", err)
	}

	activity := &models.Activity{
		LeadID:      lead.ID,
		Type:        models.ActivityStatusChanged,
		Description: fmt.Sprintf("Status changed from %s to %s by automation", lead.Status, newStatus),
		Metadata: map[string]any{
			"old_status": string(lead.Status),
			"new_status": string(newStatus),
		},
	}

	err = a.deps.Persistence.Activities().Create(ctx, activity)
	if err != nil {
		return nil, fmt.Errorf("failed to record status change activity: %w", err)
	}

	logger.InfoContext(ctx, "Lead status updated",
		"lead_id", lead.ID,
		"old_status", lead.Status,
		"new_status", newStatus)

	return map[string]any{
		"lead_id":    lead.ID,
		"old_status": string(lead.Status),
		"new_status": string(newStatus),
	}, nil
}
