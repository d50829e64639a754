// Package add_tag implements the workflow action that links an existing tag
// to the triggering lead. Tags are never created here.
package add_tag

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/josh9381/estatepulse/pkg/models"
	"github.com/josh9381/estatepulse/pkg/persistence"
	"github.com/josh9381/estatepulse/pkg/protocol"
)

type AddTagAction struct {
	TagID string

	deps protocol.Dependencies
}

func NewAddTagAction(config map[string]any, deps protocol.Dependencies) *AddTagAction {
	tagID, _ := config["tag_id"].(string)

	return &AddTagAction{TagID: tagID, deps: deps}
}

func (a *AddTagAction) Execute(ctx context.Context, event models.TriggerEvent, logger *slog.Logger) (map[string]any, error) {
	logger = logger.With("action_type", "add_tag", "tag_id", a.TagID)

	if event.LeadID == nil {
		logger.WarnContext(ctx, "Skipping add_tag, event carries no lead")

		return map[string]any{"skipped": true}, nil
	}

	tag, err := a.deps.Persistence.Tags().GetByID(ctx, a.TagID)
	if err != nil {
		// A deleted or misconfigured tag should not fail the run.
		if persistence.IsNotFound(err) {
			logger.WarnContext(ctx, "Skipping add_tag, tag does not exist")

			return map[string]any{"skipped": true}, nil
		}

		return nil, fmt.Errorf("failed to load tag %s: %w", a.TagID, err)
	}

	err = a.deps.Persistence.Tags().AttachToLead(ctx, tag.ID, *event.LeadID)
	if err != nil {
		return nil, fmt.Errorf("failed to attach tag to lead: %w", err)
	}

	activity := &models.Activity{
		LeadID:      *event.LeadID,
		Type:        models.ActivityTagAdded,
		Description: fmt.Sprintf("Tag %q added by automation", tag.Name),
		Metadata:    map[string]any{"tag_id": tag.ID, "tag_name": tag.Name},
	}

	err = a.deps.Persistence.Activities().Create(ctx, activity)
	if err != nil {
		return nil, fmt.Errorf("failed to record tag activity: %w", err)
	}

	logger.InfoContext(ctx, "Tag attached to lead", "lead_id", *event.LeadID)

	return map[string]any{"tag_id": tag.ID, "lead_id": *event.LeadID}, nil
}
