package automation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/josh9381/estatepulse/pkg/eventbus"
	"github.com/josh9381/estatepulse/pkg/events"
	"github.com/josh9381/estatepulse/pkg/models"
	"github.com/josh9381/estatepulse/pkg/persistence"
)

// Dispatcher is the entry point business events go through. It fans a trigger
// event out to every active workflow registered for that trigger type.
type Dispatcher struct {
	persistence persistence.Persistence
	engine      *Engine
	eventBus    eventbus.EventBus
	logger      *slog.Logger
}

func NewDispatcher(
	persistence persistence.Persistence,
	engine *Engine,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		persistence: persistence,
		engine:      engine,
		eventBus:    eventBus,
		logger:      logger.With("module", "trigger_dispatcher"),
	}
}

// Dispatch looks up the active workflows for the event's trigger type and
// runs each through the engine. Workflows are isolated from each other: one
// failing run is logged and the rest still execute. Dispatch itself fails
// only when the workflow lookup fails.
func (d *Dispatcher) Dispatch(ctx context.Context, event models.TriggerEvent) error {
	logger := d.logger.With("trigger_type", event.Type)

	workflows, err := d.persistence.Workflows().ActiveByTriggerType(ctx, event.Type)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to look up workflows for trigger", "error", err)

		return err
	}

	if len(workflows) == 0 {
		logger.DebugContext(ctx, "No active workflows for trigger")

		return nil
	}

	logger.InfoContext(ctx, "Dispatching trigger event", "workflows", len(workflows))

	d.publishFired(ctx, event, len(workflows))

	for _, workflow := range workflows {
		_, err := d.engine.Execute(ctx, workflow, event)
		if err != nil {
			// Already recorded on the execution row; the remaining
			// workflows still get their run.
			logger.ErrorContext(ctx, "Workflow execution failed",
				"workflow_id", workflow.ID, "error", err)
		}
	}

	return nil
}

func (d *Dispatcher) publishFired(ctx context.Context, event models.TriggerEvent, matched int) {
	if d.eventBus == nil {
		return
	}

	leadID := ""
	if event.LeadID != nil {
		leadID = *event.LeadID
	}

	fired := events.TriggerFired{
		BaseEvent: events.BaseEvent{
			ID:        uuid.New().String(),
			Type:      events.TriggerFiredEvent,
			Timestamp: time.Now().UTC(),
		},
		TriggerType: event.Type,
		LeadID:      leadID,
		Matched:     matched,
	}

	if err := d.eventBus.Publish(ctx, string(event.Type), fired); err != nil {
		d.logger.WarnContext(ctx, "Failed to publish trigger event", "error", err)
	}
}
