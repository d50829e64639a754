package automation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/josh9381/estatepulse/pkg/eventbus"
	"github.com/josh9381/estatepulse/pkg/events"
	"github.com/josh9381/estatepulse/pkg/models"
	"github.com/josh9381/estatepulse/pkg/persistence"
	"github.com/josh9381/estatepulse/pkg/registry"
	"github.com/josh9381/estatepulse/pkg/tracer"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Engine runs one workflow against one trigger event, owning the execution
// state machine end to end.
type Engine struct {
	persistence persistence.Persistence
	registry    *registry.Registry
	eventBus    eventbus.EventBus
	logger      *slog.Logger
	tracer      trace.Tracer
}

func NewEngine(
	persistence persistence.Persistence,
	registry *registry.Registry,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		persistence: persistence,
		registry:    registry,
		eventBus:    eventBus,
		logger:      logger.With("module", "automation_engine"),
		tracer:      noop.NewTracerProvider().Tracer("automation"),
	}
}

// WithTracer replaces the no-op tracer, usually with one from tracer.NewTracer.
func (e *Engine) WithTracer(t trace.Tracer) *Engine {
	e.tracer = t

	return e
}

// Execute runs a workflow against an event. Inactive workflows are a silent
// no-op with no execution record. Every other attempt writes a RUNNING
// execution row before any side effect.
//
// Actions run sequentially with abort on first error; completed side effects
// are not rolled back. Unknown action types are logged and skipped. The
// workflow counter and last_run_at move only when the whole sequence
// succeeded. A FAILED execution is terminal; there is no retry here.
func (e *Engine) Execute(ctx context.Context, workflow *models.Workflow, event models.TriggerEvent) (*models.WorkflowExecution, error) {
	logger := e.logger.With("workflow_id", workflow.ID, "trigger_type", event.Type)

	if !workflow.IsActive {
		logger.DebugContext(ctx, "Workflow is inactive, skipping")

		return nil, nil
	}

	ctx, span := tracer.StartSpan(ctx, e.tracer, "workflow.execute",
		attribute.String(tracer.WorkflowIDKey, workflow.ID),
		attribute.String(tracer.TriggerTypeKey, string(event.Type)),
	)
	defer span.End()

	startedAt := time.Now().UTC()

	execution := &models.WorkflowExecution{
		ID:         uuid.New().String(),
		WorkflowID: workflow.ID,
		Status:     models.ExecutionStatusRunning,
		LeadID:     event.LeadID,
		Metadata:   event.Data,
		StartedAt:  startedAt,
	}

	if err := e.persistence.Executions().Create(ctx, execution); err != nil {
		tracer.SetError(span, err)

		return nil, err
	}

	logger = logger.With("execution_id", execution.ID)
	span.SetAttributes(attribute.String(tracer.ExecutionIDKey, execution.ID))

	e.publish(ctx, workflow.ID, events.ExecutionStarted{
		BaseEvent:   e.baseEvent(events.ExecutionStartedEvent),
		WorkflowID:  workflow.ID,
		ExecutionID: execution.ID,
	})

	if !ConditionsMet(conditionsOf(workflow), event.Data) {
		logger.InfoContext(ctx, "Trigger conditions not met")

		return execution, e.finishSuccess(ctx, workflow, execution, startedAt, 0, false)
	}

	executed := 0

	for i, action := range workflow.Actions {
		if err := e.runAction(ctx, workflow, action, event, logger); err != nil {
			if errors.Is(err, registry.ErrNotRegistered) {
				logger.WarnContext(ctx, "Unknown action type, skipping",
					"action_type", action.Type, "position", i)

				continue
			}

			logger.ErrorContext(ctx, "Action failed, aborting run",
				"action_type", action.Type, "position", i, "error", err)
			tracer.SetError(span, err)

			return execution, e.finishFailed(ctx, workflow, execution, startedAt, err)
		}

		executed++
	}

	logger.InfoContext(ctx, "Workflow execution completed", "actions", executed)

	return execution, e.finishSuccess(ctx, workflow, execution, startedAt, executed, true)
}

func (e *Engine) runAction(ctx context.Context, workflow *models.Workflow, workflowAction models.WorkflowAction, event models.TriggerEvent, logger *slog.Logger) error {
	ctx, span := tracer.StartSpan(ctx, e.tracer, "workflow.action",
		attribute.String(tracer.WorkflowIDKey, workflow.ID),
		attribute.String(tracer.ActionTypeKey, workflowAction.Type),
	)
	defer span.End()

	action, err := e.registry.CreateAction(workflowAction.Type, workflowAction.Config)
	if err != nil {
		if !errors.Is(err, registry.ErrNotRegistered) {
			tracer.SetError(span, err)
		}

		return err
	}

	_, err = action.Execute(ctx, event, logger)
	if err != nil {
		tracer.SetError(span, err)

		return err
	}

	return nil
}

// finishSuccess marks the execution SUCCESS. Workflow counters move only when
// actions actually ran to completion, not on a condition miss.
func (e *Engine) finishSuccess(ctx context.Context, workflow *models.Workflow, execution *models.WorkflowExecution, startedAt time.Time, actions int, countRun bool) error {
	completedAt := time.Now().UTC()

	if err := e.persistence.Executions().MarkSuccess(ctx, execution.ID, completedAt); err != nil {
		return err
	}

	execution.Status = models.ExecutionStatusSuccess
	execution.CompletedAt = &completedAt

	if countRun {
		if err := e.persistence.Workflows().RecordRun(ctx, workflow.ID, completedAt); err != nil {
			return err
		}

		workflow.Executions++
		workflow.LastRunAt = &completedAt
	}

	e.publish(ctx, workflow.ID, events.ExecutionCompleted{
		BaseEvent:   e.baseEvent(events.ExecutionCompletedEvent),
		WorkflowID:  workflow.ID,
		ExecutionID: execution.ID,
		Actions:     actions,
		Duration:    completedAt.Sub(startedAt),
	})

	return nil
}

func (e *Engine) finishFailed(ctx context.Context, workflow *models.Workflow, execution *models.WorkflowExecution, startedAt time.Time, cause error) error {
	completedAt := time.Now().UTC()
	message := cause.Error()

	if err := e.persistence.Executions().MarkFailed(ctx, execution.ID, message, completedAt); err != nil {
		return err
	}

	execution.Status = models.ExecutionStatusFailed
	execution.Error = &message
	execution.CompletedAt = &completedAt

	e.publish(ctx, workflow.ID, events.ExecutionFailed{
		BaseEvent:   e.baseEvent(events.ExecutionFailedEvent),
		WorkflowID:  workflow.ID,
		ExecutionID: execution.ID,
		Error:       message,
		Duration:    completedAt.Sub(startedAt),
	})

	return cause
}

// publish emits a lifecycle event best-effort. A broker outage must not fail
// the run it describes.
func (e *Engine) publish(ctx context.Context, key string, event eventbus.Event) {
	if e.eventBus == nil {
		return
	}

	if err := e.eventBus.Publish(ctx, key, event); err != nil {
		e.logger.WarnContext(ctx, "Failed to publish lifecycle event",
			"event_type", event.GetType(), "error", err)
	}
}

func (e *Engine) baseEvent(eventType events.EventType) events.BaseEvent {
	id := uuid.NewString()
	if e.eventBus != nil {
		id = e.eventBus.GenerateID()
	}

	return events.BaseEvent{
		ID:        id,
		Type:      eventType,
		Timestamp: time.Now().UTC(),
	}
}
