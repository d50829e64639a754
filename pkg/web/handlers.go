package web

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/josh9381/estatepulse/pkg/automation"
	"github.com/josh9381/estatepulse/pkg/campaign"
	"github.com/josh9381/estatepulse/pkg/models"
	"github.com/josh9381/estatepulse/pkg/persistence"
)

const defaultExecutionsLimit = 50

type APIHandlers struct {
	persistence persistence.Persistence
	dispatcher  *automation.Dispatcher
	engine      *automation.Engine
	scheduler   *campaign.Scheduler
	validator   *validator.Validate
	logger      *slog.Logger
}

func NewAPIHandlers(
	persistence persistence.Persistence,
	dispatcher *automation.Dispatcher,
	engine *automation.Engine,
	scheduler *campaign.Scheduler,
	validator *validator.Validate,
	logger *slog.Logger,
) *APIHandlers {
	return &APIHandlers{
		persistence: persistence,
		dispatcher:  dispatcher,
		engine:      engine,
		scheduler:   scheduler,
		validator:   validator,
		logger:      logger.With("module", "web"),
	}
}

// ProcessTrigger accepts a business event and fans it out to matching
// workflows. The caller gets a 202 regardless of individual workflow
// outcomes; automation failures never surface to the event producer.
func (h *APIHandlers) ProcessTrigger(c fiber.Ctx) error {
	var req TriggerRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, err.Error())
	}

	event := models.TriggerEvent{
		Type:   models.TriggerType(req.Type),
		Data:   req.Data,
		LeadID: req.LeadID,
		UserID: req.UserID,
	}

	if err := h.dispatcher.Dispatch(c.Context(), event); err != nil {
		return internalError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"accepted": true})
}

func (h *APIHandlers) GetWorkflows(c fiber.Ctx) error {
	workflows, err := h.persistence.Workflows().GetAll(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"workflows": workflows, "count": len(workflows)})
}

func (h *APIHandlers) GetWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	workflow, err := h.persistence.Workflows().GetByID(c.Context(), id)
	if err != nil {
		if persistence.IsWorkflowNotFound(err) {
			return notFound(c, "Workflow not found")
		}

		return internalError(c, err)
	}

	return c.JSON(workflow)
}

func (h *APIHandlers) CreateWorkflow(c fiber.Ctx) error {
	var req CreateWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, err.Error())
	}

	now := time.Now().UTC()

	workflow := &models.Workflow{
		ID:          uuid.New().String(),
		Name:        req.Name,
		TriggerType: models.TriggerType(req.TriggerType),
		TriggerData: req.TriggerData,
		Actions:     req.Actions,
		IsActive:    req.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if workflow.TriggerType == models.TriggerTimeBased {
		if err := workflow.UpdateNextRunAt(now); err != nil {
			return badRequest(c, "time_based workflows require a valid cron expression in trigger_data.cron")
		}
	}

	if err := h.persistence.Workflows().Save(c.Context(), workflow); err != nil {
		return internalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(workflow)
}

func (h *APIHandlers) DeleteWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	if err := h.persistence.Workflows().Delete(c.Context(), id); err != nil {
		if persistence.IsWorkflowNotFound(err) {
			return notFound(c, "Workflow not found")
		}

		return internalError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ExecuteWorkflow runs one workflow directly, bypassing trigger matching.
// Used for manual and administrative re-runs.
func (h *APIHandlers) ExecuteWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	var req ExecuteWorkflowRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&req); err != nil {
			return badRequest(c, "Invalid request body: "+err.Error())
		}
	}

	workflow, err := h.persistence.Workflows().GetByID(c.Context(), id)
	if err != nil {
		if persistence.IsWorkflowNotFound(err) {
			return notFound(c, "Workflow not found")
		}

		return internalError(c, err)
	}

	event := models.TriggerEvent{
		Type:   models.TriggerManual,
		Data:   req.Data,
		LeadID: req.LeadID,
	}

	execution, err := h.engine.Execute(c.Context(), workflow, event)
	if err != nil {
		// The failure is recorded on the execution; return it so the
		// operator sees what happened.
		if execution != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(execution)
		}

		return internalError(c, err)
	}

	if execution == nil {
		return c.JSON(fiber.Map{"skipped": true, "reason": "workflow is inactive"})
	}

	return c.JSON(execution)
}

func (h *APIHandlers) GetWorkflowExecutions(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	limit := defaultExecutionsLimit

	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			return badRequest(c, "Invalid limit")
		}

		limit = parsed
	}

	executions, err := h.persistence.Executions().GetByWorkflow(c.Context(), id, limit)
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"executions": executions, "count": len(executions)})
}

func (h *APIHandlers) GetCampaignStats(c fiber.Ctx) error {
	stats, err := h.scheduler.GetScheduledCampaignsStats(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(stats)
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	if err := h.persistence.HealthCheck(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
			"error":  err.Error(),
		})
	}

	return c.JSON(fiber.Map{"status": "healthy"})
}
