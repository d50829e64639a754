// Package create_task implements the workflow action that creates a
// follow-up task, optionally linked to the triggering lead.
package create_task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/josh9381/estatepulse/pkg/models"
	"github.com/josh9381/estatepulse/pkg/protocol"
)

type CreateTaskAction struct {
	Title       string
	Description string
	DueDate     string
	Priority    string

	deps protocol.Dependencies
}

func NewCreateTaskAction(config map[string]any, deps protocol.Dependencies) *CreateTaskAction {
	title, _ := config["title"].(string)
	description, _ := config["description"].(string)
	dueDate, _ := config["due_date"].(string)
	priority, _ := config["priority"].(string)

	return &CreateTaskAction{
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Priority:    priority,
		deps:        deps,
	}
}

func (a *CreateTaskAction) Execute(ctx context.Context, event models.TriggerEvent, logger *slog.Logger) (map[string]any, error) {
	logger = logger.With("action_type", "create_task")

	task := &models.Task{
		Title:       a.Title,
		Description: a.Description,
		LeadID:      event.LeadID,
		Priority:    models.TaskPriority(a.Priority),
	}

	if a.DueDate != "" {
		dueDate, err := parseDueDate(a.DueDate)
		if err != nil {
			return nil, err
		}

		task.DueDate = &dueDate
	}

	err := a.deps.Persistence.Tasks().Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "title", task.Title)

	return map[string]any{"task_id": task.ID}, nil
}

func parseDueDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		dueDate, err := time.Parse(layout, value)
		if err == nil {
			return dueDate, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid due date %q", value)
}
