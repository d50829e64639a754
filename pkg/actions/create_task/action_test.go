package create_task

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/josh9381/estatepulse/pkg/mocks"
	"github.com/josh9381/estatepulse/pkg/models"
	"github.com/josh9381/estatepulse/pkg/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func TestCreateTaskLinksLead(t *testing.T) {
	persistence := mocks.NewMockPersistence()
	deps := protocol.Dependencies{Persistence: persistence}

	persistence.GetMockTaskRepository().On("Create", mock.Anything, mock.MatchedBy(func(task *models.Task) bool {
		return task.Title == "Call back" &&
			task.LeadID != nil && *task.LeadID == "lead-1" &&
			task.DueDate != nil && task.DueDate.Format("2006-01-02") == "2026-09-15"
	})).Return(nil)

	action := NewCreateTaskAction(map[string]any{
		"title":    "Call back",
		"due_date": "2026-09-15",
	}, deps)

	leadID := "lead-1"
	_, err := action.Execute(context.Background(), models.TriggerEvent{
		Type:   models.TriggerLeadCreated,
		LeadID: &leadID,
	}, testLogger())

	require.NoError(t, err)
	persistence.GetMockTaskRepository().AssertExpectations(t)
}

func TestCreateTaskAcceptsRFC3339DueDate(t *testing.T) {
	persistence := mocks.NewMockPersistence()
	deps := protocol.Dependencies{Persistence: persistence}

	due := time.Date(2026, 9, 15, 14, 30, 0, 0, time.UTC)
	persistence.GetMockTaskRepository().On("Create", mock.Anything, mock.MatchedBy(func(task *models.Task) bool {
		return task.DueDate != nil && task.DueDate.Equal(due)
	})).Return(nil)

	action := NewCreateTaskAction(map[string]any{
		"title":    "Follow up",
		"due_date": "2026-09-15T14:30:00Z",
	}, deps)

	_, err := action.Execute(context.Background(), models.TriggerEvent{Type: models.TriggerManual}, testLogger())

	require.NoError(t, err)
}

func TestCreateTaskRejectsInvalidDueDate(t *testing.T) {
	persistence := mocks.NewMockPersistence()
	deps := protocol.Dependencies{Persistence: persistence}

	action := NewCreateTaskAction(map[string]any{
		"title":    "Follow up",
		"due_date": "next tuesday",
	}, deps)

	_, err := action.Execute(context.Background(), models.TriggerEvent{Type: models.TriggerManual}, testLogger())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid due date")
	persistence.GetMockTaskRepository().AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateTaskWithoutDueDate(t *testing.T) {
	persistence := mocks.NewMockPersistence()
	deps := protocol.Dependencies{Persistence: persistence}

	persistence.GetMockTaskRepository().On("Create", mock.Anything, mock.MatchedBy(func(task *models.Task) bool {
		return task.DueDate == nil && task.LeadID == nil
	})).Return(nil)

	action := NewCreateTaskAction(map[string]any{"title": "Review listing photos"}, deps)

	_, err := action.Execute(context.Background(), models.TriggerEvent{Type: models.TriggerManual}, testLogger())

	require.NoError(t, err)
}
