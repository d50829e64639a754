package automation

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/josh9381/estatepulse/pkg/mocks"
	"github.com/josh9381/estatepulse/pkg/models"
	"github.com/josh9381/estatepulse/pkg/protocol"
	"github.com/josh9381/estatepulse/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// recordingAction appends its label to a shared call log, optionally failing.
type recordingAction struct {
	label string
	calls *[]string
	err   error
}

func (a *recordingAction) Execute(_ context.Context, _ models.TriggerEvent, _ *slog.Logger) (map[string]any, error) {
	*a.calls = append(*a.calls, a.label)

	if a.err != nil {
		return nil, a.err
	}

	return map[string]any{"label": a.label}, nil
}

type recordingFactory struct {
	id    string
	calls *[]string
	err   error
}

func (f *recordingFactory) ID() string             { return f.id }
func (f *recordingFactory) Schema() map[string]any { return nil }

func (f *recordingFactory) Create(config map[string]any) (protocol.Action, error) {
	label := f.id
	if l, ok := config["label"].(string); ok {
		label = l
	}

	return &recordingAction{label: label, calls: f.calls, err: f.err}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func newTestEngine(t *testing.T, calls *[]string, failingType string) (*Engine, *mocks.MockPersistence) {
	t.Helper()

	reg := registry.NewRegistry(testLogger())
	reg.RegisterAction(&recordingFactory{id: "note", calls: calls})

	if failingType != "" {
		reg.RegisterAction(&recordingFactory{
			id:    failingType,
			calls: calls,
			err:   errors.New("smtp connection refused"),
		})
	}

	persistence := mocks.NewMockPersistence()
	engine := NewEngine(persistence, reg, nil, testLogger())

	return engine, persistence
}

func TestEngineInactiveWorkflowIsSilentNoOp(t *testing.T) {
	var calls []string

	engine, persistence := newTestEngine(t, &calls, "")

	workflow := &models.Workflow{
		ID:          "wf-1",
		Name:        "Welcome sequence",
		TriggerType: models.TriggerLeadCreated,
		IsActive:    false,
		Actions:     []models.WorkflowAction{{Type: "note"}},
	}

	execution, err := engine.Execute(context.Background(), workflow, models.TriggerEvent{Type: models.TriggerLeadCreated})

	require.NoError(t, err)
	assert.Nil(t, execution)
	assert.Empty(t, calls)
	persistence.GetMockExecutionRepository().AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEngineConditionsNotMetIsSuccessWithoutActions(t *testing.T) {
	var calls []string

	engine, persistence := newTestEngine(t, &calls, "")
	executions := persistence.GetMockExecutionRepository()
	executions.On("Create", mock.Anything, mock.Anything).Return(nil)
	executions.On("MarkSuccess", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	workflow := &models.Workflow{
		ID:          "wf-1",
		Name:        "Qualified follow-up",
		TriggerType: models.TriggerLeadStatusChanged,
		TriggerData: map[string]any{"status": "qualified"},
		IsActive:    true,
		Actions:     []models.WorkflowAction{{Type: "note"}},
	}

	event := models.TriggerEvent{
		Type: models.TriggerLeadStatusChanged,
		Data: map[string]any{"status": "lost"},
	}

	execution, err := engine.Execute(context.Background(), workflow, event)

	require.NoError(t, err)
	require.NotNil(t, execution)
	assert.Equal(t, models.ExecutionStatusSuccess, execution.Status)
	assert.Empty(t, calls, "no action should run on a condition miss")

	// A non-match is a correct no-op, not a run.
	persistence.GetMockWorkflowRepository().AssertNotCalled(t, "RecordRun", mock.Anything, mock.Anything, mock.Anything)
	executions.AssertExpectations(t)
}

func TestEngineSecondActionFailureAbortsRemaining(t *testing.T) {
	var calls []string

	engine, persistence := newTestEngine(t, &calls, "broken")
	executions := persistence.GetMockExecutionRepository()
	executions.On("Create", mock.Anything, mock.Anything).Return(nil)
	executions.On("MarkFailed", mock.Anything, mock.Anything, "smtp connection refused", mock.Anything).Return(nil)

	workflow := &models.Workflow{
		ID:          "wf-1",
		Name:        "Three step sequence",
		TriggerType: models.TriggerLeadCreated,
		IsActive:    true,
		Actions: []models.WorkflowAction{
			{Type: "note", Config: map[string]any{"label": "first"}},
			{Type: "broken", Config: map[string]any{"label": "second"}},
			{Type: "note", Config: map[string]any{"label": "third"}},
		},
	}

	execution, err := engine.Execute(context.Background(), workflow, models.TriggerEvent{Type: models.TriggerLeadCreated})

	require.Error(t, err)
	require.NotNil(t, execution)
	assert.Equal(t, models.ExecutionStatusFailed, execution.Status)
	require.NotNil(t, execution.Error)
	assert.Equal(t, "smtp connection refused", *execution.Error)

	// The first side effect persists, the third action never runs.
	assert.Equal(t, []string{"first", "second"}, calls)

	persistence.GetMockWorkflowRepository().AssertNotCalled(t, "RecordRun", mock.Anything, mock.Anything, mock.Anything)
	executions.AssertExpectations(t)
}

func TestEngineUnknownActionTypeIsSkipped(t *testing.T) {
	var calls []string

	engine, persistence := newTestEngine(t, &calls, "")
	executions := persistence.GetMockExecutionRepository()
	executions.On("Create", mock.Anything, mock.Anything).Return(nil)
	executions.On("MarkSuccess", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	persistence.GetMockWorkflowRepository().On("RecordRun", mock.Anything, "wf-1", mock.Anything).Return(nil)

	workflow := &models.Workflow{
		ID:          "wf-1",
		Name:        "Forward compatible",
		TriggerType: models.TriggerLeadCreated,
		IsActive:    true,
		Actions: []models.WorkflowAction{
			{Type: "hologram_call"},
			{Type: "note", Config: map[string]any{"label": "after"}},
		},
	}

	execution, err := engine.Execute(context.Background(), workflow, models.TriggerEvent{Type: models.TriggerLeadCreated})

	require.NoError(t, err)
	assert.Equal(t, models.ExecutionStatusSuccess, execution.Status)
	assert.Equal(t, []string{"after"}, calls, "the unknown type is skipped, the rest still run")
	executions.AssertExpectations(t)
}

func TestEngineSuccessfulRunUpdatesCounters(t *testing.T) {
	var calls []string

	engine, persistence := newTestEngine(t, &calls, "")
	executions := persistence.GetMockExecutionRepository()
	executions.On("Create", mock.Anything, mock.Anything).Return(nil)
	executions.On("MarkSuccess", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	persistence.GetMockWorkflowRepository().On("RecordRun", mock.Anything, "wf-1", mock.Anything).Return(nil)

	workflow := &models.Workflow{
		ID:          "wf-1",
		Name:        "Welcome sequence",
		TriggerType: models.TriggerLeadCreated,
		IsActive:    true,
		Executions:  4,
		Actions:     []models.WorkflowAction{{Type: "note"}},
	}

	leadID := "lead-9"
	event := models.TriggerEvent{
		Type:   models.TriggerLeadCreated,
		Data:   map[string]any{"source": "zillow"},
		LeadID: &leadID,
	}

	execution, err := engine.Execute(context.Background(), workflow, event)

	require.NoError(t, err)
	assert.Equal(t, models.ExecutionStatusSuccess, execution.Status)
	assert.Equal(t, &leadID, execution.LeadID)
	assert.Equal(t, event.Data, execution.Metadata)
	assert.EqualValues(t, 5, workflow.Executions)
	assert.NotNil(t, workflow.LastRunAt)

	persistence.GetMockWorkflowRepository().AssertExpectations(t)
	executions.AssertExpectations(t)
}

func TestEngineCreatesRunningRecordBeforeActions(t *testing.T) {
	var calls []string

	engine, persistence := newTestEngine(t, &calls, "")
	executions := persistence.GetMockExecutionRepository()

	executions.On("Create", mock.Anything, mock.MatchedBy(func(e *models.WorkflowExecution) bool {
		return e.Status == models.ExecutionStatusRunning && len(calls) == 0
	})).Return(nil)
	executions.On("MarkSuccess", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	persistence.GetMockWorkflowRepository().On("RecordRun", mock.Anything, "wf-1", mock.Anything).Return(nil)

	workflow := &models.Workflow{
		ID:          "wf-1",
		Name:        "Audit first",
		TriggerType: models.TriggerManual,
		IsActive:    true,
		Actions:     []models.WorkflowAction{{Type: "note"}},
	}

	_, err := engine.Execute(context.Background(), workflow, models.TriggerEvent{Type: models.TriggerManual})

	require.NoError(t, err)
	executions.AssertExpectations(t)
}
