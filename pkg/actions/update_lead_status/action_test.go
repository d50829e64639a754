package update_lead_status

import (
	"context"
	"log/slog"
	"os"
	"testing"

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

func TestUpdateLeadStatusSkipsWithoutLead(t *testing.T) {
	persistence := mocks.NewMockPersistence()
	deps := protocol.Dependencies{Persistence: persistence}

	action := NewUpdateLeadStatusAction(map[string]any{"status": "qualified"}, deps)

	result, err := action.Execute(context.Background(), models.TriggerEvent{Type: models.TriggerManual}, testLogger())

	require.NoError(t, err, "a missing lead is a skip, not a failure")
	assert.Equal(t, true, result["skipped"])
	persistence.GetMockLeadRepository().AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateLeadStatusUpdatesAndAudits(t *testing.T) {
	persistence := mocks.NewMockPersistence()
	deps := protocol.Dependencies{Persistence: persistence}

	lead := &models.Lead{ID: "lead-1", FirstName: "Ana", Status: models.LeadStatusNew}
	persistence.GetMockLeadRepository().On("GetByID", mock.Anything, "lead-1").Return(lead, nil)
	persistence.GetMockLeadRepository().On("UpdateStatus", mock.Anything, "lead-1", models.LeadStatusQualified).Return(nil)
	persistence.GetMockActivityRepository().On("Create", mock.Anything, mock.MatchedBy(func(a *models.Activity) bool {
		return a.Type == models.ActivityStatusChanged &&
			a.Metadata["old_status"] == "new" &&
			a.Metadata["new_status"] == "qualified"
	})).Return(nil)

	action := NewUpdateLeadStatusAction(map[string]any{"status": "qualified"}, deps)

	leadID := "lead-1"
	result, err := action.Execute(context.Background(), models.TriggerEvent{
		Type:   models.TriggerLeadStatusChanged,
		LeadID: &leadID,
	}, testLogger())

	require.NoError(t, err)
	assert.Equal(t, "qualified", result["new_status"])
	persistence.GetMockLeadRepository().AssertExpectations(t)
	persistence.GetMockActivityRepository().AssertExpectations(t)
}
