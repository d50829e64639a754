package add_tag

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/josh9381/estatepulse/pkg/mocks"
	"github.com/josh9381/estatepulse/pkg/models"
	"github.com/josh9381/estatepulse/pkg/persistence"
	"github.com/josh9381/estatepulse/pkg/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func TestAddTagSkipsWithoutLead(t *testing.T) {
	persistence := mocks.NewMockPersistence()
	deps := protocol.Dependencies{Persistence: persistence}

	action := NewAddTagAction(map[string]any{"tag_id": "tag-1"}, deps)

	result, err := action.Execute(context.Background(), models.TriggerEvent{Type: models.TriggerManual}, testLogger())

	require.NoError(t, err)
	assert.Equal(t, true, result["skipped"])
}

func TestAddTagSkipsMissingTag(t *testing.T) {
	mockPersistence := mocks.NewMockPersistence()
	deps := protocol.Dependencies{Persistence: mockPersistence}

	mockPersistence.GetMockTagRepository().
		On("GetByID", mock.Anything, "tag-gone").Return(nil, persistence.ErrTagNotFound)

	action := NewAddTagAction(map[string]any{"tag_id": "tag-gone"}, deps)

	leadID := "lead-1"
	result, err := action.Execute(context.Background(), models.TriggerEvent{
		Type:   models.TriggerLeadCreated,
		LeadID: &leadID,
	}, testLogger())

	require.NoError(t, err, "a deleted tag must not fail the run")
	assert.Equal(t, true, result["skipped"])
	mockPersistence.GetMockTagRepository().AssertNotCalled(t, "AttachToLead", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddTagAttachesAndAudits(t *testing.T) {
	mockPersistence := mocks.NewMockPersistence()
	deps := protocol.Dependencies{Persistence: mockPersistence}

	tag := &models.Tag{ID: "tag-1", Name: "hot-lead"}
	mockPersistence.GetMockTagRepository().On("GetByID", mock.Anything, "tag-1").Return(tag, nil)
	mockPersistence.GetMockTagRepository().On("AttachToLead", mock.Anything, "tag-1", "lead-1").Return(nil)
	mockPersistence.GetMockActivityRepository().On("Create", mock.Anything, mock.MatchedBy(func(a *models.Activity) bool {
		return a.Type == models.ActivityTagAdded && a.LeadID == "lead-1"
	})).Return(nil)

	action := NewAddTagAction(map[string]any{"tag_id": "tag-1"}, deps)

	leadID := "lead-1"
	result, err := action.Execute(context.Background(), models.TriggerEvent{
		Type:   models.TriggerLeadCreated,
		LeadID: &leadID,
	}, testLogger())

	require.NoError(t, err)
	assert.Equal(t, "tag-1", result["tag_id"])
	mockPersistence.GetMockTagRepository().AssertExpectations(t)
}
