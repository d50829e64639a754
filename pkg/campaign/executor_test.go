package campaign

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/josh9381/estatepulse/pkg/messaging"
	"github.com/josh9381/estatepulse/pkg/mocks"
	"github.com/josh9381/estatepulse/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func newTestExecutor() (*Executor, *mocks.MockPersistence, *mocks.MockEmailSender, *mocks.MockSMSSender) {
	persistence := mocks.NewMockPersistence()
	email := &mocks.MockEmailSender{}
	sms := &mocks.MockSMSSender{}
	executor := NewExecutor(persistence, email, sms, nil, testLogger())

	return executor, persistence, email, sms
}

func TestExecutorEmptyAudienceIsSuccess(t *testing.T) {
	executor, persistence, email, _ := newTestExecutor()

	campaign := &models.Campaign{
		ID:     "camp-1",
		Name:   "Spring open house",
		Type:   models.CampaignTypeEmail,
		Status: models.CampaignStatusSending,
		Body:   "Hello {{.first_name}}",
		TagIDs: []string{"tag-1"},
	}

	persistence.GetMockCampaignRepository().On("GetByID", mock.Anything, "camp-1").Return(campaign, nil)
	persistence.GetMockLeadRepository().
		On("Filter", mock.Anything, mock.Anything).Return([]*models.Lead{}, nil)

	result, err := executor.Execute(context.Background(), ExecuteRequest{CampaignID: "camp-1"})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Zero(t, result.Sent)
	assert.NotEmpty(t, result.Message)
	email.AssertNotCalled(t, "SendBulk", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecutorExplicitLeadIDsTakePrecedence(t *testing.T) {
	executor, persistence, email, _ := newTestExecutor()

	campaign := &models.Campaign{
		ID:      "camp-1",
		Name:    "Spring open house",
		Type:    models.CampaignTypeEmail,
		Status:  models.CampaignStatusSending,
		Subject: "Open house",
		Body:    "Hi {{.first_name}}, join us this weekend",
		TagIDs:  []string{"tag-1"},
	}

	leads := []*models.Lead{
		{ID: "lead-1", FirstName: "Ana", Email: "ana@example.com"},
	}

	persistence.GetMockCampaignRepository().On("GetByID", mock.Anything, "camp-1").Return(campaign, nil)
	persistence.GetMockCampaignRepository().On("Save", mock.Anything, mock.Anything).Return(nil)
	persistence.GetMockCampaignRepository().On("IncrementSent", mock.Anything, "camp-1", 1).Return(nil)
	persistence.GetMockLeadRepository().On("GetByIDs", mock.Anything, []string{"lead-1"}).Return(leads, nil)

	email.On("SendBulk", mock.Anything, mock.MatchedBy(func(messages []messaging.Message) bool {
		return len(messages) == 1 &&
			messages[0].To == "ana@example.com" &&
			messages[0].Body == "Hi Ana, join us this weekend"
	}), "camp-1").Return(messaging.BulkResult{Sent: 1})

	result, err := executor.Execute(context.Background(), ExecuteRequest{
		CampaignID: "camp-1",
		LeadIDs:    []string{"lead-1"},
	})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, result.TotalLeads)

	persistence.GetMockLeadRepository().AssertNotCalled(t, "Filter", mock.Anything, mock.Anything)
	persistence.GetMockCampaignRepository().AssertExpectations(t)
	email.AssertExpectations(t)
}

func TestExecutorSMSCampaignUsesPhone(t *testing.T) {
	executor, persistence, email, sms := newTestExecutor()

	campaign := &models.Campaign{
		ID:     "camp-2",
		Name:   "Price drop alert",
		Type:   models.CampaignTypeSMS,
		Status: models.CampaignStatusActive,
		Body:   "{{.first_name}}, new listing in your range",
	}

	leads := []*models.Lead{
		{ID: "lead-1", FirstName: "Bo", Phone: "+15550100"},
		{ID: "lead-2", FirstName: "Cy", Email: "cy@example.com"}, // no phone, skipped
	}

	persistence.GetMockCampaignRepository().On("GetByID", mock.Anything, "camp-2").Return(campaign, nil)
	persistence.GetMockCampaignRepository().On("Save", mock.Anything, mock.Anything).Return(nil)
	persistence.GetMockCampaignRepository().On("IncrementSent", mock.Anything, "camp-2", 1).Return(nil)
	persistence.GetMockLeadRepository().On("Filter", mock.Anything, mock.Anything).Return(leads, nil)

	sms.On("SendBulk", mock.Anything, mock.MatchedBy(func(messages []messaging.Message) bool {
		return len(messages) == 1 && messages[0].To == "+15550100"
	}), "camp-2").Return(messaging.BulkResult{Sent: 1})

	result, err := executor.Execute(context.Background(), ExecuteRequest{CampaignID: "camp-2"})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, result.Failed, "the lead without a phone counts as failed")
	email.AssertNotCalled(t, "SendBulk", mock.Anything, mock.Anything, mock.Anything)
	sms.AssertExpectations(t)
}

func TestExecutorStampsStartDateAndActivates(t *testing.T) {
	executor, persistence, email, _ := newTestExecutor()

	campaign := &models.Campaign{
		ID:     "camp-3",
		Name:   "Newsletter",
		Type:   models.CampaignTypeEmail,
		Status: models.CampaignStatusSending,
		Body:   "News for {{.name}}",
	}

	leads := []*models.Lead{{ID: "lead-1", FirstName: "Di", Email: "di@example.com"}}

	persistence.GetMockCampaignRepository().On("GetByID", mock.Anything, "camp-3").Return(campaign, nil)
	persistence.GetMockCampaignRepository().On("Save", mock.Anything, mock.MatchedBy(func(c *models.Campaign) bool {
		return c.Status == models.CampaignStatusActive && c.StartDate != nil
	})).Return(nil)
	persistence.GetMockCampaignRepository().On("IncrementSent", mock.Anything, "camp-3", 1).Return(nil)
	persistence.GetMockLeadRepository().On("Filter", mock.Anything, mock.Anything).Return(leads, nil)

	email.On("SendBulk", mock.Anything, mock.Anything, "camp-3").Return(messaging.BulkResult{Sent: 1})

	_, err := executor.Execute(context.Background(), ExecuteRequest{CampaignID: "camp-3"})

	require.NoError(t, err)
	persistence.GetMockCampaignRepository().AssertExpectations(t)
}

func TestExecutorReportsProviderFailures(t *testing.T) {
	executor, persistence, email, _ := newTestExecutor()

	campaign := &models.Campaign{
		ID:     "camp-4",
		Name:   "Newsletter",
		Type:   models.CampaignTypeEmail,
		Status: models.CampaignStatusActive,
		Body:   "Hello",
	}

	startDate := campaign.CreatedAt
	campaign.StartDate = &startDate

	leads := []*models.Lead{
		{ID: "lead-1", FirstName: "Ed", Email: "ed@example.com"},
		{ID: "lead-2", FirstName: "Fi", Email: "fi@example.com"},
	}

	persistence.GetMockCampaignRepository().On("GetByID", mock.Anything, "camp-4").Return(campaign, nil)
	persistence.GetMockCampaignRepository().On("IncrementSent", mock.Anything, "camp-4", 1).Return(nil)
	persistence.GetMockLeadRepository().On("Filter", mock.Anything, mock.Anything).Return(leads, nil)

	email.On("SendBulk", mock.Anything, mock.Anything, "camp-4").Return(messaging.BulkResult{
		Sent:   1,
		Failed: 1,
		Errors: []string{"mailbox full"},
	})

	result, err := executor.Execute(context.Background(), ExecuteRequest{CampaignID: "camp-4"})

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, []string{"mailbox full"}, result.Errors)
}
