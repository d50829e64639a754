package send_sms

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/josh9381/estatepulse/pkg/messaging"
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

func TestSendSMSRequiresLead(t *testing.T) {
	deps := protocol.Dependencies{
		Persistence: mocks.NewMockPersistence(),
		SMS:         &mocks.MockSMSSender{},
	}
	action := NewSendSMSAction(map[string]any{"message": "hi"}, deps)

	_, err := action.Execute(context.Background(), models.TriggerEvent{Type: models.TriggerManual}, testLogger())

	assert.ErrorIs(t, err, ErrMissingLead)
}

func TestSendSMSDirectMessage(t *testing.T) {
	persistence := mocks.NewMockPersistence()
	sms := &mocks.MockSMSSender{}
	deps := protocol.Dependencies{Persistence: persistence, SMS: sms}

	lead := &models.Lead{ID: "lead-1", FirstName: "Ana", Phone: "+15550100"}
	persistence.GetMockLeadRepository().On("GetByID", mock.Anything, "lead-1").Return(lead, nil)
	sms.On("Send", mock.Anything, "+15550100", "Open house Saturday", "lead-1").
		Return(messaging.SendResult{Success: true, MessageID: "sms-1"})

	action := NewSendSMSAction(map[string]any{"message": "Open house Saturday"}, deps)

	leadID := "lead-1"
	result, err := action.Execute(context.Background(), models.TriggerEvent{
		Type:   models.TriggerLeadCreated,
		LeadID: &leadID,
	}, testLogger())

	require.NoError(t, err)
	assert.Equal(t, "sms-1", result["message_id"])
	sms.AssertExpectations(t)
}

func TestSendSMSProviderFailure(t *testing.T) {
	persistence := mocks.NewMockPersistence()
	sms := &mocks.MockSMSSender{}
	deps := protocol.Dependencies{Persistence: persistence, SMS: sms}

	lead := &models.Lead{ID: "lead-1", FirstName: "Bo", Phone: "+15550101"}
	persistence.GetMockLeadRepository().On("GetByID", mock.Anything, "lead-1").Return(lead, nil)
	sms.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(messaging.SendResult{Success: false, Error: "carrier rejected"})

	action := NewSendSMSAction(map[string]any{"message": "hello"}, deps)

	leadID := "lead-1"
	_, err := action.Execute(context.Background(), models.TriggerEvent{
		Type:   models.TriggerLeadCreated,
		LeadID: &leadID,
	}, testLogger())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "carrier rejected")
}
