package mocks

import (
	"context"

	"github.com/josh9381/estatepulse/pkg/messaging"
	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of messaging.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, to, subject, html string, leadID string) messaging.SendResult {
	args := m.Called(ctx, to, subject, html, leadID)

	result, _ := args.Get(0).(messaging.SendResult)

	return result
}

func (m *MockEmailSender) SendTemplate(ctx context.Context, templateID, to string, data map[string]any, leadID string) messaging.SendResult {
	args := m.Called(ctx, templateID, to, data, leadID)

	result, _ := args.Get(0).(messaging.SendResult)

	return result
}

func (m *MockEmailSender) SendBulk(ctx context.Context, messages []messaging.Message, campaignID string) messaging.BulkResult {
	args := m.Called(ctx, messages, campaignID)

	result, _ := args.Get(0).(messaging.BulkResult)

	return result
}

// MockSMSSender is a mock implementation of messaging.SMSSender.
type MockSMSSender struct {
	mock.Mock
}

func (m *MockSMSSender) Send(ctx context.Context, to, message string, leadID string) messaging.SendResult {
	args := m.Called(ctx, to, message, leadID)

	result, _ := args.Get(0).(messaging.SendResult)

	return result
}

func (m *MockSMSSender) SendTemplate(ctx context.Context, templateID, to string, data map[string]any, leadID string) messaging.SendResult {
	args := m.Called(ctx, templateID, to, data, leadID)

	result, _ := args.Get(0).(messaging.SendResult)

	return result
}

func (m *MockSMSSender) SendBulk(ctx context.Context, messages []messaging.Message, campaignID string) messaging.BulkResult {
	args := m.Called(ctx, messages, campaignID)

	result, _ := args.Get(0).(messaging.BulkResult)

	return result
}
