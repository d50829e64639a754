package messaging

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// LogSender is the development implementation of both sender contracts: it
// logs every message instead of delivering it. Bulk sends honor the
// configured inter-message delay so local behavior matches a real provider's
// throttling.
type LogSender struct {
	channel string
	delay   time.Duration
	logger  *slog.Logger
}

// NewLogEmailSender creates a logging email sender.
func NewLogEmailSender(logger *slog.Logger, delay time.Duration) *LogSender {
	return &LogSender{channel: "email", delay: delay, logger: logger.With("module", "log_sender", "channel", "email")}
}

// NewLogSMSSender creates a logging SMS sender.
func NewLogSMSSender(logger *slog.Logger, delay time.Duration) *LogSMSSender {
	return &LogSMSSender{LogSender{channel: "sms", delay: delay, logger: logger.With("module", "log_sender", "channel", "sms")}}
}

// LogSMSSender adapts LogSender to the SMSSender contract, which has no
// subject line.
type LogSMSSender struct {
	LogSender
}

func (s *LogSMSSender) Send(ctx context.Context, to, message string, leadID string) SendResult {
	return s.LogSender.Send(ctx, to, "", message, leadID)
}

func (s *LogSender) Send(ctx context.Context, to, subject, body string, leadID string) SendResult {
	s.logger.InfoContext(ctx, "Sending message",
		"to", to,
		"subject", subject,
		"lead_id", leadID,
		"body_length", len(body))

	return SendResult{Success: true, MessageID: uuid.New().String()}
}

func (s *LogSender) SendTemplate(ctx context.Context, templateID, to string, data map[string]any, leadID string) SendResult {
	s.logger.InfoContext(ctx, "Sending templated message",
		"template_id", templateID,
		"to", to,
		"lead_id", leadID)

	return SendResult{Success: true, MessageID: uuid.New().String()}
}

func (s *LogSender) SendBulk(ctx context.Context, messages []Message, campaignID string) BulkResult {
	var result BulkResult

	for i, message := range messages {
		if i > 0 && s.delay > 0 {
			select {
			case <-ctx.Done():
				result.Failed += len(messages) - i
				result.Errors = append(result.Errors, ctx.Err().Error())

				return result
			case <-time.After(s.delay):
			}
		}

		res := s.Send(ctx, message.To, message.Subject, message.Body, message.LeadID)
		if res.Success {
			result.Sent++
		} else {
			result.Failed++
			result.Errors = append(result.Errors, res.Error)
		}
	}

	s.logger.InfoContext(ctx, "Bulk send completed",
		"campaign_id", campaignID,
		"sent", result.Sent,
		"failed", result.Failed)

	return result
}
