// Package messaging defines the outbound email/SMS collaborator contracts.
// Concrete provider integrations live outside this repository; the engine
// only depends on these interfaces.
package messaging

import "context"

// SendResult is the provider-level outcome of a single send.
type SendResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Message is one personalized outbound message in a bulk send.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body"`
	LeadID  string `json:"lead_id,omitempty"`
}

// BulkResult aggregates provider-level outcomes of a bulk send.
type BulkResult struct {
	Sent   int      `json:"sent"`
	Failed int      `json:"failed"`
	Errors []string `json:"errors,omitempty"`
}

// EmailSender sends transactional and bulk email. Bulk implementations
// enforce their own inter-message delay to respect provider rate limits,
// which makes campaign send time scale linearly with audience size.
type EmailSender interface {
	Send(ctx context.Context, to, subject, html string, leadID string) SendResult
	SendTemplate(ctx context.Context, templateID, to string, data map[string]any, leadID string) SendResult
	SendBulk(ctx context.Context, messages []Message, campaignID string) BulkResult
}

// SMSSender sends transactional and bulk SMS with the same contract shape as
// EmailSender.
type SMSSender interface {
	Send(ctx context.Context, to, message string, leadID string) SendResult
	SendTemplate(ctx context.Context, templateID, to string, data map[string]any, leadID string) SendResult
	SendBulk(ctx context.Context, messages []Message, campaignID string) BulkResult
}
