// Package send_email implements the workflow action that emails the lead a
// trigger event refers to.
package send_email

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/josh9381/estatepulse/pkg/messaging"
	"github.com/josh9381/estatepulse/pkg/models"
	"github.com/josh9381/estatepulse/pkg/protocol"
)

var ErrMissingLead = errors.New("send_email action requires a lead")

type SendEmailAction struct {
	TemplateID string
	Subject    string
	Body       string

	deps protocol.Dependencies
}

func NewSendEmailAction(config map[string]any, deps protocol.Dependencies) *SendEmailAction {
	templateID, _ := config["template_id"].(string)
	subject, _ := config["subject"].(string)
	body, _ := config["body"].(string)

	return &SendEmailAction{
		TemplateID: templateID,
		Subject:    subject,
		Body:       body,
		deps:       deps,
	}
}

func (a *SendEmailAction) Execute(ctx context.Context, event models.TriggerEvent, logger *slog.Logger) (map[string]any, error) {
	logger = logger.With("action_type", "send_email")

	if event.LeadID == nil {
		return nil, ErrMissingLead
	}

	lead, err := a.deps.Persistence.Leads().GetByID(ctx, *event.LeadID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lead %s: %w", *event.LeadID, err)
	}

	var result messaging.SendResult

	if a.TemplateID != "" {
		result = a.deps.Email.SendTemplate(ctx, a.TemplateID, lead.Email, event.Data, lead.ID)
	} else {
		result = a.deps.Email.Send(ctx, lead.Email, a.Subject, a.Body, lead.ID)
	}

	if !result.Success {
		return nil, fmt.Errorf("email send failed: %s", result.Error)
	}

	logger.InfoContext(ctx, "Email sent", "to", lead.Email, "message_id", result.MessageID)

	return map[string]any{
		"message_id": result.MessageID,
		"to":         lead.Email,
	}, nil
}
