// Package send_sms implements the workflow action that texts the lead a
// trigger event refers to.
package send_sms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/josh9381/estatepulse/pkg/messaging"
	"github.com/josh9381/estatepulse/pkg/models"
	"github.com/josh9381/estatepulse/pkg/protocol"
)

var ErrMissingLead = errors.New("send_sms action requires a lead")

type SendSMSAction struct {
	TemplateID string
	Message    string

	deps protocol.Dependencies
}

func NewSendSMSAction(config map[string]any, deps protocol.Dependencies) *SendSMSAction {
	templateID, _ := config["template_id"].(string)
	message, _ := config["message"].(string)

	return &SendSMSAction{
		TemplateID: templateID,
		Message:    message,
		deps:       deps,
	}
}

func (a *SendSMSAction) Execute(ctx context.Context, event models.TriggerEvent, logger *slog.Logger) (map[string]any, error) {
	logger = logger.With("action_type", "send_sms")

	if event.LeadID == nil {
		return nil, ErrMissingLead
	}

	lead, err := a.deps.Persistence.Leads().GetByID(ctx, *event.LeadID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lead %s: %w", *event.LeadID, err)
	}

	var result messaging.SendResult

	if a.TemplateID != "" {
		result = a.deps.SMS.SendTemplate(ctx, a.TemplateID, lead.Phone, event.Data, lead.ID)
	} else {
		result = a.deps.SMS.Send(ctx, lead.Phone, a.Message, lead.ID)
	}

	if !result.Success {
		return nil, fmt.Errorf("sms send failed: %s", result.Error)
	}

	logger.InfoContext(ctx, "SMS sent", "to", lead.Phone, "message_id", result.MessageID)

	return map[string]any{
		"message_id": result.MessageID,
		"to":         lead.Phone,
	}, nil
}
