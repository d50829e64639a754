// Package campaign implements bulk campaign execution and the periodic
// scheduler sweep for one-time and recurring campaigns.
package campaign

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/josh9381/estatepulse/pkg/eventbus"
	"github.com/josh9381/estatepulse/pkg/events"
	"github.com/josh9381/estatepulse/pkg/messaging"
	"github.com/josh9381/estatepulse/pkg/models"
	"github.com/josh9381/estatepulse/pkg/persistence"
	"github.com/josh9381/estatepulse/pkg/template"
)

// ExecuteRequest selects the audience of one campaign send. Explicit LeadIDs
// take precedence over campaign filters.
type ExecuteRequest struct {
	CampaignID string
	LeadIDs    []string
	Filter     *models.LeadFilter
}

// ExecuteResult is the aggregate outcome of one campaign send.
type ExecuteResult struct {
	Success    bool     `json:"success"`
	TotalLeads int      `json:"total_leads"`
	Sent       int      `json:"sent"`
	Failed     int      `json:"failed"`
	Message    string   `json:"message,omitempty"`
	Errors     []string `json:"errors,omitempty"`
}

// Executor resolves a campaign's audience, renders per-lead content and
// performs the throttled bulk send.
type Executor struct {
	persistence persistence.Persistence
	email       messaging.EmailSender
	sms         messaging.SMSSender
	eventBus    eventbus.EventBus
	logger      *slog.Logger
}

func NewExecutor(
	persistence persistence.Persistence,
	email messaging.EmailSender,
	sms messaging.SMSSender,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
) *Executor {
	return &Executor{
		persistence: persistence,
		email:       email,
		sms:         sms,
		eventBus:    eventBus,
		logger:      logger.With("module", "campaign_executor"),
	}
}

// Execute sends one campaign occurrence. An empty audience is a success with
// sent = 0, not an error. The bulk senders enforce their own inter-message
// delay, so send time grows linearly with audience size.
func (e *Executor) Execute(ctx context.Context, req ExecuteRequest) (*ExecuteResult, error) {
	logger := e.logger.With("campaign_id", req.CampaignID)

	campaign, err := e.persistence.Campaigns().GetByID(ctx, req.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign %s: %w", req.CampaignID, err)
	}

	leads, err := e.resolveAudience(ctx, campaign, req)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve audience: %w", err)
	}

	if len(leads) == 0 {
		logger.InfoContext(ctx, "Campaign has no matching leads")

		return &ExecuteResult{Success: true, Message: "no leads matched the campaign audience"}, nil
	}

	if err := e.markActive(ctx, campaign); err != nil {
		return nil, err
	}

	e.publish(ctx, campaign.ID, events.CampaignSendStarted{
		BaseEvent:  e.baseEvent(events.CampaignSendStartedEvent),
		CampaignID: campaign.ID,
		Kind:       campaign.Type,
		Recipients: len(leads),
	})

	messages, skipped := e.renderMessages(ctx, campaign, leads, logger)

	var bulk messaging.BulkResult

	switch campaign.Type {
	case models.CampaignTypeSMS:
		bulk = e.sms.SendBulk(ctx, messages, campaign.ID)
	case models.CampaignTypeEmail:
		bulk = e.email.SendBulk(ctx, messages, campaign.ID)
	default:
		return nil, fmt.Errorf("unsupported campaign type: %s", campaign.Type)
	}

	if bulk.Sent > 0 {
		if err := e.persistence.Campaigns().IncrementSent(ctx, campaign.ID, bulk.Sent); err != nil {
			logger.ErrorContext(ctx, "Failed to increment sent counter", "error", err)
		}
	}

	e.publish(ctx, campaign.ID, events.CampaignSendCompleted{
		BaseEvent:  e.baseEvent(events.CampaignSendCompletedEvent),
		CampaignID: campaign.ID,
		Sent:       bulk.Sent,
		Failed:     bulk.Failed + skipped,
	})

	logger.InfoContext(ctx, "Campaign send finished",
		"total", len(leads), "sent", bulk.Sent, "failed", bulk.Failed+skipped)

	return &ExecuteResult{
		Success:    bulk.Failed == 0,
		TotalLeads: len(leads),
		Sent:       bulk.Sent,
		Failed:     bulk.Failed + skipped,
		Errors:     bulk.Errors,
	}, nil
}

// resolveAudience picks explicit lead ids when given, otherwise filters by
// the campaign's tags, lead status and minimum score.
func (e *Executor) resolveAudience(ctx context.Context, campaign *models.Campaign, req ExecuteRequest) ([]*models.Lead, error) {
	if len(req.LeadIDs) > 0 {
		return e.persistence.Leads().GetByIDs(ctx, req.LeadIDs)
	}

	filter := models.LeadFilter{
		Status:   campaign.LeadStatus,
		MinScore: campaign.MinScore,
		TagIDs:   campaign.TagIDs,
	}

	if req.Filter != nil {
		if req.Filter.Status != "" {
			filter.Status = req.Filter.Status
		}

		if req.Filter.MinScore > 0 {
			filter.MinScore = req.Filter.MinScore
		}

		if len(req.Filter.TagIDs) > 0 {
			filter.TagIDs = req.Filter.TagIDs
		}
	}

	return e.persistence.Leads().Filter(ctx, filter)
}

// renderMessages personalizes the campaign body per lead. Leads without a
// usable address and leads whose template fails to render are counted as
// failures without aborting the batch.
func (e *Executor) renderMessages(ctx context.Context, campaign *models.Campaign, leads []*models.Lead, logger *slog.Logger) ([]messaging.Message, int) {
	messages := make([]messaging.Message, 0, len(leads))
	skipped := 0

	for _, lead := range leads {
		to := lead.Email
		if campaign.Type == models.CampaignTypeSMS {
			to = lead.Phone
		}

		if to == "" {
			logger.WarnContext(ctx, "Lead has no address for channel",
				"lead_id", lead.ID, "channel", campaign.Type)

			skipped++

			continue
		}

		body, err := template.RenderLead(campaign.Body, lead, nil)
		if err != nil {
			logger.WarnContext(ctx, "Failed to render campaign body",
				"lead_id", lead.ID, "error", err)

			skipped++

			continue
		}

		subject := campaign.Subject
		if subject != "" {
			if rendered, err := template.RenderLead(subject, lead, nil); err == nil {
				subject = rendered
			}
		}

		messages = append(messages, messaging.Message{
			To:      to,
			Subject: subject,
			Body:    body,
			LeadID:  lead.ID,
		})
	}

	return messages, skipped
}

// markActive moves a campaign into ACTIVE and stamps its start date on first
// send.
func (e *Executor) markActive(ctx context.Context, campaign *models.Campaign) error {
	now := time.Now().UTC()

	changed := false

	if campaign.Status != models.CampaignStatusActive {
		campaign.Status = models.CampaignStatusActive
		changed = true
	}

	if campaign.StartDate == nil {
		campaign.StartDate = &now
		changed = true
	}

	if !changed {
		return nil
	}

	return e.persistence.Campaigns().Save(ctx, campaign)
}

func (e *Executor) publish(ctx context.Context, key string, event eventbus.Event) {
	if e.eventBus == nil {
		return
	}

	if err := e.eventBus.Publish(ctx, key, event); err != nil {
		e.logger.WarnContext(ctx, "Failed to publish campaign event",
			"event_type", event.GetType(), "error", err)
	}
}

func (e *Executor) baseEvent(eventType events.EventType) events.BaseEvent {
	id := uuid.New().String()
	if e.eventBus != nil {
		id = e.eventBus.GenerateID()
	}

	return events.BaseEvent{
		ID:        id,
		Type:      eventType,
		Timestamp: time.Now().UTC(),
	}
}
