package campaign

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/josh9381/estatepulse/pkg/automation"
	"github.com/josh9381/estatepulse/pkg/cache"
	"github.com/josh9381/estatepulse/pkg/eventbus"
	"github.com/josh9381/estatepulse/pkg/events"
	"github.com/josh9381/estatepulse/pkg/models"
	"github.com/josh9381/estatepulse/pkg/persistence"
)

const (
	// DefaultSweepInterval is how often the scheduler checks for due work.
	DefaultSweepInterval = 60 * time.Second

	statsCacheKey = "campaigns:stats"
	statsCacheTTL = 30 * time.Second
)

// Scheduler periodically claims due campaigns and time based workflows and
// runs them. The SENDING status transition is the claim: a conditional
// update on the current status, so a concurrent sweep loses the race and
// skips the campaign.
type Scheduler struct {
	persistence persistence.Persistence
	executor    *Executor
	engine      *automation.Engine
	cache       cache.Cache
	eventBus    eventbus.EventBus
	logger      *slog.Logger
	interval    time.Duration
}

func NewScheduler(
	persistence persistence.Persistence,
	executor *Executor,
	engine *automation.Engine,
	statsCache cache.Cache,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
) *Scheduler {
	return &Scheduler{
		persistence: persistence,
		executor:    executor,
		engine:      engine,
		cache:       statsCache,
		eventBus:    eventBus,
		logger:      logger.With("module", "campaign_scheduler"),
		interval:    DefaultSweepInterval,
	}
}

// WithInterval overrides the sweep interval, mainly for tests.
func (s *Scheduler) WithInterval(interval time.Duration) *Scheduler {
	s.interval = interval

	return s
}

// Run sweeps on a fixed interval until the context is cancelled. The first
// sweep happens immediately.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Campaign scheduler started", "interval", s.interval.String())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "Campaign scheduler stopped")

			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	s.CheckAndExecuteScheduledCampaigns(ctx)
	s.SweepTimeBasedWorkflows(ctx)
}

// CheckAndExecuteScheduledCampaigns processes due one-time and recurring
// campaigns. Campaigns are isolated from each other: a failure parks that
// campaign in PAUSED and the sweep moves on.
func (s *Scheduler) CheckAndExecuteScheduledCampaigns(ctx context.Context) {
	now := time.Now().UTC()

	oneTime, err := s.persistence.Campaigns().DueOneTime(ctx, now)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to query due one-time campaigns", "error", err)
	}

	for _, c := range oneTime {
		s.processOneTime(ctx, c)
	}

	recurring, err := s.persistence.Campaigns().DueRecurring(ctx, now)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to query due recurring campaigns", "error", err)
	}

	for _, c := range recurring {
		s.processRecurring(ctx, c)
	}
}

func (s *Scheduler) processOneTime(ctx context.Context, c *models.Campaign) {
	logger := s.logger.With("campaign_id", c.ID)

	claimed, err := s.persistence.Campaigns().Claim(ctx, c.ID, models.CampaignStatusScheduled, models.CampaignStatusSending)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to claim campaign", "error", err)

		return
	}

	if !claimed {
		logger.DebugContext(ctx, "Campaign already claimed by another sweep")

		return
	}

	logger.InfoContext(ctx, "Executing one-time campaign")

	result, err := s.executor.Execute(ctx, ExecuteRequest{CampaignID: c.ID})
	if err != nil || !result.Success {
		s.pause(ctx, c, failureReason(result, err))

		return
	}

	now := time.Now().UTC()
	c.Status = models.CampaignStatusCompleted
	c.EndDate = &now
	c.LastSentAt = &now

	if err := s.persistence.Campaigns().Save(ctx, c); err != nil {
		logger.ErrorContext(ctx, "Failed to complete campaign", "error", err)
	}
}

func (s *Scheduler) processRecurring(ctx context.Context, c *models.Campaign) {
	logger := s.logger.With("campaign_id", c.ID)

	claimed, err := s.persistence.Campaigns().Claim(ctx, c.ID, models.CampaignStatusActive, models.CampaignStatusSending)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to claim campaign", "error", err)

		return
	}

	if !claimed {
		logger.DebugContext(ctx, "Campaign already claimed by another sweep")

		return
	}

	logger.InfoContext(ctx, "Executing recurring campaign", "occurrence", c.OccurrenceCount+1)

	result, err := s.executor.Execute(ctx, ExecuteRequest{CampaignID: c.ID})
	if err != nil || !result.Success {
		s.pause(ctx, c, failureReason(result, err))

		return
	}

	now := time.Now().UTC()
	c.OccurrenceCount++
	c.LastSentAt = &now

	if c.ReachedLimit(now) {
		logger.InfoContext(ctx, "Recurring campaign reached its limit",
			"occurrences", c.OccurrenceCount)

		c.Status = models.CampaignStatusCompleted
		c.NextSendAt = nil
	} else {
		next, err := models.NextSendDate(now, c.Frequency, c.Pattern)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to compute next send date",
				"frequency", c.Frequency, "error", err)
			s.pause(ctx, c, fmt.Sprintf("recurrence calculation failed: %v", err))

			return
		}

		c.Status = models.CampaignStatusActive
		c.NextSendAt = &next
	}

	if err := s.persistence.Campaigns().Save(ctx, c); err != nil {
		logger.ErrorContext(ctx, "Failed to re-arm campaign", "error", err)
	}
}

// pause parks a campaign for manual intervention. PAUSED is the user visible
// signal that a campaign needs attention; nothing re-queues it automatically.
func (s *Scheduler) pause(ctx context.Context, c *models.Campaign, reason string) {
	s.logger.WarnContext(ctx, "Pausing campaign", "campaign_id", c.ID, "reason", reason)

	c.Status = models.CampaignStatusPaused

	if err := s.persistence.Campaigns().Save(ctx, c); err != nil {
		s.logger.ErrorContext(ctx, "Failed to pause campaign",
			"campaign_id", c.ID, "error", err)
	}

	if s.eventBus == nil {
		return
	}

	event := events.CampaignPaused{
		BaseEvent: events.BaseEvent{
			ID:        uuid.New().String(),
			Type:      events.CampaignPausedEvent,
			Timestamp: time.Now().UTC(),
		},
		CampaignID: c.ID,
		Reason:     reason,
	}

	if err := s.eventBus.Publish(ctx, c.ID, event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish pause event", "error", err)
	}
}

// SweepTimeBasedWorkflows runs due time based workflows through the engine
// and re-arms their next run from the cron expression.
func (s *Scheduler) SweepTimeBasedWorkflows(ctx context.Context) {
	now := time.Now().UTC()

	due, err := s.persistence.Workflows().DueTimeBased(ctx, now)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to query due time based workflows", "error", err)

		return
	}

	for _, workflow := range due {
		logger := s.logger.With("workflow_id", workflow.ID)

		event := models.TriggerEvent{
			Type: models.TriggerTimeBased,
			Data: map[string]any{"scheduled_at": now.Format(time.RFC3339)},
		}

		if _, err := s.engine.Execute(ctx, workflow, event); err != nil {
			logger.ErrorContext(ctx, "Time based workflow failed", "error", err)
		}

		if err := workflow.UpdateNextRunAt(now); err != nil {
			logger.ErrorContext(ctx, "Failed to compute next run, disarming workflow", "error", err)

			workflow.NextRunAt = nil
		}

		if err := s.persistence.Workflows().UpdateNextRunAt(ctx, workflow.ID, workflow.NextRunAt); err != nil {
			logger.ErrorContext(ctx, "Failed to persist next run", "error", err)
		}
	}
}

// GetScheduledCampaignsStats returns dashboard counts, served from the cache
// when fresh. Cache trouble falls through to the database.
func (s *Scheduler) GetScheduledCampaignsStats(ctx context.Context) (*models.CampaignStats, error) {
	if s.cache != nil {
		var cached models.CampaignStats
		if err := s.cache.GetJSON(ctx, statsCacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	stats, err := s.persistence.Campaigns().Stats(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, statsCacheKey, stats, statsCacheTTL); err != nil {
			s.logger.DebugContext(ctx, "Failed to cache campaign stats", "error", err)
		}
	}

	return stats, nil
}

func failureReason(result *ExecuteResult, err error) string {
	if err != nil {
		return err.Error()
	}

	if result != nil && len(result.Errors) > 0 {
		return fmt.Sprintf("%d of %d sends failed: %s", result.Failed, result.TotalLeads, result.Errors[0])
	}

	if result != nil {
		return fmt.Sprintf("%d of %d sends failed", result.Failed, result.TotalLeads)
	}

	return "campaign execution failed"
}
