// Package events defines the lifecycle notifications emitted by the
// automation engine and the campaign scheduler.
package events

import (
	"time"

	"github.com/josh9381/estatepulse/pkg/models"
)

type EventType string

// Kafka topic carrying all lifecycle events.
const Topic = "estatepulse.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	// Automation lifecycle events.
	TriggerFiredEvent       EventType = "automation.trigger.fired"
	ExecutionStartedEvent   EventType = "automation.execution.started"
	ExecutionCompletedEvent EventType = "automation.execution.completed"
	ExecutionFailedEvent    EventType = "automation.execution.failed"

	// Campaign lifecycle events.
	CampaignSendStartedEvent   EventType = "campaign.send.started"
	CampaignSendCompletedEvent EventType = "campaign.send.completed"
	CampaignPausedEvent        EventType = "campaign.paused"
)

type BaseEvent struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// TriggerFired is published when a trigger event matched at least one
// active workflow.
type TriggerFired struct {
	BaseEvent

	TriggerType models.TriggerType `json:"trigger_type"`
	LeadID      string             `json:"lead_id,omitempty"`
	Matched     int                `json:"matched"`
}

func (e TriggerFired) GetType() EventType {
	return TriggerFiredEvent
}

type ExecutionStarted struct {
	BaseEvent

	WorkflowID  string `json:"workflow_id"`
	ExecutionID string `json:"execution_id"`
}

func (e ExecutionStarted) GetType() EventType {
	return ExecutionStartedEvent
}

type ExecutionCompleted struct {
	BaseEvent

	WorkflowID  string        `json:"workflow_id"`
	ExecutionID string        `json:"execution_id"`
	Actions     int           `json:"actions"`
	Duration    time.Duration `json:"duration"`
}

func (e ExecutionCompleted) GetType() EventType {
	return ExecutionCompletedEvent
}

type ExecutionFailed struct {
	BaseEvent

	WorkflowID  string        `json:"workflow_id"`
	ExecutionID string        `json:"execution_id"`
	Error       string        `json:"error"`
	Duration    time.Duration `json:"duration"`
}

func (e ExecutionFailed) GetType() EventType {
	return ExecutionFailedEvent
}

type CampaignSendStarted struct {
	BaseEvent

	CampaignID string              `json:"campaign_id"`
	Kind       models.CampaignType `json:"kind"`
	Recipients int                 `json:"recipients"`
}

func (e CampaignSendStarted) GetType() EventType {
	return CampaignSendStartedEvent
}

type CampaignSendCompleted struct {
	BaseEvent

	CampaignID string `json:"campaign_id"`
	Sent       int    `json:"sent"`
	Failed     int    `json:"failed"`
}

func (e CampaignSendCompleted) GetType() EventType {
	return CampaignSendCompletedEvent
}

// CampaignPaused is published when the scheduler parks a campaign after a
// send or recurrence failure. Operators resume it manually.
type CampaignPaused struct {
	BaseEvent

	CampaignID string `json:"campaign_id"`
	Reason     string `json:"reason"`
}

func (e CampaignPaused) GetType() EventType {
	return CampaignPausedEvent
}
