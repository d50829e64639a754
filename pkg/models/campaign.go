package models

import "time"

// CampaignType selects the message channel for a campaign.
type CampaignType string

const (
	CampaignTypeEmail CampaignType = "email"
	CampaignTypeSMS   CampaignType = "sms"
)

// CampaignStatus is the lifecycle state of a campaign. The status field is
// also the scheduler's claim mechanism: a campaign moves to SENDING before it
// is executed so a second sweep will not re-select it.
type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusScheduled CampaignStatus = "scheduled"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusSending   CampaignStatus = "sending"
	CampaignStatusCompleted CampaignStatus = "completed"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCancelled CampaignStatus = "cancelled"
)

// Campaign is a scheduled or recurring bulk email/SMS send targeting a
// computed lead audience. After creation it is mutated exclusively by the
// scheduler and executor.
//
// Invariants: a non-recurring campaign never has a non-nil NextSendAt; a
// recurring campaign has a nil NextSendAt only when completed or never yet
// armed.
type Campaign struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"    validate:"required,min=3"`
	Type           CampaignType       `json:"type"    validate:"required"`
	Status         CampaignStatus     `json:"status"`
	Subject        string             `json:"subject"`
	Body           string             `json:"body"`
	IsRecurring    bool               `json:"is_recurring"`
	Frequency      Frequency          `json:"frequency,omitempty"`
	Pattern        *RecurrencePattern `json:"recurring_pattern,omitempty"`
	OccurrenceCount int                `json:"occurrence_count"`
	MaxOccurrences *int               `json:"max_occurrences,omitempty"`
	NextSendAt     *time.Time         `json:"next_send_at,omitempty"`
	LastSentAt     *time.Time         `json:"last_sent_at,omitempty"`
	StartDate      *time.Time         `json:"start_date,omitempty"`
	EndDate        *time.Time         `json:"end_date,omitempty"`
	Sent           int                `json:"sent"`
	TagIDs         []string           `json:"tag_ids,omitempty"`
	MinScore       int                `json:"min_score,omitempty"`
	LeadStatus     LeadStatus         `json:"lead_status,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// ReachedLimit reports whether the campaign has exhausted its occurrence
// budget or passed its end date at the given instant.
func (c *Campaign) ReachedLimit(now time.Time) bool {
	if c.MaxOccurrences != nil && c.OccurrenceCount >= *c.MaxOccurrences {
		return true
	}

	if c.EndDate != nil && now.After(*c.EndDate) {
		return true
	}

	return false
}

// CampaignStats are the read-only dashboard counts exposed by the scheduler.
type CampaignStats struct {
	Scheduled int `json:"scheduled"`
	Recurring int `json:"recurring"`
	Overdue   int `json:"overdue"`
	DueNow    int `json:"due_now"`
}
