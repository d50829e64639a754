package models

import "time"

// ActivityType classifies audit entries on a lead's timeline.
type ActivityType string

const (
	ActivityStatusChanged ActivityType = "status_changed"
	ActivityTagAdded      ActivityType = "tag_added"
	ActivityNoteAdded     ActivityType = "note_added"
	ActivityMessageSent   ActivityType = "message_sent"
)

// Activity is an append-only audit record on a lead, written by workflow
// actions alongside their side effects.
type Activity struct {
	ID          string         `json:"id"`
	LeadID      string         `json:"lead_id"`
	Type        ActivityType   `json:"type"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
