package models

// TriggerEvent is an ephemeral business occurrence (lead created, status
// changed, campaign completed) handed to the trigger dispatcher. It is
// constructed by callers and has no independent lifecycle; it is never
// persisted, only captured as execution metadata.
type TriggerEvent struct {
	Type   TriggerType    `json:"type"`
	Data   map[string]any `json:"data,omitempty"`
	LeadID *string        `json:"lead_id,omitempty"`
	UserID *string        `json:"user_id,omitempty"`
}
