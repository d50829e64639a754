package models

import "time"

// LeadStatus tracks where a lead sits in the sales funnel.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusLost      LeadStatus = "lost"
)

// Lead is a CRM contact record, the primary target of workflow actions and
// campaign sends.
type Lead struct {
	ID        string     `json:"id"`
	FirstName string     `json:"first_name" validate:"required"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"      validate:"omitempty,email"`
	Phone     string     `json:"phone"`
	Company   string     `json:"company"`
	Status    LeadStatus `json:"status"`
	Score     int        `json:"score"`
	TagIDs    []string   `json:"tag_ids,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Name returns the lead's display name.
func (l *Lead) Name() string {
	if l.LastName == "" {
		return l.FirstName
	}

	return l.FirstName + " " + l.LastName
}

// LeadFilter selects a campaign audience. Zero-valued fields are ignored.
type LeadFilter struct {
	Status   LeadStatus
	MinScore int
	TagIDs   []string
}
