// Package persistence provides the data storage abstraction for workflows,
// executions, campaigns and CRM entities.
package persistence

import (
	"context"
	"time"

	"github.com/josh9381/estatepulse/pkg/models"
)

// Persistence is the storage dependency injected into every component.
// Implementations must be safe for concurrent use.
type Persistence interface {
	Workflows() WorkflowRepository
	Executions() ExecutionRepository
	Campaigns() CampaignRepository
	Leads() LeadRepository
	Tasks() TaskRepository
	Tags() TagRepository
	Activities() ActivityRepository

	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

type WorkflowRepository interface {
	GetAll(ctx context.Context) ([]*models.Workflow, error)
	GetByID(ctx context.Context, id string) (*models.Workflow, error)
	Save(ctx context.Context, workflow *models.Workflow) error
	Delete(ctx context.Context, id string) error

	// ActiveByTriggerType returns all active workflows registered for the
	// given trigger type.
	ActiveByTriggerType(ctx context.Context, triggerType models.TriggerType) ([]*models.Workflow, error)

	// RecordRun increments the execution counter and stamps last_run_at.
	// Called only after a fully successful run.
	RecordRun(ctx context.Context, id string, at time.Time) error

	// DueTimeBased returns active time_based workflows whose next_run_at has
	// passed.
	DueTimeBased(ctx context.Context, now time.Time) ([]*models.Workflow, error)

	UpdateNextRunAt(ctx context.Context, id string, next *time.Time) error
}

type ExecutionRepository interface {
	Create(ctx context.Context, execution *models.WorkflowExecution) error
	MarkSuccess(ctx context.Context, id string, completedAt time.Time) error
	MarkFailed(ctx context.Context, id string, message string, completedAt time.Time) error
	GetByWorkflow(ctx context.Context, workflowID string, limit int) ([]*models.WorkflowExecution, error)
}

type CampaignRepository interface {
	GetByID(ctx context.Context, id string) (*models.Campaign, error)
	Save(ctx context.Context, campaign *models.Campaign) error

	// DueOneTime returns scheduled, non-recurring campaigns whose start date
	// has passed.
	DueOneTime(ctx context.Context, now time.Time) ([]*models.Campaign, error)

	// DueRecurring returns active recurring campaigns whose next_send_at has
	// passed.
	DueRecurring(ctx context.Context, now time.Time) ([]*models.Campaign, error)

	// Claim transitions a campaign from one status to another with a
	// conditional update. It reports false when the campaign was not in the
	// expected status, meaning another sweep already claimed it.
	Claim(ctx context.Context, id string, from, to models.CampaignStatus) (bool, error)

	IncrementSent(ctx context.Context, id string, count int) error
	Stats(ctx context.Context, now time.Time) (*models.CampaignStats, error)
}

type LeadRepository interface {
	GetByID(ctx context.Context, id string) (*models.Lead, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Lead, error)
	Filter(ctx context.Context, filter models.LeadFilter) ([]*models.Lead, error)
	Save(ctx context.Context, lead *models.Lead) error
	UpdateStatus(ctx context.Context, id string, status models.LeadStatus) error
}

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
}

type TagRepository interface {
	GetByID(ctx context.Context, id string) (*models.Tag, error)
	Save(ctx context.Context, tag *models.Tag) error
	AttachToLead(ctx context.Context, tagID, leadID string) error
}

type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
}
