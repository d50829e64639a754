package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/josh9381/estatepulse/pkg/models"
	"github.com/josh9381/estatepulse/pkg/persistence"
)

const campaignColumns = `
	c.id
  , c.name
  , c.type
  , c.status
  , c.subject
  , c.body
  , c.is_recurring
  , c.frequency
  , c.recurring_pattern
  , c.occurrence_count
  , c.max_occurrences
  , c.next_send_at
  , c.last_sent_at
  , c.start_date
  , c.end_date
  , c.sent
  , c.min_score
  , c.lead_status
  , c.created_at
  , c.updated_at
  , COALESCE(ARRAY_AGG(ct.tag_id::text) FILTER (WHERE ct.tag_id IS NOT NULL), '{}')
`

const campaignFrom = `
	FROM campaigns c
	LEFT JOIN campaign_tags ct ON ct.campaign_id = c.id
`

// CampaignRepository handles campaign-related database operations.
type CampaignRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewCampaignRepository creates a new campaign repository.
func NewCampaignRepository(db *sql.DB, logger *slog.Logger) *CampaignRepository {
	return &CampaignRepository{db: db, logger: logger}
}

// GetByID returns a campaign by its ID.
func (r *CampaignRepository) GetByID(ctx context.Context, id string) (*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + campaignFrom + ` WHERE c.id = $1 GROUP BY c.id`

	row := r.db.QueryRowContext(ctx, query, id)

	campaign, err := scanCampaign(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.ErrCampaignNotFound
		}

		return nil, fmt.Errorf("failed to scan campaign: %w", err)
	}

	return campaign, nil
}

// DueOneTime returns scheduled non-recurring campaigns whose start date has passed.
func (r *CampaignRepository) DueOneTime(ctx context.Context, now time.Time) ([]*models.Campaign, error) {
	query := `
		SELECT ` + campaignColumns + campaignFrom + `
		WHERE c.status = $1 AND c.is_recurring = false AND c.start_date IS NOT NULL AND c.start_date <= $2
		GROUP BY c.id
		ORDER BY c.start_date
	`

	return r.queryCampaigns(ctx, query, models.CampaignStatusScheduled, now)
}

// DueRecurring returns active recurring campaigns whose next send has passed.
func (r *CampaignRepository) DueRecurring(ctx context.Context, now time.Time) ([]*models.Campaign, error) {
	query := `
		SELECT ` + campaignColumns + campaignFrom + `
		WHERE c.status = $1 AND c.is_recurring = true AND c.next_send_at IS NOT NULL AND c.next_send_at <= $2
		GROUP BY c.id
		ORDER BY c.next_send_at
	`

	return r.queryCampaigns(ctx, query, models.CampaignStatusActive, now)
}

// Claim performs a conditional status transition. The affected-row count is
// the claim: false means the campaign was no longer in the expected status
// and must be skipped.
func (r *CampaignRepository) Claim(ctx context.Context, id string, from, to models.CampaignStatus) (bool, error) {
	query := `UPDATE campaigns SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`

	result, err := r.db.ExecContext(ctx, query, id, from, to)
	if err != nil {
		return false, fmt.Errorf("failed to claim campaign: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// Save upserts a campaign and its tag links.
func (r *CampaignRepository) Save(ctx context.Context, campaign *models.Campaign) error {
	now := time.Now().UTC()

	if campaign.CreatedAt.IsZero() {
		campaign.CreatedAt = now
	}

	campaign.UpdatedAt = now

	if campaign.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate campaign ID: %w", err)
		}

		campaign.ID = id.String()
	}

	patternJSON, err := json.Marshal(campaign.Pattern)
	if err != nil {
		return fmt.Errorf("failed to marshal recurring pattern: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `
		INSERT INTO campaigns (id, name, type, status, subject, body, is_recurring, frequency,
			recurring_pattern, occurrence_count, max_occurrences, next_send_at, last_sent_at,
			start_date, end_date, sent, min_score, lead_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			type = EXCLUDED.type,
			status = EXCLUDED.status,
			subject = EXCLUDED.subject,
			body = EXCLUDED.body,
			is_recurring = EXCLUDED.is_recurring,
			frequency = EXCLUDED.frequency,
			recurring_pattern = EXCLUDED.recurring_pattern,
			occurrence_count = EXCLUDED.occurrence_count,
			max_occurrences = EXCLUDED.max_occurrences,
			next_send_at = EXCLUDED.next_send_at,
			last_sent_at = EXCLUDED.last_sent_at,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			min_score = EXCLUDED.min_score,
			lead_status = EXCLUDED.lead_status,
			updated_at = EXCLUDED.updated_at
	`

	_, err = tx.ExecContext(ctx, query,
		campaign.ID,
		campaign.Name,
		campaign.Type,
		campaign.Status,
		campaign.Subject,
		campaign.Body,
		campaign.IsRecurring,
		nullString(string(campaign.Frequency)),
		patternJSON,
		campaign.OccurrenceCount,
		campaign.MaxOccurrences,
		campaign.NextSendAt,
		campaign.LastSentAt,
		campaign.StartDate,
		campaign.EndDate,
		campaign.Sent,
		campaign.MinScore,
		campaign.LeadStatus,
		campaign.CreatedAt,
		campaign.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save campaign: %w", err)
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM campaign_tags WHERE campaign_id = $1`, campaign.ID)
	if err != nil {
		return fmt.Errorf("failed to delete campaign tags: %w", err)
	}

	for _, tagID := range campaign.TagIDs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO campaign_tags (campaign_id, tag_id) VALUES ($1, $2)`,
			campaign.ID, tagID)
		if err != nil {
			return fmt.Errorf("failed to save campaign tag: %w", err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// IncrementSent adds the provider-level success count to the campaign total.
func (r *CampaignRepository) IncrementSent(ctx context.Context, id string, count int) error {
	query := `UPDATE campaigns SET sent = sent + $2, updated_at = NOW() WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, count)
	if err != nil {
		return fmt.Errorf("failed to increment campaign sent count: %w", err)
	}

	return nil
}

// Stats returns the dashboard counts for scheduled and recurring campaigns.
func (r *CampaignRepository) Stats(ctx context.Context, now time.Time) (*models.CampaignStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'scheduled' AND is_recurring = false) AS scheduled,
			COUNT(*) FILTER (WHERE is_recurring = true AND status IN ('active', 'sending')) AS recurring,
			COUNT(*) FILTER (WHERE status = 'scheduled' AND is_recurring = false AND start_date < $1) AS overdue,
			COUNT(*) FILTER (WHERE
				(status = 'scheduled' AND is_recurring = false AND start_date <= $1)
				OR (status = 'active' AND is_recurring = true AND next_send_at <= $1)) AS due_now
		FROM campaigns
	`

	var stats models.CampaignStats

	err := r.db.QueryRowContext(ctx, query, now).Scan(
		&stats.Scheduled,
		&stats.Recurring,
		&stats.Overdue,
		&stats.DueNow,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query campaign stats: %w", err)
	}

	return &stats, nil
}

func (r *CampaignRepository) queryCampaigns(ctx context.Context, query string, args ...any) ([]*models.Campaign, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query campaigns: %w", err)
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	campaigns := make([]*models.Campaign, 0)

	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}

		campaigns = append(campaigns, campaign)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating campaigns: %w", err)
	}

	return campaigns, nil
}

func scanCampaign(scanner interface {
	Scan(dest ...any) error
}) (*models.Campaign, error) {
	var (
		campaign    models.Campaign
		frequency   sql.NullString
		patternJSON []byte
		tagIDs      pq.StringArray
	)

	err := scanner.Scan(
		&campaign.ID,
		&campaign.Name,
		&campaign.Type,
		&campaign.Status,
		&campaign.Subject,
		&campaign.Body,
		&campaign.IsRecurring,
		&frequency,
		&patternJSON,
		&campaign.OccurrenceCount,
		&campaign.MaxOccurrences,
		&campaign.NextSendAt,
		&campaign.LastSentAt,
		&campaign.StartDate,
		&campaign.EndDate,
		&campaign.Sent,
		&campaign.MinScore,
		&campaign.LeadStatus,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
		&tagIDs,
	)
	if err != nil {
		return nil, err
	}

	if frequency.Valid {
		campaign.Frequency = models.Frequency(frequency.String)
	}

	if patternJSON != nil && string(patternJSON) != "null" {
		err := json.Unmarshal(patternJSON, &campaign.Pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal recurring pattern: %w", err)
		}
	}

	campaign.TagIDs = tagIDs

	return &campaign, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
