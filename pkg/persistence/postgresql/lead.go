package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/josh9381/estatepulse/pkg/models"
	"github.com/josh9381/estatepulse/pkg/persistence"
)

const leadColumns = `
	l.id
  , l.first_name
  , l.last_name
  , l.email
  , l.phone
  , l.company
  , l.status
  , l.score
  , l.created_at
  , l.updated_at
  , COALESCE(ARRAY_AGG(lt.tag_id::text) FILTER (WHERE lt.tag_id IS NOT NULL), '{}')
`

const leadFrom = `
	FROM leads l
	LEFT JOIN lead_tags lt ON lt.lead_id = l.id
`

// LeadRepository handles lead-related database operations.
type LeadRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewLeadRepository creates a new lead repository.
func NewLeadRepository(db *sql.DB, logger *slog.Logger) *LeadRepository {
	return &LeadRepository{db: db, logger: logger}
}

// GetByID returns a lead by its ID.
func (r *LeadRepository) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	query := `SELECT ` + leadColumns + leadFrom + ` WHERE l.id = $1 GROUP BY l.id`

	row := r.db.QueryRowContext(ctx, query, id)

	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.ErrLeadNotFound
		}

		return nil, fmt.Errorf("failed to scan lead: %w", err)
	}

	return lead, nil
}

// GetByIDs returns the leads matching the given IDs. Unknown IDs are silently
// omitted from the result.
func (r *LeadRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Lead, error) {
	if len(ids) == 0 {
		return []*models.Lead{}, nil
	}

	query := `SELECT ` + leadColumns + leadFrom + ` WHERE l.id = ANY($1) GROUP BY l.id ORDER BY l.created_at`

	return r.queryLeads(ctx, query, pq.Array(ids))
}

// Filter returns leads matching the campaign audience filter.
func (r *LeadRepository) Filter(ctx context.Context, filter models.LeadFilter) ([]*models.Lead, error) {
	var (
		conditions []string
		args       []any
	)

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, "l.status = $"+strconv.Itoa(len(args)))
	}

	if filter.MinScore > 0 {
		args = append(args, filter.MinScore)
		conditions = append(conditions, "l.score >= $"+strconv.Itoa(len(args)))
	}

	if len(filter.TagIDs) > 0 {
		args = append(args, pq.Array(filter.TagIDs))
		conditions = append(conditions,
			"l.id IN (SELECT lead_id FROM lead_tags WHERE tag_id = ANY($"+strconv.Itoa(len(args))+"))")
	}

	query := `SELECT ` + leadColumns + leadFrom

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " GROUP BY l.id ORDER BY l.created_at"

	return r.queryLeads(ctx, query, args...)
}

// Save upserts a lead and its tag links.
func (r *LeadRepository) Save(ctx context.Context, lead *models.Lead) error {
	now := time.Now().UTC()

	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = now
	}

	lead.UpdatedAt = now

	if lead.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate lead ID: %w", err)
		}

		lead.ID = id.String()
	}

	if lead.Status == "" {
		lead.Status = models.LeadStatusNew
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
		INSERT INTO leads (id, first_name, last_name, email, phone, company, status, score, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			company = EXCLUDED.company,
			status = EXCLUDED.status,
			score = EXCLUDED.score,
			updated_at = EXCLUDED.updated_at
	`

	_, err = tx.ExecContext(ctx, query,
		lead.ID,
		lead.FirstName,
		lead.LastName,
		lead.Email,
		lead.Phone,
		lead.Company,
		lead.Status,
		lead.Score,
		lead.CreatedAt,
		lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save lead: %w", err)
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM lead_tags WHERE lead_id = $1`, lead.ID)
	if err != nil {
		return fmt.Errorf("failed to delete lead tags: %w", err)
	}

	for _, tagID := range lead.TagIDs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO lead_tags (lead_id, tag_id) VALUES ($1, $2)`,
			lead.ID, tagID)
		if err != nil {
			return fmt.Errorf("failed to save lead tag: %w", err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpdateStatus changes a lead's funnel status.
func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status models.LeadStatus) error {
	query := `UPDATE leads SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update lead status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return persistence.ErrLeadNotFound
	}

	return nil
}

func (r *LeadRepository) queryLeads(ctx context.Context, query string, args ...any) ([]*models.Lead, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	leads := make([]*models.Lead, 0)

	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}

		leads = append(leads, lead)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating leads: %w", err)
	}

	return leads, nil
}

func scanLead(scanner interface {
	Scan(dest ...any) error
}) (*models.Lead, error) {
	var (
		lead   models.Lead
		tagIDs pq.StringArray
	)

	err := scanner.Scan(
		&lead.ID,
		&lead.FirstName,
		&lead.LastName,
		&lead.Email,
		&lead.Phone,
		&lead.Company,
		&lead.Status,
		&lead.Score,
		&lead.CreatedAt,
		&lead.UpdatedAt,
		&tagIDs,
	)
	if err != nil {
		return nil, err
	}

	lead.TagIDs = tagIDs

	return &lead, nil
}
