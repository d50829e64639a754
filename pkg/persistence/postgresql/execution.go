package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/josh9381/estatepulse/pkg/models"
	"github.com/josh9381/estatepulse/pkg/persistence"
)

// ExecutionRepository handles workflow execution audit records.
type ExecutionRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewExecutionRepository creates a new execution repository.
func NewExecutionRepository(db *sql.DB, logger *slog.Logger) *ExecutionRepository {
	return &ExecutionRepository{db: db, logger: logger}
}

// Create inserts a new execution record, generating an ID when absent.
func (r *ExecutionRepository) Create(ctx context.Context, execution *models.WorkflowExecution) error {
	if execution.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate execution ID: %w", err)
		}

		execution.ID = id.String()
	}

	if execution.StartedAt.IsZero() {
		execution.StartedAt = time.Now().UTC()
	}

	metadataJSON, err := json.Marshal(execution.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal execution metadata: %w", err)
	}

	query := `
		INSERT INTO workflow_executions (id, workflow_id, status, lead_id, metadata, error, started_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.db.ExecContext(ctx, query,
		execution.ID,
		execution.WorkflowID,
		execution.Status,
		execution.LeadID,
		metadataJSON,
		execution.Error,
		execution.StartedAt,
		execution.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create workflow execution: %w", err)
	}

	return nil
}

// MarkSuccess transitions a running execution to its success terminal state.
func (r *ExecutionRepository) MarkSuccess(ctx context.Context, id string, completedAt time.Time) error {
	return r.markTerminal(ctx, id, models.ExecutionStatusSuccess, nil, completedAt)
}

// MarkFailed transitions a running execution to its failed terminal state,
// recording the failure message verbatim.
func (r *ExecutionRepository) MarkFailed(ctx context.Context, id string, message string, completedAt time.Time) error {
	return r.markTerminal(ctx, id, models.ExecutionStatusFailed, &message, completedAt)
}

// markTerminal only moves executions out of the running state, preserving the
// append-only status lifecycle.
func (r *ExecutionRepository) markTerminal(ctx context.Context, id string, status models.ExecutionStatus, message *string, completedAt time.Time) error {
	query := `
		UPDATE workflow_executions
		SET status = $2, error = $3, completed_at = $4
		WHERE id = $1 AND status = $5
	`

	result, err := r.db.ExecContext(ctx, query, id, status, message, completedAt, models.ExecutionStatusRunning)
	if err != nil {
		return fmt.Errorf("failed to update workflow execution: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return persistence.ErrExecutionNotFound
	}

	return nil
}

// GetByWorkflow returns the most recent executions of a workflow.
func (r *ExecutionRepository) GetByWorkflow(ctx context.Context, workflowID string, limit int) ([]*models.WorkflowExecution, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, workflow_id, status, lead_id, metadata, error, started_at, completed_at
		FROM workflow_executions
		WHERE workflow_id = $1
		ORDER BY started_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, workflowID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query workflow executions: %w", err)
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	executions := make([]*models.WorkflowExecution, 0)

	for rows.Next() {
		var (
			execution    models.WorkflowExecution
			metadataJSON []byte
		)

		err := rows.Scan(
			&execution.ID,
			&execution.WorkflowID,
			&execution.Status,
			&execution.LeadID,
			&metadataJSON,
			&execution.Error,
			&execution.StartedAt,
			&execution.CompletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workflow execution: %w", err)
		}

		if metadataJSON != nil {
			err := json.Unmarshal(metadataJSON, &execution.Metadata)
			if err != nil {
				return nil, fmt.Errorf("failed to unmarshal execution metadata: %w", err)
			}
		}

		executions = append(executions, &execution)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating workflow executions: %w", err)
	}

	return executions, nil
}
