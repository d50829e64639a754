package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/josh9381/estatepulse/pkg/models"
	"github.com/josh9381/estatepulse/pkg/persistence"
)

// TagRepository handles tag lookups and lead/tag links.
type TagRepository struct {
	db *sql.DB
}

// NewTagRepository creates a new tag repository.
func NewTagRepository(db *sql.DB) *TagRepository {
	return &TagRepository{db: db}
}

// GetByID returns a tag by its ID.
func (r *TagRepository) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	query := `SELECT id, name, color, created_at FROM tags WHERE id = $1`

	var tag models.Tag

	err := r.db.QueryRowContext(ctx, query, id).Scan(&tag.ID, &tag.Name, &tag.Color, &tag.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.ErrTagNotFound
		}

		return nil, fmt.Errorf("failed to scan tag: %w", err)
	}

	return &tag, nil
}

// Save upserts a tag.
func (r *TagRepository) Save(ctx context.Context, tag *models.Tag) error {
	if tag.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate tag ID: %w", err)
		}

		tag.ID = id.String()
	}

	if tag.CreatedAt.IsZero() {
		tag.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO tags (id, name, color, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, color = EXCLUDED.color
	`

	_, err := r.db.ExecContext(ctx, query, tag.ID, tag.Name, tag.Color, tag.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save tag: %w", err)
	}

	return nil
}

// AttachToLead links an existing tag to a lead. Linking twice is a no-op.
func (r *TagRepository) AttachToLead(ctx context.Context, tagID, leadID string) error {
	query := `
		INSERT INTO lead_tags (lead_id, tag_id)
		VALUES ($1, $2)
		ON CONFLICT (lead_id, tag_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, leadID, tagID)
	if err != nil {
		return fmt.Errorf("failed to attach tag to lead: %w", err)
	}

	return nil
}
