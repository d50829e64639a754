// Package protocol defines the contracts between the execution engine and
// pluggable workflow actions.
package protocol

import (
	"context"
	"log/slog"

	"github.com/josh9381/estatepulse/pkg/models"
)

// Action is one executable unit of a workflow run. Execute returns a result
// payload for the audit trail; an error aborts the remaining actions of the
// run.
type Action interface {
	Execute(ctx context.Context, event models.TriggerEvent, logger *slog.Logger) (map[string]any, error)
}

// ActionFactory builds typed actions from a workflow's stored configuration.
// Only the registry lookup deals in type strings; everything past Create is
// a concrete action struct.
type ActionFactory interface {
	// ID returns the action type this factory builds.
	ID() string

	// Schema returns the JSON schema the configuration is validated against
	// before Create. A nil schema skips validation.
	Schema() map[string]any

	Create(config map[string]any) (Action, error)
}
