// Package registry maps stored action type strings to typed action factories.
package registry

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/josh9381/estatepulse/pkg/protocol"
)

// ErrNotRegistered indicates an action type unknown to this registry.
// The engine treats it as a skip, keeping workflows forward-compatible with
// action types this build does not ship.
var ErrNotRegistered = errors.New("action type not registered")

type Registry struct {
	logger          *slog.Logger
	actionFactories map[string]protocol.ActionFactory
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:          logger,
		actionFactories: make(map[string]protocol.ActionFactory),
	}
}

func (r *Registry) RegisterAction(factory protocol.ActionFactory) {
	r.actionFactories[factory.ID()] = factory
}

// CreateAction validates config against the factory's schema and builds a
// typed action.
func (r *Registry) CreateAction(actionType string, config map[string]any) (protocol.Action, error) {
	factory, ok := r.actionFactories[actionType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, actionType)
	}

	if err := validateConfig(factory.Schema(), config); err != nil {
		return nil, fmt.Errorf("invalid configuration for action %q: %w", actionType, err)
	}

	return factory.Create(config)
}

// ActionTypes returns the registered action type identifiers.
func (r *Registry) ActionTypes() []string {
	types := make([]string, 0, len(r.actionFactories))
	for actionType := range r.actionFactories {
		types = append(types, actionType)
	}

	return types
}
