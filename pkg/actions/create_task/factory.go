package create_task

import "github.com/josh9381/estatepulse/pkg/protocol"

func NewCreateTaskActionFactory(deps protocol.Dependencies) *CreateTaskActionFactory {
	return &CreateTaskActionFactory{deps: deps}
}

type CreateTaskActionFactory struct {
	deps protocol.Dependencies
}

func (f *CreateTaskActionFactory) ID() string {
	return "create_task"
}

func (f *CreateTaskActionFactory) Schema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"title"},
		"properties": map[string]any{
			"title":       map[string]any{"type": "string", "minLength": 1},
			"description": map[string]any{"type": "string"},
			"due_date":    map[string]any{"type": "string"},
			"priority":    map[string]any{"type": "string", "enum": []any{"low", "medium", "high"}},
		},
	}
}

func (f *CreateTaskActionFactory) Create(config map[string]any) (protocol.Action, error) {
	return NewCreateTaskAction(config, f.deps), nil
}
