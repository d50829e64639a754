package update_lead_status

import "github.com/josh9381/estatepulse/pkg/protocol"

func NewUpdateLeadStatusActionFactory(deps protocol.Dependencies) *UpdateLeadStatusActionFactory {
	return &UpdateLeadStatusActionFactory{deps: deps}
}

type UpdateLeadStatusActionFactory struct {
	deps protocol.Dependencies
}

func (f *UpdateLeadStatusActionFactory) ID() string {
	return "update_lead_status"
}

func (f *UpdateLeadStatusActionFactory) Schema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"status"},
		"properties": map[string]any{
			"status": map[string]any{
				"type": "string",
				"enum": []any{"new", "contacted", "qualified", "converted", "lost"},
			},
		},
	}
}

func (f *UpdateLeadStatusActionFactory) Create(config map[string]any) (protocol.Action, error) {
	return NewUpdateLeadStatusAction(config, f.deps), nil
}
