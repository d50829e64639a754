package add_tag

import "github.com/josh9381/estatepulse/pkg/protocol"

func NewAddTagActionFactory(deps protocol.Dependencies) *AddTagActionFactory {
	return &AddTagActionFactory{deps: deps}
}

type AddTagActionFactory struct {
	deps protocol.Dependencies
}

func (f *AddTagActionFactory) ID() string {
	return "add_tag"
}

func (f *AddTagActionFactory) Schema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"tag_id"},
		"properties": map[string]any{
			"tag_id": map[string]any{"type": "string", "minLength": 1},
		},
	}
}

func (f *AddTagActionFactory) Create(config map[string]any) (protocol.Action, error) {
	return NewAddTagAction(config, f.deps), nil
}
