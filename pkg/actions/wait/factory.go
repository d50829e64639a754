package wait

import (
	"github.com/josh9381/estatepulse/pkg/protocol"
)

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) ID() string {
	return "wait"
}

func (f *Factory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"duration": map[string]any{
				"type":        "number",
				"minimum":     0,
				"description": "Pause duration in milliseconds. Defaults to 1000.",
			},
		},
	}
}

func (f *Factory) Create(config map[string]any) (protocol.Action, error) {
	return NewWaitAction(config), nil
}
