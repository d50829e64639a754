package send_email

import "github.com/josh9381/estatepulse/pkg/protocol"

func NewSendEmailActionFactory(deps protocol.Dependencies) *SendEmailActionFactory {
	return &SendEmailActionFactory{deps: deps}
}

type SendEmailActionFactory struct {
	deps protocol.Dependencies
}

func (f *SendEmailActionFactory) ID() string {
	return "send_email"
}

func (f *SendEmailActionFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"template_id": map[string]any{"type": "string"},
			"subject":     map[string]any{"type": "string"},
			"body":        map[string]any{"type": "string"},
		},
	}
}

func (f *SendEmailActionFactory) Create(config map[string]any) (protocol.Action, error) {
	return NewSendEmailAction(config, f.deps), nil
}
