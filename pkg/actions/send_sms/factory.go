package send_sms

import "github.com/josh9381/estatepulse/pkg/protocol"

func NewSendSMSActionFactory(deps protocol.Dependencies) *SendSMSActionFactory {
	return &SendSMSActionFactory{deps: deps}
}

type SendSMSActionFactory struct {
	deps protocol.Dependencies
}

func (f *SendSMSActionFactory) ID() string {
	return "send_sms"
}

func (f *SendSMSActionFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"template_id": map[string]any{"type": "string"},
			"message":     map[string]any{"type": "string"},
		},
	}
}

func (f *SendSMSActionFactory) Create(config map[string]any) (protocol.Action, error) {
	return NewSendSMSAction(config, f.deps), nil
}
