// Package cmd provides common initialization for the service binaries.
package cmd

import (
	"log/slog"

	"github.com/josh9381/estatepulse/pkg/actions/add_tag"
	"github.com/josh9381/estatepulse/pkg/actions/create_task"
	"github.com/josh9381/estatepulse/pkg/actions/send_email"
	"github.com/josh9381/estatepulse/pkg/actions/send_sms"
	"github.com/josh9381/estatepulse/pkg/actions/update_lead_status"
	"github.com/josh9381/estatepulse/pkg/actions/wait"
	"github.com/josh9381/estatepulse/pkg/protocol"
	"github.com/josh9381/estatepulse/pkg/registry"
)

// NewRegistry builds the action registry with every native action wired to
// the shared dependencies.
func NewRegistry(logger *slog.Logger, deps protocol.Dependencies) *registry.Registry {
	reg := registry.NewRegistry(logger)

	reg.RegisterAction(send_email.NewSendEmailActionFactory(deps))
	reg.RegisterAction(send_sms.NewSendSMSActionFactory(deps))
	reg.RegisterAction(create_task.NewCreateTaskActionFactory(deps))
	reg.RegisterAction(update_lead_status.NewUpdateLeadStatusActionFactory(deps))
	reg.RegisterAction(add_tag.NewAddTagActionFactory(deps))
	reg.RegisterAction(wait.NewFactory())

	return reg
}
