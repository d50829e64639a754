package protocol

import (
	"github.com/josh9381/estatepulse/pkg/messaging"
	"github.com/josh9381/estatepulse/pkg/persistence"
)

// Dependencies are the collaborators injected into action factories at
// wiring time. Actions never reach for globals; tests substitute fakes here.
type Dependencies struct {
	Persistence persistence.Persistence
	Email       messaging.EmailSender
	SMS         messaging.SMSSender
}
