// Package wait implements a workflow action that pauses the run between
// steps, typically to space out outbound messages.
package wait

import (
	"context"
	"log/slog"
	"time"

	"github.com/josh9381/estatepulse/pkg/models"
)

const defaultDuration = 1000 * time.Millisecond

type WaitAction struct {
	Duration time.Duration
}

func NewWaitAction(config map[string]any) *WaitAction {
	duration := defaultDuration

	if raw, ok := config["duration"].(float64); ok && raw >= 0 {
		duration = time.Duration(raw) * time.Millisecond
	}

	return &WaitAction{Duration: duration}
}

func (a *WaitAction) Execute(ctx context.Context, _ models.TriggerEvent, logger *slog.Logger) (map[string]any, error) {
	logger.InfoContext(ctx, "Waiting", "duration", a.Duration.String())

	timer := time.NewTimer(a.Duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	return map[string]any{"waited_ms": a.Duration.Milliseconds()}, nil
}
