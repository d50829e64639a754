package wait

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/josh9381/estatepulse/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func TestWaitDefaultsToOneSecond(t *testing.T) {
	action := NewWaitAction(map[string]any{})

	assert.Equal(t, time.Second, action.Duration)
}

func TestWaitParsesDuration(t *testing.T) {
	action := NewWaitAction(map[string]any{"duration": float64(250)})

	assert.Equal(t, 250*time.Millisecond, action.Duration)
}

func TestWaitBlocksForDuration(t *testing.T) {
	action := NewWaitAction(map[string]any{"duration": float64(50)})

	start := time.Now()
	result, err := action.Execute(context.Background(), models.TriggerEvent{Type: models.TriggerManual}, testLogger())

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	assert.EqualValues(t, 50, result["waited_ms"])
}

func TestWaitHonorsContextCancellation(t *testing.T) {
	action := NewWaitAction(map[string]any{"duration": float64(10000)})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := action.Execute(ctx, models.TriggerEvent{Type: models.TriggerManual}, testLogger())

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}
