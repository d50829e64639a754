package registry

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/josh9381/estatepulse/pkg/models"
	"github.com/josh9381/estatepulse/pkg/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopAction struct{}

func (noopAction) Execute(_ context.Context, _ models.TriggerEvent, _ *slog.Logger) (map[string]any, error) {
	return nil, nil
}

type noopFactory struct {
	schema map[string]any
}

func (f *noopFactory) ID() string             { return "noop" }
func (f *noopFactory) Schema() map[string]any { return f.schema }

func (f *noopFactory) Create(_ map[string]any) (protocol.Action, error) {
	return noopAction{}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func TestCreateActionUnknownType(t *testing.T) {
	reg := NewRegistry(testLogger())

	_, err := reg.CreateAction("teleport_lead", nil)

	require.ErrorIs(t, err, ErrNotRegistered)
}

func TestCreateActionValidatesConfig(t *testing.T) {
	reg := NewRegistry(testLogger())
	reg.RegisterAction(&noopFactory{schema: map[string]any{
		"type":     "object",
		"required": []string{"message"},
		"properties": map[string]any{
			"message": map[string]any{"type": "string", "minLength": 1},
		},
	}})

	_, err := reg.CreateAction("noop", map[string]any{})
	require.ErrorIs(t, err, ErrInvalidConfig)

	action, err := reg.CreateAction("noop", map[string]any{"message": "hello"})
	require.NoError(t, err)
	assert.NotNil(t, action)
}

func TestActionTypes(t *testing.T) {
	reg := NewRegistry(testLogger())
	reg.RegisterAction(&noopFactory{})

	assert.Equal(t, []string{"noop"}, reg.ActionTypes())
}
