package template

import (
	"testing"

	"github.com/josh9381/estatepulse/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	testCases := []struct {
		name     string
		template string
		data     map[string]any
		want     string
	}{
		{
			name:     "plain text",
			template: "hello world",
			data:     nil,
			want:     "hello world",
		},
		{
			name:     "substitution",
			template: "Hi {{.name}}, your score is {{.score}}",
			data:     map[string]any{"name": "Dana", "score": 85},
			want:     "Hi Dana, your score is 85",
		},
		{
			name:     "default helper",
			template: `{{default "there" .name}}`,
			data:     map[string]any{"name": ""},
			want:     "there",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Render(tc.template, tc.data)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRender_ParseError(t *testing.T) {
	_, err := Render("{{.broken", nil)
	assert.Error(t, err)
}

func TestRenderLead(t *testing.T) {
	lead := &models.Lead{
		FirstName: "Ana",
		LastName:  "Reyes",
		Company:   "Sunset Realty",
		Score:     72,
	}

	got, err := RenderLead("{{.name}} ({{.company}}) scored {{.score}}", lead, nil)
	require.NoError(t, err)
	assert.Equal(t, "Ana Reyes (Sunset Realty) scored 72", got)
}

func TestRenderLead_ExtraDataDoesNotOverrideLead(t *testing.T) {
	lead := &models.Lead{FirstName: "Ana"}

	got, err := RenderLead("{{.first_name}} {{.city}}", lead, map[string]any{
		"first_name": "Bob",
		"city":       "Austin",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Austin", got)
}
