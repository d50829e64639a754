// Package template renders message templates for campaigns and workflow
// actions. Variable substitution only; callers are not expected to use
// control flow.
package template

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/josh9381/estatepulse/pkg/models"
)

// Render substitutes data into a template string.
func Render(templateStr string, data map[string]any) (string, error) {
	tmpl, err := template.
		New("message").
		Option("missingkey=zero").
		Funcs(template.FuncMap{
			"now": func() string {
				return time.Now().UTC().Format(time.RFC3339)
			},
			"default": func(fallback, value any) any {
				if value == nil || value == "" {
					return fallback
				}

				return value
			},
		}).Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse template '%s': %w", templateStr, err)
	}

	var buf strings.Builder

	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("failed to execute template '%s': %w", templateStr, err)
	}

	return buf.String(), nil
}

// RenderLead renders a template with a lead's personalization fields plus any
// extra event data. Extra keys do not override the lead fields.
func RenderLead(templateStr string, lead *models.Lead, extra map[string]any) (string, error) {
	data := make(map[string]any, len(extra)+8)
	for k, v := range extra {
		data[k] = v
	}

	data["first_name"] = lead.FirstName
	data["last_name"] = lead.LastName
	data["name"] = lead.Name()
	data["email"] = lead.Email
	data["phone"] = lead.Phone
	data["company"] = lead.Company
	data["score"] = lead.Score
	data["status"] = string(lead.Status)

	return Render(templateStr, data)
}
