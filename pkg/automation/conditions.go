// Package automation implements trigger dispatch and workflow execution for
// the CRM automation engine.
package automation

import (
	"reflect"

	"github.com/josh9381/estatepulse/pkg/models"
)

// ConditionsMet reports whether a workflow's trigger conditions match the
// event payload. Every key in conditions must be present in the event data
// with an equal value; any mismatch or absent key fails the match. An empty
// condition set always matches.
//
// This is deliberately a flat equality filter. No operators, ranges or
// negation.
func ConditionsMet(conditions map[string]any, eventData map[string]any) bool {
	for key, want := range conditions {
		got, ok := eventData[key]
		if !ok {
			return false
		}

		if !reflect.DeepEqual(want, got) {
			return false
		}
	}

	return true
}

// conditionsOf extracts the equality conditions from a workflow's trigger
// data. The cron expression of time_based workflows is scheduling metadata,
// not a condition.
func conditionsOf(workflow *models.Workflow) map[string]any {
	if len(workflow.TriggerData) == 0 {
		return nil
	}

	conditions := make(map[string]any, len(workflow.TriggerData))

	for key, value := range workflow.TriggerData {
		if key == "cron" {
			continue
		}

		conditions[key] = value
	}

	return conditions
}
