package providers

import (
	"time"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/deploytrace/deploytrace/internal/timeline"
)

// parseTime resolves a timestamp string from a status field. Hub resources
// emit RFC3339; some controllers include sub-second precision.
func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// condition is the common shape of a status condition across the observed
// APIs.
type condition struct {
	Type               string
	Status             string
	Reason             string
	Message            string
	LastTransitionTime string
}

// objectConditions extracts status.conditions from an unstructured object.
// Malformed entries are skipped, not fatal.
func objectConditions(u unstructured.Unstructured) []condition {
	raw, found, err := unstructured.NestedSlice(u.Object, "status", "conditions")
	if !found || err != nil {
		return nil
	}

	var out []condition
	for _, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		c := condition{}
		c.Type, _ = m["type"].(string)
		c.Status, _ = m["status"].(string)
		c.Reason, _ = m["reason"].(string)
		c.Message, _ = m["message"].(string)
		c.LastTransitionTime, _ = m["lastTransitionTime"].(string)
		if c.Type != "" {
			out = append(out, c)
		}
	}
	return out
}

// conditionRecords emits one record per wanted condition transition. Each
// record carries the condition's own transition time; a condition without
// a resolvable time yields no record.
func conditionRecords(u unstructured.Unstructured, namePrefix string, wanted map[string]timeline.Category, source string) []timeline.EventRecord {
	var records []timeline.EventRecord
	for _, c := range objectConditions(u) {
		category, ok := wanted[c.Type]
		if !ok || c.Status != "True" {
			continue
		}
		ts, ok := parseTime(c.LastTransitionTime)
		if !ok {
			continue
		}
		records = append(records, timeline.EventRecord{
			Timestamp:   ts,
			Name:        namePrefix + "." + c.Type,
			Description: c.Message,
			Category:    category,
			Source:      source,
			Metadata: map[string]string{
				"resource":  u.GetName(),
				"namespace": u.GetNamespace(),
				"reason":    c.Reason,
			},
		})
	}
	return records
}

// creationRecord emits a record for the object's creation timestamp.
func creationRecord(u unstructured.Unstructured, name, description string, category timeline.Category, source string) (timeline.EventRecord, bool) {
	created := u.GetCreationTimestamp()
	if created.IsZero() {
		return timeline.EventRecord{}, false
	}
	return timeline.EventRecord{
		Timestamp:   created.Time.UTC(),
		Name:        name,
		Description: description,
		Category:    category,
		Source:      source,
		Metadata: map[string]string{
			"resource":  u.GetName(),
			"namespace": u.GetNamespace(),
		},
	}, true
}
