package providers

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/deploytrace/deploytrace/internal/hub"
	"github.com/deploytrace/deploytrace/internal/timeline"
)

// PolicyProvider observes governance Policies. Every entry of every
// policy's per-cluster compliance history becomes one record, classified
// compliant or non-compliant by message text (timeline.ClassifyCompliance
// holds the precedence rule). Only compliant records can satisfy the
// completion anchor downstream.
type PolicyProvider struct {
	reader hub.Reader
	params Params
	log    logr.Logger
}

func (p *PolicyProvider) Name() string { return "policy" }

func (p *PolicyProvider) Collect(ctx context.Context, _ string) ([]timeline.EventRecord, error) {
	policies, err := p.reader.List(ctx, hub.GVKPolicy, p.params.namespace())
	if err != nil {
		if hub.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var records []timeline.EventRecord
	for _, policy := range policies {
		records = append(records, p.historyRecords(policy)...)
	}
	return records, nil
}

// historyRecords walks status.details[].history[] of one policy.
func (p *PolicyProvider) historyRecords(policy unstructured.Unstructured) []timeline.EventRecord {
	details, found, err := unstructured.NestedSlice(policy.Object, "status", "details")
	if !found || err != nil {
		return nil
	}

	var records []timeline.EventRecord
	for _, d := range details {
		detail, ok := d.(map[string]interface{})
		if !ok {
			continue
		}
		history, ok := detail["history"].([]interface{})
		if !ok {
			continue
		}
		for _, h := range history {
			entry, ok := h.(map[string]interface{})
			if !ok {
				continue
			}
			message, _ := entry["message"].(string)
			lastTimestamp, _ := entry["lastTimestamp"].(string)

			ts, ok := parseTime(lastTimestamp)
			if !ok {
				p.log.V(1).Info("dropping policy history entry without timestamp",
					"policy", policy.GetName())
				continue
			}

			state := timeline.ClassifyCompliance(message)
			if state == timeline.ComplianceUnknown {
				continue
			}

			records = append(records, timeline.EventRecord{
				Timestamp:   ts,
				Name:        fmt.Sprintf("Policy.%s.%s", policy.GetName(), state),
				Description: message,
				Category:    timeline.CategoryPolicy,
				Source:      p.Name(),
				Metadata: map[string]string{
					"resource":   policy.GetName(),
					"namespace":  policy.GetNamespace(),
					"compliance": state.String(),
				},
			})
		}
	}
	return records
}
