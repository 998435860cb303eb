package providers

import (
	"context"
	"time"

	corev1 "k8s.io/api/core/v1"

	"github.com/deploytrace/deploytrace/internal/hub"
	"github.com/deploytrace/deploytrace/internal/timeline"
)

// hubEventReasons allowlists the core/v1 event reasons that mark discovery
// progress. Everything else in the namespace is noise for the timeline.
var hubEventReasons = map[string]bool{
	"AgentRegistered":           true,
	"ClusterRegistered":         true,
	"InstallationStarted":       true,
	"InstallationCompleted":     true,
	"HostRegistrationSucceeded": true,
}

// HubEventsProvider observes core/v1 events in the cluster namespace.
// Events rotate out of etcd after an hour by default, so this source is
// routinely absent on older deployments.
type HubEventsProvider struct {
	reader hub.Reader
	params Params
}

func (p *HubEventsProvider) Name() string { return "hubevents" }

func (p *HubEventsProvider) Collect(ctx context.Context, _ string) ([]timeline.EventRecord, error) {
	events, err := p.reader.CoreEvents(ctx, p.params.namespace())
	if err != nil {
		if hub.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var records []timeline.EventRecord
	for _, ev := range events {
		if !hubEventReasons[ev.Reason] {
			continue
		}
		ts := eventTime(ev)
		if ts.IsZero() {
			continue
		}
		records = append(records, timeline.EventRecord{
			Timestamp:   ts.UTC(),
			Name:        "Hub.Event." + ev.Reason,
			Description: ev.Message,
			Category:    timeline.CategoryDiscovery,
			Source:      p.Name(),
			Metadata: map[string]string{
				"resource":  ev.InvolvedObject.Name,
				"namespace": ev.Namespace,
			},
		})
	}
	return records, nil
}

// eventTime picks the first usable instant of a core/v1 event; the API has
// accumulated several timestamp fields over time.
func eventTime(ev corev1.Event) time.Time {
	switch {
	case !ev.LastTimestamp.IsZero():
		return ev.LastTimestamp.Time
	case !ev.FirstTimestamp.IsZero():
		return ev.FirstTimestamp.Time
	case !ev.EventTime.IsZero():
		return ev.EventTime.Time
	default:
		return time.Time{}
	}
}
