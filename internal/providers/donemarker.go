package providers

import (
	"context"

	"github.com/deploytrace/deploytrace/internal/hub"
	"github.com/deploytrace/deploytrace/internal/timeline"
)

// doneLabel is applied to the ManagedCluster when the deployment pipeline
// considers the site fully deployed.
const doneLabel = "ztp-done"

// DoneMarkerProvider observes the done label on the ManagedCluster. Labels
// carry no transition time, so the single record it may emit is a presence
// flag: it never participates in elapsed/delta arithmetic.
type DoneMarkerProvider struct {
	reader hub.Reader
	params Params
}

func (p *DoneMarkerProvider) Name() string { return "donemarker" }

func (p *DoneMarkerProvider) Collect(ctx context.Context, cluster string) ([]timeline.EventRecord, error) {
	mc, err := p.reader.Get(ctx, hub.GVKManagedCluster, "", cluster)
	if err != nil {
		if hub.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	if _, ok := mc.GetLabels()[doneLabel]; !ok {
		return nil, nil
	}

	return []timeline.EventRecord{{
		Name:         "Deployment.Done",
		Description:  "done label present on the managed cluster",
		Category:     timeline.CategoryDoneMarker,
		Source:       p.Name(),
		PresenceOnly: true,
		Metadata: map[string]string{
			"resource": mc.GetName(),
			"label":    doneLabel,
		},
	}}, nil
}
