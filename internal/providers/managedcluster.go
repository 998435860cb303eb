package providers

import (
	"context"
	"fmt"

	"github.com/deploytrace/deploytrace/internal/hub"
	"github.com/deploytrace/deploytrace/internal/timeline"
)

var managedClusterConditions = map[string]timeline.Category{
	"HubAcceptedManagedCluster":        timeline.CategoryImport,
	"ManagedClusterJoined":             timeline.CategoryImport,
	"ManagedClusterConditionAvailable": timeline.CategoryAvailability,
}

// ManagedClusterProvider observes the cluster-scoped ManagedCluster:
// creation (import begins) and the accepted/joined/available transitions.
type ManagedClusterProvider struct {
	reader hub.Reader
	params Params
}

func (p *ManagedClusterProvider) Name() string { return "managedcluster" }

func (p *ManagedClusterProvider) Collect(ctx context.Context, cluster string) ([]timeline.EventRecord, error) {
	// ManagedCluster is cluster-scoped: no namespace.
	mc, err := p.reader.Get(ctx, hub.GVKManagedCluster, "", cluster)
	if err != nil {
		if hub.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var records []timeline.EventRecord
	if rec, ok := creationRecord(*mc, "ManagedCluster.Created",
		fmt.Sprintf("ManagedCluster %s created", mc.GetName()),
		timeline.CategoryImport, p.Name()); ok {
		records = append(records, rec)
	}
	records = append(records, conditionRecords(*mc, "ManagedCluster", managedClusterConditions, p.Name())...)
	return records, nil
}
