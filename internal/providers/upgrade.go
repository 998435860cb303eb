package providers

import (
	"context"

	"github.com/deploytrace/deploytrace/internal/hub"
	"github.com/deploytrace/deploytrace/internal/timeline"
)

var upgradeConditions = map[string]timeline.Category{
	"Ready":     timeline.CategoryPolicyCompletion,
	"Succeeded": timeline.CategoryPolicyCompletion,
}

// UpgradeProvider observes the TALM ClusterGroupUpgrade rolling the
// configuration policies out to the cluster.
type UpgradeProvider struct {
	reader hub.Reader
	params Params
}

func (p *UpgradeProvider) Name() string { return "clustergroupupgrade" }

func (p *UpgradeProvider) Collect(ctx context.Context, cluster string) ([]timeline.EventRecord, error) {
	// CGUs live in the ztp-install namespace by convention, named after the
	// cluster; fall back to the cluster namespace.
	for _, ns := range []string{"ztp-install", p.params.namespace()} {
		cgu, err := p.reader.Get(ctx, hub.GVKClusterGroupUpgrade, ns, cluster)
		if err != nil {
			if hub.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		return conditionRecords(*cgu, "ClusterGroupUpgrade", upgradeConditions, p.Name()), nil
	}
	return nil, nil
}
