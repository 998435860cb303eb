package providers

import (
	"context"

	"github.com/deploytrace/deploytrace/internal/hub"
	"github.com/deploytrace/deploytrace/internal/timeline"
)

// aciConditions are the AgentClusterInstall condition transitions worth a
// timeline record. Each yields its own record with the condition's own
// transition time, never the resource's creation time.
var aciConditions = map[string]timeline.Category{
	"SpecSynced":      timeline.CategoryClusterInstall,
	"Validated":       timeline.CategoryClusterInstall,
	"RequirementsMet": timeline.CategoryClusterInstall,
	"Completed":       timeline.CategoryClusterInstall,
	"Stopped":         timeline.CategoryClusterInstall,
}

// AgentClusterInstallProvider observes the assisted-installer's
// AgentClusterInstall status conditions.
type AgentClusterInstallProvider struct {
	reader hub.Reader
	params Params
}

func (p *AgentClusterInstallProvider) Name() string { return "agentclusterinstall" }

func (p *AgentClusterInstallProvider) Collect(ctx context.Context, cluster string) ([]timeline.EventRecord, error) {
	aci, err := p.reader.Get(ctx, hub.GVKAgentClusterInstall, p.params.namespace(), cluster)
	if err != nil {
		if hub.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return conditionRecords(*aci, "AgentClusterInstall", aciConditions, p.Name()), nil
}
