package providers

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/deploytrace/deploytrace/internal/hub"
	"github.com/deploytrace/deploytrace/internal/timeline"
)

var agentConditions = map[string]timeline.Category{
	"Bound":     timeline.CategoryDiscovery,
	"Installed": timeline.CategoryDiscovery,
}

// AgentProvider observes the discovery Agents in the cluster namespace:
// one registration record per agent plus its Bound/Installed transitions.
type AgentProvider struct {
	reader hub.Reader
	params Params
}

func (p *AgentProvider) Name() string { return "agent" }

func (p *AgentProvider) Collect(ctx context.Context, _ string) ([]timeline.EventRecord, error) {
	agents, err := p.reader.List(ctx, hub.GVKAgent, p.params.namespace())
	if err != nil {
		if hub.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var records []timeline.EventRecord
	for _, agent := range agents {
		host := agentHostname(agent)
		prefix := "Agent." + host

		if rec, ok := creationRecord(agent, prefix+".Registered",
			fmt.Sprintf("agent %s registered with the hub", host),
			timeline.CategoryDiscovery, p.Name()); ok {
			records = append(records, rec)
		}
		records = append(records, conditionRecords(agent, prefix, agentConditions, p.Name())...)
	}
	return records, nil
}

// agentHostname prefers the inventory hostname over the opaque agent UID.
func agentHostname(agent unstructured.Unstructured) string {
	if host, found, _ := unstructured.NestedString(agent.Object, "spec", "hostname"); found && host != "" {
		return host
	}
	if host, found, _ := unstructured.NestedString(agent.Object, "status", "inventory", "hostname"); found && host != "" {
		return host
	}
	return agent.GetName()
}
