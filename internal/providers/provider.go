// Package providers contains the source-specific collectors that observe
// one hub resource category each and map it to canonical timeline records.
//
// Adding coverage for a new resource means adding one provider file and
// registering it in Default; nothing downstream changes.
package providers

import (
	"github.com/go-logr/logr"

	"github.com/deploytrace/deploytrace/internal/hub"
	"github.com/deploytrace/deploytrace/internal/timeline"
)

// Params identifies the observed deployment on the hub.
type Params struct {
	// Cluster is the managed cluster name, the workflow identifier.
	Cluster string

	// Namespace is the cluster's hub namespace. Defaults to Cluster.
	Namespace string

	// GitOpsNamespaces are the namespaces searched, in order, for the
	// triggering GitOps Application.
	GitOpsNamespaces []string
}

// DefaultGitOpsNamespaces are searched when none are configured.
var DefaultGitOpsNamespaces = []string{"openshift-gitops", "ztp-gitops"}

func (p Params) namespace() string {
	if p.Namespace != "" {
		return p.Namespace
	}
	return p.Cluster
}

func (p Params) gitopsNamespaces() []string {
	if len(p.GitOpsNamespaces) > 0 {
		return p.GitOpsNamespaces
	}
	return DefaultGitOpsNamespaces
}

// Default returns the full provider set in registration order. That order
// is also the tie-break for records with equal timestamps, so it tracks
// the idealized phase ordering of a deployment.
func Default(r hub.Reader, params Params, log logr.Logger) []timeline.Provider {
	return []timeline.Provider{
		&GitOpsProvider{reader: r, params: params, log: log},
		&ClusterDeploymentProvider{reader: r, params: params},
		&AgentClusterInstallProvider{reader: r, params: params},
		&AgentProvider{reader: r, params: params},
		&BareMetalHostProvider{reader: r, params: params},
		&ManagedClusterProvider{reader: r, params: params},
		&ManifestWorkProvider{reader: r, params: params},
		&PolicyProvider{reader: r, params: params, log: log},
		&UpgradeProvider{reader: r, params: params},
		&HubEventsProvider{reader: r, params: params},
		&DoneMarkerProvider{reader: r, params: params},
	}
}

// Names returns the registered provider names in order, for the
// feature-presence flags of the summary.
func Names(providers []timeline.Provider) []string {
	names := make([]string, 0, len(providers))
	for _, p := range providers {
		names = append(names, p.Name())
	}
	return names
}
