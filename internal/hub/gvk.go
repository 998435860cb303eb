package hub

import (
	"strings"

	"k8s.io/apimachinery/pkg/runtime/schema"
)

// GroupVersionKinds of the deployment resources observed on the hub. The
// tool carries no typed clients for these APIs; everything is read as
// unstructured objects so a hub missing any of the operators degrades to
// absence, not to a decode failure.
var (
	GVKApplication = schema.GroupVersionKind{
		Group: "argoproj.io", Version: "v1alpha1", Kind: "Application",
	}
	GVKClusterDeployment = schema.GroupVersionKind{
		Group: "hive.openshift.io", Version: "v1", Kind: "ClusterDeployment",
	}
	GVKAgentClusterInstall = schema.GroupVersionKind{
		Group: "extensions.hive.openshift.io", Version: "v1beta1", Kind: "AgentClusterInstall",
	}
	GVKAgent = schema.GroupVersionKind{
		Group: "agent-install.openshift.io", Version: "v1beta1", Kind: "Agent",
	}
	GVKBareMetalHost = schema.GroupVersionKind{
		Group: "metal3.io", Version: "v1alpha1", Kind: "BareMetalHost",
	}
	GVKManagedCluster = schema.GroupVersionKind{
		Group: "cluster.open-cluster-management.io", Version: "v1", Kind: "ManagedCluster",
	}
	GVKManifestWork = schema.GroupVersionKind{
		Group: "work.open-cluster-management.io", Version: "v1", Kind: "ManifestWork",
	}
	GVKPolicy = schema.GroupVersionKind{
		Group: "policy.open-cluster-management.io", Version: "v1", Kind: "Policy",
	}
	GVKClusterGroupUpgrade = schema.GroupVersionKind{
		Group: "ran.openshift.io", Version: "v1alpha1", Kind: "ClusterGroupUpgrade",
	}
)

// kubectlResource maps a kind to the fully-qualified resource argument
// kubectl expects, e.g. "applications.argoproj.io". Qualifying with the
// group avoids ambiguity between same-named kinds from different groups.
func kubectlResource(gvk schema.GroupVersionKind) string {
	plural := pluralize(strings.ToLower(gvk.Kind))
	if gvk.Group == "" {
		return plural
	}
	return plural + "." + gvk.Group
}

// pluralize covers the kinds this tool queries; it is not a general
// English pluralizer.
func pluralize(kind string) string {
	switch {
	case strings.HasSuffix(kind, "policy"):
		return strings.TrimSuffix(kind, "policy") + "policies"
	case strings.HasSuffix(kind, "s"):
		return kind + "es"
	default:
		return kind + "s"
	}
}
