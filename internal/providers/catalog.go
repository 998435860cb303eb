package providers

import "github.com/deploytrace/deploytrace/internal/timeline"

// StartAnchors is the priority-ordered list of signals that can serve as
// the deployment's start instant. The GitOps trigger is preferred; hubs
// without a GitOps pipeline fall back to the ClusterDeployment, then to
// the ManagedCluster itself.
func StartAnchors() timeline.AnchorSpec {
	return timeline.AnchorSpec{
		{Label: "gitops-app-created", Match: timeline.NameIs("GitOps.Application.Created")},
		{Label: "cluster-deployment-created", Match: timeline.NameIs("ClusterDeployment.Created")},
		{Label: "managed-cluster-created", Match: timeline.NameIs("ManagedCluster.Created")},
	}
}

// CompletionAnchors is the priority-ordered list of signals that can serve
// as the deployment's completion instant. The latest compliant policy
// event is preferred; note that Policy.<name>.NonCompliant records never
// match the ".Compliant" suffix.
func CompletionAnchors() timeline.AnchorSpec {
	return timeline.AnchorSpec{
		{Label: "policies-compliant", Match: policyCompliant(), Last: true},
		{Label: "upgrade-succeeded", Match: timeline.NameIs("ClusterGroupUpgrade.Succeeded"), Last: true},
		{Label: "cluster-available", Match: timeline.NameIs("ManagedCluster.ManagedClusterConditionAvailable")},
	}
}

func policyCompliant() timeline.Predicate {
	return timeline.All(
		timeline.NamePrefix("Policy."),
		timeline.NameSuffix(".Compliant"),
	)
}

// Milestones maps the fixed human labels of the summary table to their
// representative records.
func Milestones() []timeline.MilestoneDef {
	return []timeline.MilestoneDef{
		{Label: "GitOps Application Created", Match: timeline.NameIs("GitOps.Application.Created")},
		{Label: "Cluster Install Started", Match: timeline.NameIs("ClusterDeployment.InstallStarted")},
		{Label: "Cluster Install Completed", Match: timeline.NameIs("ClusterDeployment.Installed")},
		{Label: "First Agent Registered", Match: timeline.All(
			timeline.NamePrefix("Agent."), timeline.NameSuffix(".Registered"))},
		{Label: "Agent Bound to Cluster", Match: timeline.All(
			timeline.NamePrefix("Agent."), timeline.NameSuffix(".Bound"))},
		{Label: "Cluster Imported", Match: timeline.NameIs("ManagedCluster.HubAcceptedManagedCluster")},
		{Label: "Cluster Joined Hub", Match: timeline.NameIs("ManagedCluster.ManagedClusterJoined")},
		{Label: "Cluster Available", Match: timeline.NameIs("ManagedCluster.ManagedClusterConditionAvailable")},
		{Label: "Configuration Policies Compliant", Match: policyCompliant(), Last: true},
		{Label: "Upgrade Completed", Match: timeline.NameIs("ClusterGroupUpgrade.Succeeded"), Last: true},
	}
}
