package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploytrace/deploytrace/internal/timeline"
)

func tlRecord(offset time.Duration, name string, category timeline.Category) timeline.EventRecord {
	return timeline.EventRecord{
		Timestamp: testCreatedTime.Add(offset),
		Name:      name,
		Category:  category,
	}
}

func TestStartAnchorsPreferGitOps(t *testing.T) {
	tl := timeline.Timeline{
		// ClusterDeployment is older, but the GitOps trigger outranks it.
		tlRecord(-time.Hour, "ClusterDeployment.Created", timeline.CategoryClusterInstall),
		tlRecord(0, "GitOps.Application.Created", timeline.CategoryGitOpsTrigger),
	}

	anchor, ok := timeline.ResolveAnchor(tl, StartAnchors())
	require.True(t, ok)
	assert.Equal(t, "gitops-app-created", anchor.Label)
	assert.Equal(t, testCreatedTime, anchor.Timestamp)
}

func TestStartAnchorsFallback(t *testing.T) {
	tl := timeline.Timeline{
		tlRecord(0, "ManagedCluster.Created", timeline.CategoryImport),
	}

	anchor, ok := timeline.ResolveAnchor(tl, StartAnchors())
	require.True(t, ok)
	assert.Equal(t, "managed-cluster-created", anchor.Label)
}

func TestCompletionAnchorsLastCompliantWins(t *testing.T) {
	tl := timeline.Timeline{
		tlRecord(time.Minute, "Policy.a.Compliant", timeline.CategoryPolicy),
		tlRecord(2*time.Minute, "Policy.b.NonCompliant", timeline.CategoryPolicy),
		tlRecord(3*time.Minute, "Policy.b.Compliant", timeline.CategoryPolicy),
		tlRecord(time.Second, "ClusterGroupUpgrade.Succeeded", timeline.CategoryPolicyCompletion),
	}

	anchor, ok := timeline.ResolveAnchor(tl, CompletionAnchors())
	require.True(t, ok)
	assert.Equal(t, "policies-compliant", anchor.Label)
	// Latest compliant event, and NonCompliant never matches.
	assert.Equal(t, testCreatedTime.Add(3*time.Minute), anchor.Timestamp)
}

func TestCompletionAnchorsNonCompliantNeverMatches(t *testing.T) {
	tl := timeline.Timeline{
		tlRecord(time.Minute, "Policy.a.NonCompliant", timeline.CategoryPolicy),
	}

	_, ok := timeline.ResolveAnchor(tl, CompletionAnchors())
	assert.False(t, ok)
}

func TestMilestoneLabelsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, def := range Milestones() {
		assert.False(t, seen[def.Label], def.Label)
		seen[def.Label] = true
	}
}
