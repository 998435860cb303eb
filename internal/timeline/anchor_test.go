package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAnchorPriorityOrder(t *testing.T) {
	// C's match is chronologically earlier than B's, but B outranks C.
	tl := Timeline{
		record(0, "C.Signal", CategoryImport),
		record(time.Hour, "B.Signal", CategoryClusterInstall),
	}

	spec := AnchorSpec{
		{Label: "a", Match: NameIs("A.Signal")},
		{Label: "b", Match: NameIs("B.Signal")},
		{Label: "c", Match: NameIs("C.Signal")},
	}

	anchor, ok := ResolveAnchor(tl, spec)
	require.True(t, ok)
	assert.Equal(t, "b", anchor.Label)
	assert.Equal(t, base.Add(time.Hour), anchor.Timestamp)
}

func TestResolveAnchorEarliestMatch(t *testing.T) {
	tl := Timeline{
		record(time.Minute, "Policy.a.Compliant", CategoryPolicy),
		record(2*time.Minute, "Policy.b.Compliant", CategoryPolicy),
	}

	anchor, ok := ResolveAnchor(tl, AnchorSpec{
		{Label: "first-compliant", Match: NameSuffix(".Compliant")},
	})
	require.True(t, ok)
	assert.Equal(t, base.Add(time.Minute), anchor.Timestamp)
}

func TestResolveAnchorLastMatch(t *testing.T) {
	tl := Timeline{
		record(time.Minute, "Policy.a.Compliant", CategoryPolicy),
		record(2*time.Minute, "Policy.b.Compliant", CategoryPolicy),
	}

	anchor, ok := ResolveAnchor(tl, AnchorSpec{
		{Label: "last-compliant", Match: NameSuffix(".Compliant"), Last: true},
	})
	require.True(t, ok)
	assert.Equal(t, base.Add(2*time.Minute), anchor.Timestamp)
}

func TestResolveAnchorNone(t *testing.T) {
	tl := Timeline{record(0, "Other", CategoryPolicy)}

	_, ok := ResolveAnchor(tl, AnchorSpec{
		{Label: "a", Match: NameIs("A")},
		{Label: "b", Match: NameIs("B")},
	})
	assert.False(t, ok)
}

func TestResolveAnchorIgnoresPresenceOnly(t *testing.T) {
	tl := Timeline{
		{Name: "Deployment.Done", Category: CategoryDoneMarker, PresenceOnly: true},
	}

	_, ok := ResolveAnchor(tl, AnchorSpec{
		{Label: "done", Match: NameIs("Deployment.Done")},
	})
	assert.False(t, ok)
}
