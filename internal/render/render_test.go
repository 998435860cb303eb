package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploytrace/deploytrace/internal/timeline"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func sampleTimeline() timeline.Timeline {
	return timeline.Timeline{
		{
			Timestamp:   base,
			Name:        "GitOps.Application.Created",
			Description: "trigger",
			Category:    timeline.CategoryGitOpsTrigger,
			Source:      "gitops",
		},
		{
			Timestamp:   base.Add(17*time.Minute + 35*time.Second),
			Name:        "ClusterDeployment.Installed",
			Description: "installed",
			Category:    timeline.CategoryClusterInstall,
			Source:      "clusterdeployment",
		},
		{
			Name:         "Deployment.Done",
			Category:     timeline.CategoryDoneMarker,
			Source:       "donemarker",
			PresenceOnly: true,
		},
	}
}

func sampleSummary() timeline.Summary {
	start := timeline.Anchor{Label: "gitops-app-created", Timestamp: base}
	completion := timeline.Anchor{Label: "policies-compliant", Timestamp: base.Add(20 * time.Minute)}
	return timeline.Summary{
		RunID:       "run-1",
		Cluster:     "sno-1",
		TotalEvents: 3,
		Entries: []timeline.MilestoneEntry{
			{Label: "GitOps Application Created", Timestamp: base, HasElapsed: true, Start: true},
			{Label: "Cluster Install Completed", Timestamp: base.Add(17*time.Minute + 35*time.Second),
				HasElapsed: true, Elapsed: 17*time.Minute + 35*time.Second, Delta: 17*time.Minute + 35*time.Second},
		},
		Milestones: timeline.Breakdown(sampleTimeline()),
		Presence: map[string]bool{
			"gitops":        true,
			"baremetalhost": false,
		},
		StartAnchor:      &start,
		CompletionAnchor: &completion,
		Ready:            true,
		ReadyFor:         10 * time.Minute,
		Done:             true,
		AllEvents:        sampleTimeline(),
	}
}

func TestTimelineJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Timeline(&buf, sampleTimeline(), FormatJSON))

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, "GitOps.Application.Created", decoded[0]["event"])
	assert.Equal(t, "GITOPS_TRIGGER", decoded[0]["milestone"])
}

func TestTimelineYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Timeline(&buf, sampleTimeline(), FormatYAML))
	assert.Contains(t, buf.String(), "event: GitOps.Application.Created")
}

func TestTimelineText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Timeline(&buf, sampleTimeline(), FormatText))

	out := buf.String()
	assert.Contains(t, out, "GitOps.Application.Created")
	assert.Contains(t, out, "2025-06-01 12:00:00")
	assert.Contains(t, out, "presence only")

	// Chronological: trigger line appears before the install line.
	assert.Less(t,
		strings.Index(out, "GitOps.Application.Created"),
		strings.Index(out, "ClusterDeployment.Installed"))
}

func TestTimelineTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Timeline(&buf, nil, FormatText))
	assert.Contains(t, buf.String(), "no events observed")
}

func TestTimelineUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Timeline(&buf, nil, "xml"))
}

func TestSummaryNarrative(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, sampleSummary(), FormatText))

	out := buf.String()
	assert.Contains(t, out, "sno-1")
	assert.Contains(t, out, "3 events observed")

	// Presence flags, absent source clearly marked.
	assert.Contains(t, out, "gitops")
	assert.Contains(t, out, "Not Present")

	// Milestone table with elapsed and delta.
	assert.Contains(t, out, "Cluster Install Completed")
	assert.Contains(t, out, "17m35s")
	assert.Contains(t, out, StartSentinel)

	// Readiness and deployment duration lines.
	assert.Contains(t, out, "ready for 10m0s")
	assert.Contains(t, out, "done marker present")
	assert.Contains(t, out, "Deployment took 20m0s")
}

func TestSummaryNarrativeNotReady(t *testing.T) {
	s := sampleSummary()
	s.Ready = false
	s.CompletionAnchor = nil
	s.Done = false

	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, s, FormatText))

	out := buf.String()
	assert.Contains(t, out, "not yet ready")
	assert.Contains(t, out, "deployment duration unavailable")
}

func TestSummaryNarrativeUnresolvedStart(t *testing.T) {
	s := sampleSummary()
	s.StartAnchor = nil
	s.Entries = []timeline.MilestoneEntry{
		{Label: "Cluster Install Completed", Timestamp: base, Start: true},
	}

	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, s, FormatText))
	assert.Contains(t, buf.String(), Unavailable)
}

func TestSummaryJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, sampleSummary(), FormatJSON))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "sno-1", decoded["cluster"])
	assert.Equal(t, float64(3), decoded["total_events"])
	assert.NotNil(t, decoded["all_events"])
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "17m35s", formatDuration(17*time.Minute+35*time.Second))
	assert.Equal(t, "2s", formatDuration(2*time.Second+300*time.Millisecond))
	assert.Equal(t, "0s", formatDuration(0))
}
