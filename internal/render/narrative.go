package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/deploytrace/deploytrace/internal/timeline"
)

// narrative writes the human-readable report: header with feature-presence
// flags, the milestone table, the readiness line, the per-category
// breakdown, and the one-line deployment duration.
func narrative(w io.Writer, s timeline.Summary) error {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Deployment timeline for cluster %s", s.Cluster)))
	if s.RunID != "" {
		fmt.Fprintln(w, dimStyle.Render("run "+s.RunID))
	}
	fmt.Fprintf(w, "%d events observed\n\n", s.TotalEvents)

	writePresence(w, s)
	writeMilestoneTable(w, s)
	writeReadiness(w, s)
	writeBreakdown(w, s)
	writeDeploymentDuration(w, s)
	return nil
}

func writePresence(w io.Writer, s timeline.Summary) {
	fmt.Fprintln(w, sectionStyle.Render("Signals"))
	names := make([]string, 0, len(s.Presence))
	for name := range s.Presence {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if s.Presence[name] {
			fmt.Fprintf(w, "  %s %s\n", readyStyle.Render(presentMark), name)
		} else {
			fmt.Fprintf(w, "  %s %s %s\n", absentStyle.Render(absentMark), name, dimStyle.Render("Not Present"))
		}
	}
	fmt.Fprintln(w)
}

func writeMilestoneTable(w io.Writer, s timeline.Summary) {
	fmt.Fprintln(w, sectionStyle.Render("Milestones"))
	if len(s.Entries) == 0 {
		fmt.Fprintln(w, dimStyle.Render("  no milestones matched"))
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "  %-34s %-20s %-14s %s\n", "MILESTONE", "TIMESTAMP", "ELAPSED", "DELTA")
	for _, e := range s.Entries {
		elapsed := Unavailable
		if e.HasElapsed {
			elapsed = formatDuration(e.Elapsed)
		}
		delta := StartSentinel
		if !e.Start {
			delta = "+" + formatDuration(e.Delta)
		}
		fmt.Fprintf(w, "  %-34s %-20s %-14s %s\n", e.Label, formatTime(e.Timestamp), elapsed, delta)
	}
	fmt.Fprintln(w)
}

func writeReadiness(w io.Writer, s timeline.Summary) {
	fmt.Fprintln(w, sectionStyle.Render("Readiness"))
	switch {
	case s.Ready:
		fmt.Fprintf(w, "  %s workload ready for %s (completion: %s at %s)\n",
			readyStyle.Render(presentMark),
			formatDuration(s.ReadyFor),
			s.CompletionAnchor.Label,
			formatTime(s.CompletionAnchor.Timestamp))
	default:
		fmt.Fprintf(w, "  %s not yet ready\n", notReadyStyle.Render(absentMark))
	}
	if s.Done {
		fmt.Fprintf(w, "  %s done marker present\n", readyStyle.Render(presentMark))
	}
	fmt.Fprintln(w)
}

func writeBreakdown(w io.Writer, s timeline.Summary) {
	fmt.Fprintln(w, sectionStyle.Render("Breakdown by phase"))
	for _, cs := range s.Milestones {
		first, last := Unavailable, Unavailable
		if !cs.FirstEvent.IsZero() {
			first = formatTime(cs.FirstEvent)
		}
		if !cs.LastEvent.IsZero() {
			last = formatTime(cs.LastEvent)
		}
		fmt.Fprintf(w, "  %-18s %3d events   first %s   last %s\n",
			cs.Category, cs.EventCount, first, last)
	}
	fmt.Fprintln(w)
}

func writeDeploymentDuration(w io.Writer, s timeline.Summary) {
	if s.StartAnchor == nil || s.CompletionAnchor == nil {
		fmt.Fprintln(w, dimStyle.Render("deployment duration unavailable: anchors unresolved"))
		return
	}
	total := s.CompletionAnchor.Timestamp.Sub(s.StartAnchor.Timestamp)
	fmt.Fprintf(w, "Deployment took %s (%s -> %s)\n",
		titleStyle.Render(formatDuration(total)),
		s.StartAnchor.Label, s.CompletionAnchor.Label)
}
