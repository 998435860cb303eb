package timeline

import (
	"sort"
	"time"
)

// MilestoneDef maps a fixed human label to the predicate identifying its
// representative record in the timeline.
type MilestoneDef struct {
	Label string

	// Match selects candidate records for the label.
	Match Predicate

	// Last picks the latest match instead of the first. Terminal labels
	// such as final policy compliance use this.
	Last bool
}

// MilestoneEntry is one row of the derived milestone table.
type MilestoneEntry struct {
	Label     string    `json:"label"`
	Timestamp time.Time `json:"timestamp"`

	// Elapsed is the duration since the resolved start anchor. Valid only
	// when HasElapsed is true; when the start anchor is unresolved the
	// value is undefined and renderers must show "unavailable".
	Elapsed    time.Duration `json:"elapsed,omitempty"`
	HasElapsed bool          `json:"has_elapsed"`

	// Delta is the duration since the previous entry in chronological
	// order. Start marks the first entry, whose delta is the START
	// sentinel rather than a duration.
	Delta time.Duration `json:"delta,omitempty"`
	Start bool          `json:"start,omitempty"`
}

// CategorySummary is the per-category breakdown of the timeline.
type CategorySummary struct {
	Category   Category  `json:"category"`
	EventCount int       `json:"event_count"`
	FirstEvent time.Time `json:"first_event"`
	LastEvent  time.Time `json:"last_event"`
}

// Summary is the full derived model behind both the structured and the
// narrative output of the summarize operation.
type Summary struct {
	RunID       string `json:"run_id,omitempty"`
	Cluster     string `json:"cluster"`
	TotalEvents int    `json:"total_events"`

	Milestones []CategorySummary `json:"milestones"`
	Entries    []MilestoneEntry  `json:"milestone_table"`

	// KeyTimestamps maps each well-known label to its instant, or nil when
	// the label had no matching record.
	KeyTimestamps map[string]*time.Time `json:"key_timestamps"`

	// Presence flags one entry per registered provider: whether the source
	// contributed at least one record.
	Presence map[string]bool `json:"presence"`

	StartAnchor      *Anchor `json:"start_anchor,omitempty"`
	CompletionAnchor *Anchor `json:"completion_anchor,omitempty"`

	// ReadyFor is now minus the completion anchor, valid when Ready.
	Ready    bool          `json:"ready"`
	ReadyFor time.Duration `json:"ready_for,omitempty"`

	// Done reports the presence-only done marker.
	Done bool `json:"done_marker"`

	AllEvents Timeline `json:"all_events"`
}

// Summarizer derives milestone entries and the readiness verdict from a
// Timeline. Now is injectable so the time-since computation is
// deterministic under test.
type Summarizer struct {
	Now func() time.Time
}

// NewSummarizer returns a Summarizer using wall-clock time.
func NewSummarizer() *Summarizer {
	return &Summarizer{Now: time.Now}
}

// Milestones matches defs against the timeline and returns the entries in
// chronological order with elapsed and delta durations filled in.
//
// Entries are sorted by timestamp before deltas are computed: label
// definition order and real-world order are not always the same, and the
// delta chain must follow the latter. Labels with no match are absent from
// the result, not zero-filled. Presence-only records never match.
func (s *Summarizer) Milestones(tl Timeline, start *Anchor, defs []MilestoneDef) []MilestoneEntry {
	var entries []MilestoneEntry
	for _, def := range defs {
		var (
			rec EventRecord
			ok  bool
		)
		if def.Last {
			rec, ok = tl.Last(def.Match)
		} else {
			rec, ok = tl.First(def.Match)
		}
		if !ok {
			continue
		}
		entries = append(entries, MilestoneEntry{Label: def.Label, Timestamp: rec.Timestamp})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})

	for i := range entries {
		if start != nil {
			entries[i].Elapsed = entries[i].Timestamp.Sub(start.Timestamp)
			entries[i].HasElapsed = true
		}
		if i == 0 {
			entries[i].Start = true
		} else {
			entries[i].Delta = entries[i].Timestamp.Sub(entries[i-1].Timestamp)
		}
	}
	return entries
}

// ReadySince reports how long the workload has been ready: now minus the
// completion anchor. The second return is false when the completion anchor
// is unresolved.
func (s *Summarizer) ReadySince(completion *Anchor) (time.Duration, bool) {
	if completion == nil {
		return 0, false
	}
	return s.Now().Sub(completion.Timestamp), true
}

// Breakdown computes the per-category first/last/count table in taxonomy
// display order, skipping categories with no events.
func Breakdown(tl Timeline) []CategorySummary {
	byCat := make(map[Category][]EventRecord)
	for _, r := range tl {
		byCat[r.Category] = append(byCat[r.Category], r)
	}

	var out []CategorySummary
	for _, cat := range Categories() {
		records := byCat[cat]
		if len(records) == 0 {
			continue
		}
		cs := CategorySummary{Category: cat, EventCount: len(records)}
		for _, r := range records {
			if !r.Timed() {
				continue
			}
			if cs.FirstEvent.IsZero() || r.Timestamp.Before(cs.FirstEvent) {
				cs.FirstEvent = r.Timestamp
			}
			if r.Timestamp.After(cs.LastEvent) {
				cs.LastEvent = r.Timestamp
			}
		}
		out = append(out, cs)
	}
	return out
}

// Summarize assembles the complete Summary from a built timeline.
func (s *Summarizer) Summarize(tl Timeline, cluster string, startSpec, completionSpec AnchorSpec, defs []MilestoneDef, providerNames []string) Summary {
	var startPtr, completionPtr *Anchor
	if start, ok := ResolveAnchor(tl, startSpec); ok {
		startPtr = &start
	}
	if completion, ok := ResolveAnchor(tl, completionSpec); ok {
		completionPtr = &completion
	}

	entries := s.Milestones(tl, startPtr, defs)

	keyTimestamps := make(map[string]*time.Time, len(defs))
	for _, def := range defs {
		keyTimestamps[def.Label] = nil
	}
	for _, e := range entries {
		ts := e.Timestamp
		keyTimestamps[e.Label] = &ts
	}

	sources := tl.Sources()
	presence := make(map[string]bool, len(providerNames))
	for _, name := range providerNames {
		presence[name] = sources[name]
	}

	done := false
	for _, r := range tl {
		if r.PresenceOnly && r.Category == CategoryDoneMarker {
			done = true
			break
		}
	}

	summary := Summary{
		Cluster:          cluster,
		TotalEvents:      len(tl),
		Milestones:       Breakdown(tl),
		Entries:          entries,
		KeyTimestamps:    keyTimestamps,
		Presence:         presence,
		StartAnchor:      startPtr,
		CompletionAnchor: completionPtr,
		Done:             done,
		AllEvents:        tl,
	}
	if readyFor, ok := s.ReadySince(completionPtr); ok {
		summary.Ready = true
		summary.ReadyFor = readyFor
	}
	return summary
}
