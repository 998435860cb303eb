package timeline

import "time"

// AnchorCandidate is one entry in a priority-ordered anchor specification.
type AnchorCandidate struct {
	// Label names the signal, e.g. "gitops-app-created".
	Label string

	// Match selects the records that can satisfy this candidate.
	Match Predicate

	// Last selects the latest matching record instead of the earliest.
	// Completion-type anchors such as "last policy compliant" use this.
	Last bool
}

// AnchorSpec is a priority-ordered list of candidate signals. Resolution
// walks the list in order and stops at the first candidate with at least
// one match, regardless of whether a lower-priority candidate would have
// matched an earlier record.
type AnchorSpec []AnchorCandidate

// Anchor is a resolved reference instant used as the start or completion
// point for duration arithmetic.
type Anchor struct {
	Label     string    `json:"label"`
	Timestamp time.Time `json:"timestamp"`
}

// ResolveAnchor evaluates spec against the timeline. It returns false when
// no candidate matched; callers must treat that as "duration arithmetic
// anchored here is undefined", never as a zero instant.
func ResolveAnchor(tl Timeline, spec AnchorSpec) (Anchor, bool) {
	for _, cand := range spec {
		var (
			match EventRecord
			ok    bool
		)
		if cand.Last {
			match, ok = tl.Last(cand.Match)
		} else {
			match, ok = tl.First(cand.Match)
		}
		if ok {
			return Anchor{Label: cand.Label, Timestamp: match.Timestamp}, true
		}
	}
	return Anchor{}, false
}
