// Package timeline defines the canonical event model for a managed-cluster
// deployment and the machinery that derives milestones and durations from it.
//
// Every observation, regardless of which hub resource produced it, is
// normalized into an EventRecord. The Builder merges records from all
// registered providers into a single deduplicated, chronologically sorted
// Timeline; anchors and the summarizer then derive elapsed/delta durations
// and a readiness verdict from that Timeline.
package timeline

import "time"

// Category is the coarse workflow-phase taxonomy used to group events.
// The order of the taxonomy is a display convention only; phases overlap
// in time in real deployments.
type Category string

const (
	CategoryGitOpsTrigger    Category = "GITOPS_TRIGGER"
	CategoryClusterInstall   Category = "CLUSTER_INSTALL"
	CategoryDiscovery        Category = "DISCOVERY"
	CategoryProvisioning     Category = "PROVISIONING"
	CategoryImport           Category = "IMPORT"
	CategoryManifestApply    Category = "MANIFEST_APPLY"
	CategoryPolicy           Category = "POLICY"
	CategoryAvailability     Category = "AVAILABILITY"
	CategoryPolicyCompletion Category = "POLICY_COMPLETION"
	CategoryDoneMarker       Category = "DONE_MARKER"
)

// Categories returns the taxonomy in display order.
func Categories() []Category {
	return []Category{
		CategoryGitOpsTrigger,
		CategoryClusterInstall,
		CategoryDiscovery,
		CategoryProvisioning,
		CategoryImport,
		CategoryManifestApply,
		CategoryPolicy,
		CategoryAvailability,
		CategoryPolicyCompletion,
		CategoryDoneMarker,
	}
}

// EventRecord is one normalized, timestamped observation from a provider.
// Records are immutable once emitted; downstream code only reads them.
type EventRecord struct {
	// Timestamp is the UTC instant of the underlying state transition.
	// Zero only for presence-only records (PresenceOnly is then true).
	Timestamp time.Time `json:"timestamp"`

	// Name is a hierarchical dotted identifier such as
	// "ClusterDeployment.Installed" or "Policy.<name>.Compliant". It is the
	// stable key used by anchor resolution and milestone matching. Names may
	// recur across records.
	Name string `json:"event"`

	// Description is a free-text explanation for humans; logic never
	// inspects it.
	Description string `json:"event_description"`

	// Category is the workflow phase assigned by the producing provider.
	Category Category `json:"milestone"`

	// Source is the registered name of the provider that emitted the
	// record. Filled in by the Builder when a provider leaves it empty.
	Source string `json:"source,omitempty"`

	// Metadata carries provider-specific key/value pairs (originating
	// resource name, namespace) through to the output untouched.
	Metadata map[string]string `json:"metadata,omitempty"`

	// PresenceOnly marks records whose source carries no transition time
	// (e.g. a done-marker label). Such records survive the builder's
	// missing-timestamp drop but are excluded from all duration arithmetic
	// and sort after every timed record.
	PresenceOnly bool `json:"presence_only,omitempty"`
}

// Timed reports whether the record may participate in duration arithmetic.
func (r EventRecord) Timed() bool {
	return !r.PresenceOnly && !r.Timestamp.IsZero()
}

// Timeline is the deduplicated merge of all providers' records, sorted
// ascending by timestamp. Presence-only records sort after all timed ones.
type Timeline []EventRecord

// First returns the earliest timed record matching pred.
func (t Timeline) First(pred Predicate) (EventRecord, bool) {
	for _, r := range t {
		if r.Timed() && pred(r) {
			return r, true
		}
	}
	return EventRecord{}, false
}

// Last returns the latest timed record matching pred.
func (t Timeline) Last(pred Predicate) (EventRecord, bool) {
	for i := len(t) - 1; i >= 0; i-- {
		if t[i].Timed() && pred(t[i]) {
			return t[i], true
		}
	}
	return EventRecord{}, false
}

// Sources returns the set of provider names that contributed at least one
// record, used for the feature-presence flags in the summary header.
func (t Timeline) Sources() map[string]bool {
	out := make(map[string]bool)
	for _, r := range t {
		if r.Source != "" {
			out[r.Source] = true
		}
	}
	return out
}
