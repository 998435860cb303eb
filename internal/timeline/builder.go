package timeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-logr/logr"
)

// Provider is implemented by each source-specific collector. A provider
// observes one hub resource category and maps it to EventRecords.
//
// Collect returns the records currently observable for the cluster. A
// missing resource or a failed remote query is not an error condition for
// the aggregation: providers should return (nil, nil) when their source is
// absent, and any error they do return is contained by the Builder as an
// empty contribution.
type Provider interface {
	// Name identifies the provider in logs and presence flags.
	Name() string

	// Collect returns zero or more records for the named cluster.
	Collect(ctx context.Context, cluster string) ([]EventRecord, error)
}

// DefaultProviderTimeout bounds a single provider query.
const DefaultProviderTimeout = 30 * time.Second

// Builder fans out to all registered providers and merges their records
// into a canonical Timeline.
type Builder struct {
	providers []Provider
	timeout   time.Duration
	log       logr.Logger
	fatal     func(error) bool
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithProviderTimeout sets the per-provider query timeout.
func WithProviderTimeout(d time.Duration) BuilderOption {
	return func(b *Builder) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// WithLogger sets the logger used for soft warnings.
func WithLogger(log logr.Logger) BuilderOption {
	return func(b *Builder) { b.log = log }
}

// WithFatalErrors sets the classifier for provider errors that may abort
// the whole aggregation. When every provider fails and at least one
// failure is classified fatal, Build returns that error instead of an
// empty timeline. Without a classifier every failure is contained.
func WithFatalErrors(classify func(error) bool) BuilderOption {
	return func(b *Builder) { b.fatal = classify }
}

// NewBuilder creates a Builder over the given providers. Provider order is
// significant: it is the tie-break for records with equal timestamps.
func NewBuilder(providers []Provider, opts ...BuilderOption) *Builder {
	b := &Builder{
		providers: providers,
		timeout:   DefaultProviderTimeout,
		log:       logr.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// contribution carries one provider's result back to the collector.
type contribution struct {
	index   int
	records []EventRecord
	err     error
}

// Build queries every provider concurrently and returns the merged Timeline.
//
// Each provider runs under its own timeout; a slow, failing, or absent
// provider contributes nothing and is logged as a soft warning. If ctx is
// cancelled mid-collection, Build returns the Timeline assembled from the
// contributions that had already arrived. Sorting happens strictly after
// collection, so the output order is deterministic regardless of the order
// in which providers complete.
//
// Containment has one limit: when not a single provider succeeds and at
// least one failure is classified fatal (see WithFatalErrors), the hub
// itself is unreachable and Build returns that error. An empty timeline
// from a healthy hub stays a successful run.
func (b *Builder) Build(ctx context.Context, cluster string) (Timeline, error) {
	results := make(chan contribution, len(b.providers))

	for i, p := range b.providers {
		go func(i int, p Provider) {
			pctx, cancel := context.WithTimeout(ctx, b.timeout)
			defer cancel()
			records, err := p.Collect(pctx, cluster)
			results <- contribution{index: i, records: records, err: err}
		}(i, p)
	}

	pool := make([][]EventRecord, len(b.providers))
	succeeded := 0
	var fatalErr error
collect:
	for range b.providers {
		select {
		case c := <-results:
			if c.err != nil {
				if b.fatal != nil && b.fatal(c.err) && fatalErr == nil {
					fatalErr = c.err
				}
				b.log.Info("provider unavailable, contributing no events",
					"provider", b.providers[c.index].Name(), "error", c.err.Error())
				continue
			}
			succeeded++
			pool[c.index] = c.records
		case <-ctx.Done():
			b.log.Info("collection cancelled, building partial timeline",
				"cluster", cluster)
			break collect
		}
	}

	if succeeded == 0 && fatalErr != nil {
		return nil, fmt.Errorf("cannot observe cluster %s: %w", cluster, fatalErr)
	}
	return b.merge(pool), nil
}

// merge drops unusable records, collapses exact duplicates, and sorts the
// pool into the canonical order.
func (b *Builder) merge(pool [][]EventRecord) Timeline {
	type keyed struct {
		record EventRecord
		order  int
	}
	var all []keyed
	seen := make(map[string]bool)

	for i, records := range pool {
		name := ""
		if i < len(b.providers) {
			name = b.providers[i].Name()
		}
		for _, r := range records {
			if r.Source == "" {
				r.Source = name
			}
			if r.Timestamp.IsZero() && !r.PresenceOnly {
				b.log.V(1).Info("dropping record without a resolvable timestamp",
					"event", r.Name, "provider", r.Source)
				continue
			}
			key := r.Timestamp.Format(time.RFC3339Nano) + "\x00" + r.Name + "\x00" + r.Description
			if seen[key] {
				continue
			}
			seen[key] = true
			all = append(all, keyed{record: r, order: i})
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		// Presence-only records sort after every timed record.
		if a.record.PresenceOnly != b.record.PresenceOnly {
			return b.record.PresenceOnly
		}
		if !a.record.Timestamp.Equal(b.record.Timestamp) {
			return a.record.Timestamp.Before(b.record.Timestamp)
		}
		if a.order != b.order {
			return a.order < b.order
		}
		return a.record.Name < b.record.Name
	})

	tl := make(Timeline, 0, len(all))
	for _, k := range all {
		tl = append(tl, k.record)
	}
	return tl
}
