package providers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/deploytrace/deploytrace/internal/hub"
	"github.com/deploytrace/deploytrace/internal/timeline"
)

// fakeReader serves canned unstructured objects keyed by kind and
// namespace. Anything not present behaves as absent on the hub.
type fakeReader struct {
	lists  map[string][]unstructured.Unstructured
	events []corev1.Event
}

func listKey(kind, namespace string) string { return kind + "|" + namespace }

func (f *fakeReader) List(_ context.Context, gvk schema.GroupVersionKind, namespace string) ([]unstructured.Unstructured, error) {
	items, ok := f.lists[listKey(gvk.Kind, namespace)]
	if !ok {
		return nil, fmt.Errorf("%w: no %s in %q", hub.ErrNotFound, gvk.Kind, namespace)
	}
	return items, nil
}

func (f *fakeReader) Get(ctx context.Context, gvk schema.GroupVersionKind, namespace, name string) (*unstructured.Unstructured, error) {
	items, err := f.List(ctx, gvk, namespace)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].GetName() == name {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s %s/%s", hub.ErrNotFound, gvk.Kind, namespace, name)
}

func (f *fakeReader) CoreEvents(_ context.Context, _ string) ([]corev1.Event, error) {
	if f.events == nil {
		return nil, fmt.Errorf("%w: no events", hub.ErrNotFound)
	}
	return f.events, nil
}

func testLogger() logr.Logger { return logr.Discard() }

const testCreated = "2025-06-01T12:00:00Z"

var testCreatedTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// obj builds an unstructured object with the fields the providers read.
func obj(kind, name, namespace, created string) unstructured.Unstructured {
	u := unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": "v1",
		"kind":       kind,
		"metadata": map[string]interface{}{
			"name":              name,
			"namespace":         namespace,
			"creationTimestamp": created,
		},
	}}
	return u
}

func withConditions(u unstructured.Unstructured, conditions ...map[string]interface{}) unstructured.Unstructured {
	raw := make([]interface{}, 0, len(conditions))
	for _, c := range conditions {
		raw = append(raw, c)
	}
	status, _, _ := unstructured.NestedMap(u.Object, "status")
	if status == nil {
		status = map[string]interface{}{}
	}
	status["conditions"] = raw
	_ = unstructured.SetNestedMap(u.Object, status, "status")
	return u
}

func cond(condType, status, message, transition string) map[string]interface{} {
	return map[string]interface{}{
		"type":               condType,
		"status":             status,
		"message":            message,
		"lastTransitionTime": transition,
	}
}

func TestParseTime(t *testing.T) {
	ts, ok := parseTime("2025-06-01T12:00:00Z")
	require.True(t, ok)
	assert.Equal(t, testCreatedTime, ts)

	ts, ok = parseTime("2025-06-01T12:00:00.123456789Z")
	require.True(t, ok)
	assert.Equal(t, 123456789, ts.Nanosecond())

	_, ok = parseTime("")
	assert.False(t, ok)

	_, ok = parseTime("yesterday")
	assert.False(t, ok)
}

func TestConditionRecords(t *testing.T) {
	u := withConditions(obj("AgentClusterInstall", "c1", "c1", testCreated),
		cond("Completed", "True", "installation finished", "2025-06-01T12:30:00Z"),
		cond("Validated", "False", "validation pending", "2025-06-01T12:05:00Z"),
		cond("SpecSynced", "True", "spec synced", ""),
		cond("Ignored", "True", "not wanted", "2025-06-01T12:10:00Z"),
	)

	wanted := map[string]timeline.Category{
		"Completed":  timeline.CategoryClusterInstall,
		"Validated":  timeline.CategoryClusterInstall,
		"SpecSynced": timeline.CategoryClusterInstall,
	}

	records := conditionRecords(u, "AgentClusterInstall", wanted, "test")
	// Only Completed: Validated is False, SpecSynced has no transition
	// time, Ignored is not wanted.
	require.Len(t, records, 1)
	assert.Equal(t, "AgentClusterInstall.Completed", records[0].Name)
	assert.Equal(t, "installation finished", records[0].Description)
	assert.Equal(t, "c1", records[0].Metadata["resource"])
}

func TestCreationRecord(t *testing.T) {
	rec, ok := creationRecord(obj("ClusterDeployment", "c1", "c1", testCreated),
		"ClusterDeployment.Created", "created", timeline.CategoryClusterInstall, "test")
	require.True(t, ok)
	assert.Equal(t, testCreatedTime, rec.Timestamp)

	_, ok = creationRecord(obj("ClusterDeployment", "c1", "c1", ""),
		"ClusterDeployment.Created", "created", timeline.CategoryClusterInstall, "test")
	assert.False(t, ok)
}

func TestDefaultRegistrationOrder(t *testing.T) {
	registered := Default(&fakeReader{}, Params{Cluster: "c1"}, testLogger())
	names := Names(registered)
	// gitops first: it is the preferred start anchor and the tie-break
	// winner at equal timestamps.
	require.NotEmpty(t, names)
	assert.Equal(t, "gitops", names[0])
	assert.Equal(t, "donemarker", names[len(names)-1])
	assert.Len(t, names, 11)
}
