package providers

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/deploytrace/deploytrace/internal/hub"
	"github.com/deploytrace/deploytrace/internal/timeline"
)

// BareMetalHostProvider observes the metal3 BareMetalHosts backing the
// cluster: creation plus the most recent provisioning-state transition.
type BareMetalHostProvider struct {
	reader hub.Reader
	params Params
}

func (p *BareMetalHostProvider) Name() string { return "baremetalhost" }

func (p *BareMetalHostProvider) Collect(ctx context.Context, _ string) ([]timeline.EventRecord, error) {
	hosts, err := p.reader.List(ctx, hub.GVKBareMetalHost, p.params.namespace())
	if err != nil {
		if hub.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var records []timeline.EventRecord
	for _, host := range hosts {
		prefix := "BareMetalHost." + host.GetName()

		if rec, ok := creationRecord(host, prefix+".Created",
			fmt.Sprintf("bare metal host %s created", host.GetName()),
			timeline.CategoryProvisioning, p.Name()); ok {
			records = append(records, rec)
		}

		state, foundState, _ := unstructured.NestedString(host.Object, "status", "provisioning", "state")
		updated, foundTime, _ := unstructured.NestedString(host.Object, "status", "lastUpdated")
		if !foundState || !foundTime || state == "" {
			continue
		}
		ts, ok := parseTime(updated)
		if !ok {
			continue
		}
		records = append(records, timeline.EventRecord{
			Timestamp:   ts,
			Name:        fmt.Sprintf("%s.%s", prefix, titleCase(state)),
			Description: fmt.Sprintf("host entered provisioning state %q", state),
			Category:    timeline.CategoryProvisioning,
			Source:      p.Name(),
			Metadata: map[string]string{
				"resource":  host.GetName(),
				"namespace": host.GetNamespace(),
				"state":     state,
			},
		})
	}
	return records, nil
}

// titleCase upper-cases the first byte of an ASCII state name so event
// name components stay consistent ("provisioned" -> "Provisioned").
func titleCase(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
