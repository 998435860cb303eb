package providers

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/deploytrace/deploytrace/internal/hub"
	"github.com/deploytrace/deploytrace/internal/timeline"
)

// ClusterDeploymentProvider observes the Hive ClusterDeployment: creation,
// install start, and install completion instants.
type ClusterDeploymentProvider struct {
	reader hub.Reader
	params Params
}

func (p *ClusterDeploymentProvider) Name() string { return "clusterdeployment" }

func (p *ClusterDeploymentProvider) Collect(ctx context.Context, cluster string) ([]timeline.EventRecord, error) {
	cd, err := p.reader.Get(ctx, hub.GVKClusterDeployment, p.params.namespace(), cluster)
	if err != nil {
		if hub.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var records []timeline.EventRecord

	if rec, ok := creationRecord(*cd,
		"ClusterDeployment.Created",
		fmt.Sprintf("ClusterDeployment %s created", cd.GetName()),
		timeline.CategoryClusterInstall, p.Name()); ok {
		records = append(records, rec)
	}

	for field, rec := range map[string]struct {
		name        string
		description string
	}{
		"installStartedTimestamp": {"ClusterDeployment.InstallStarted", "cluster installation started"},
		"installedTimestamp":      {"ClusterDeployment.Installed", "cluster installation completed"},
	} {
		value, found, _ := unstructured.NestedString(cd.Object, "status", field)
		if !found {
			continue
		}
		ts, ok := parseTime(value)
		if !ok {
			continue
		}
		records = append(records, timeline.EventRecord{
			Timestamp:   ts,
			Name:        rec.name,
			Description: rec.description,
			Category:    timeline.CategoryClusterInstall,
			Source:      p.Name(),
			Metadata: map[string]string{
				"resource":  cd.GetName(),
				"namespace": cd.GetNamespace(),
			},
		})
	}

	return records, nil
}
