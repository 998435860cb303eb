package providers

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/deploytrace/deploytrace/internal/hub"
	"github.com/deploytrace/deploytrace/internal/timeline"
)

// GitOpsProvider observes the Argo CD Application that triggered the
// deployment. Only one Application is meaningful as "the" trigger, so the
// provider searches the candidate namespaces and emits at most one record:
// the earliest Application whose name matches the cluster.
type GitOpsProvider struct {
	reader hub.Reader
	params Params
	log    logr.Logger
}

func (p *GitOpsProvider) Name() string { return "gitops" }

func (p *GitOpsProvider) Collect(ctx context.Context, cluster string) ([]timeline.EventRecord, error) {
	var earliest *unstructured.Unstructured

	for _, ns := range p.params.gitopsNamespaces() {
		apps, err := p.reader.List(ctx, hub.GVKApplication, ns)
		if err != nil {
			if hub.IsNotFound(err) {
				continue
			}
			p.log.V(1).Info("gitops namespace query failed", "namespace", ns, "error", err.Error())
			continue
		}
		for i := range apps {
			app := apps[i]
			if !applicationMatchesCluster(app, cluster) {
				continue
			}
			if earliest == nil || app.GetCreationTimestamp().Time.Before(earliest.GetCreationTimestamp().Time) {
				earliest = &apps[i]
			}
		}
	}

	if earliest == nil {
		return nil, nil
	}

	record, ok := creationRecord(*earliest,
		"GitOps.Application.Created",
		fmt.Sprintf("Argo CD Application %s created", earliest.GetName()),
		timeline.CategoryGitOpsTrigger, p.Name())
	if !ok {
		return nil, nil
	}
	return []timeline.EventRecord{record}, nil
}

// applicationMatchesCluster matches an Application to the cluster either by
// exact name or by the cluster name appearing as a name component, the
// convention of site-generator pipelines ("<site>-<cluster>").
func applicationMatchesCluster(app unstructured.Unstructured, cluster string) bool {
	name := app.GetName()
	if name == cluster {
		return true
	}
	return len(name) > len(cluster) &&
		(name[:len(cluster)+1] == cluster+"-" || name[len(name)-len(cluster)-1:] == "-"+cluster)
}
