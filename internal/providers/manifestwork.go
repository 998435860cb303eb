package providers

import (
	"context"

	"github.com/deploytrace/deploytrace/internal/hub"
	"github.com/deploytrace/deploytrace/internal/timeline"
)

var manifestWorkConditions = map[string]timeline.Category{
	"Applied":   timeline.CategoryManifestApply,
	"Available": timeline.CategoryManifestApply,
}

// ManifestWorkProvider observes the ManifestWorks delivering manifests to
// the managed cluster; each work's Applied/Available transitions become
// records.
type ManifestWorkProvider struct {
	reader hub.Reader
	params Params
}

func (p *ManifestWorkProvider) Name() string { return "manifestwork" }

func (p *ManifestWorkProvider) Collect(ctx context.Context, _ string) ([]timeline.EventRecord, error) {
	works, err := p.reader.List(ctx, hub.GVKManifestWork, p.params.namespace())
	if err != nil {
		if hub.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var records []timeline.EventRecord
	for _, work := range works {
		prefix := "ManifestWork." + work.GetName()
		records = append(records, conditionRecords(work, prefix, manifestWorkConditions, p.Name())...)
	}
	return records, nil
}
