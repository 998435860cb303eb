package handlers

import (
	"context"
	"os"

	"github.com/deploytrace/deploytrace/internal/providers"
	"github.com/deploytrace/deploytrace/internal/render"
	"github.com/deploytrace/deploytrace/internal/timeline"
)

// Summarize handles the summarize command: derives milestones, durations,
// and the readiness verdict from the aggregated timeline.
func Summarize(ctx context.Context, opts Options) error {
	res, err := buildTimeline(ctx, opts)
	if err != nil {
		return err
	}

	summarizer := timeline.NewSummarizer()
	summary := summarizer.Summarize(res.Timeline, res.Config.Cluster,
		providers.StartAnchors(),
		providers.CompletionAnchors(),
		providers.Milestones(),
		res.Providers)
	summary.RunID = res.RunID

	return render.Summary(os.Stdout, summary, opts.Output)
}
