package handlers

import (
	"context"
	"os"

	"github.com/deploytrace/deploytrace/internal/render"
)

// Timeline handles the timeline command: the Get-Timeline operation.
func Timeline(ctx context.Context, opts Options) error {
	res, err := buildTimeline(ctx, opts)
	if err != nil {
		return err
	}
	return render.Timeline(os.Stdout, res.Timeline, opts.Output)
}
