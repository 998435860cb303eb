package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/deploytrace/deploytrace/cmd/deploytrace/handlers"
)

// Summarize returns the command deriving milestones and readiness from the
// timeline.
func Summarize() *cobra.Command {
	var opts handlers.Options

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize a deployment: milestones, durations, readiness",
		Long: `Aggregate the deployment timeline and derive the milestone table
(absolute timestamp, elapsed-from-start, delta-from-previous), a
per-phase breakdown, and how long the workload has been ready.

Text output is the narrative report; json and yaml carry the full
structured summary including every observed event.

Examples:
  # Narrative report
  deploytrace summarize --cluster sno-1

  # Structured summary for tooling
  deploytrace summarize --cluster sno-1 -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), overallTimeout)
			defer cancel()
			return handlers.Summarize(ctx, opts)
		},
	}

	bindCommonFlags(cmd, &opts)
	return cmd
}
