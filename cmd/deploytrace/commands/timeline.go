package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/deploytrace/deploytrace/cmd/deploytrace/handlers"
)

// Timeline returns the command printing the raw aggregated event list.
//
// Optional flags: see bindCommonFlags.
func Timeline() *cobra.Command {
	var opts handlers.Options

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Print the chronological event timeline of a deployment",
		Long: `Query every known deployment signal on the hub and print the merged,
deduplicated, chronologically sorted event timeline.

Sources that are absent on this hub (an operator not installed, a
feature the deployment predates) simply contribute nothing; only an
unreachable hub or a missing cluster name fails the run.

Examples:
  # Timeline of cluster sno-1 via the local kubeconfig
  deploytrace timeline --cluster sno-1

  # Same, as JSON, through a jump host
  deploytrace timeline --cluster sno-1 -o json \
    --ssh-host hub.example.com --ssh-user core --ssh-key ~/.ssh/id_ed25519`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), overallTimeout)
			defer cancel()
			return handlers.Timeline(ctx, opts)
		},
	}

	bindCommonFlags(cmd, &opts)
	return cmd
}
