// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing and flag binding. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/deploytrace/deploytrace/cmd/deploytrace/handlers"
)

// Root returns the root command for the deploytrace CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploytrace",
		Short: "Reconstruct the timeline of a managed-cluster deployment",
		Long: `deploytrace reads the hub cluster's records of a GitOps-driven
managed-cluster deployment and reconstructs a single chronological
timeline of what happened when, with derived milestones, durations,
and a readiness verdict.

All operations are read-only observations; nothing on the hub or the
managed cluster is ever mutated.`,
	}

	cmd.AddCommand(Timeline())
	cmd.AddCommand(Summarize())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}

// bindCommonFlags wires the flags shared by timeline and summarize into
// opts.
func bindCommonFlags(cmd *cobra.Command, opts *handlers.Options) {
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: deploytrace.yaml)")
	cmd.Flags().StringVar(&opts.Cluster, "cluster", "", "Managed cluster name (required unless set in the config file)")
	cmd.Flags().StringVarP(&opts.Namespace, "namespace", "n", "", "Hub namespace of the cluster (default: cluster name)")
	cmd.Flags().StringVar(&opts.Kubeconfig, "kubeconfig", "", "Path to the hub kubeconfig")
	cmd.Flags().StringVar(&opts.SSHHost, "ssh-host", "", "Reach the hub by running kubectl over SSH on this host")
	cmd.Flags().StringVar(&opts.SSHPort, "ssh-port", "", "SSH port (default: 22)")
	cmd.Flags().StringVar(&opts.SSHUser, "ssh-user", "", "SSH user")
	cmd.Flags().StringVar(&opts.SSHKey, "ssh-key", "", "Path to the SSH private key")
	cmd.Flags().StringSliceVar(&opts.GitOpsNamespaces, "gitops-namespace", nil, "Namespace(s) searched for the triggering GitOps Application")
	cmd.Flags().DurationVar(&opts.ProviderTimeout, "provider-timeout", 0, "Per-provider query timeout (default 30s)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format: text, json, or yaml")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Log provider-level detail to stderr")
}

// Timeout shared by both aggregation commands as the overall ceiling.
const overallTimeout = 5 * time.Minute
