// Package main is the entry point for the deploytrace CLI.
//
// deploytrace reconstructs the timeline of a GitOps-driven managed-cluster
// deployment from the hub cluster's records and derives milestones,
// durations, and a readiness verdict from it.
//
// Commands: timeline, summarize, version, completion.
//
// For detailed usage information, run:
//
//	deploytrace --help
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/deploytrace/deploytrace/cmd/deploytrace/commands"
	"github.com/deploytrace/deploytrace/internal/config"
	"github.com/deploytrace/deploytrace/internal/hub"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, fatalMessage(err))
		os.Exit(1)
	}
}

// fatalMessage names the failed prerequisite for the two fatal error
// classes; anything else is printed as-is.
func fatalMessage(err error) string {
	switch {
	case errors.Is(err, config.ErrMissingCluster):
		return fmt.Sprintf("configuration error: %v", err)
	case errors.Is(err, hub.ErrTransport):
		return fmt.Sprintf("hub unreachable: %v", err)
	default:
		return err.Error()
	}
}
