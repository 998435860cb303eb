// Package handlers contains the execution logic behind each CLI command.
// The commands package parses flags and delegates here.
package handlers

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/google/uuid"

	"github.com/deploytrace/deploytrace/internal/config"
	"github.com/deploytrace/deploytrace/internal/hub"
	"github.com/deploytrace/deploytrace/internal/providers"
	"github.com/deploytrace/deploytrace/internal/timeline"
)

// Options carries the flag values shared by the timeline and summarize
// commands. Flags override config-file values.
type Options struct {
	ConfigPath string
	Cluster    string
	Namespace  string
	Kubeconfig string

	SSHHost string
	SSHPort string
	SSHUser string
	SSHKey  string

	GitOpsNamespaces []string
	ProviderTimeout  time.Duration

	Output  string
	Verbose bool
}

// resolveConfig merges the config file with flag overrides and validates
// the result. A validation failure here is the only way a run fails before
// touching the hub.
func resolveConfig(opts Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	if opts.Cluster != "" {
		cfg.Cluster = opts.Cluster
	}
	if opts.Namespace != "" {
		cfg.Namespace = opts.Namespace
	}
	if opts.Kubeconfig != "" {
		cfg.Kubeconfig = opts.Kubeconfig
	}
	if opts.SSHHost != "" {
		cfg.SSH.Host = opts.SSHHost
	}
	if opts.SSHPort != "" {
		cfg.SSH.Port = opts.SSHPort
	}
	if opts.SSHUser != "" {
		cfg.SSH.User = opts.SSHUser
	}
	if opts.SSHKey != "" {
		cfg.SSH.KeyPath = opts.SSHKey
	}
	if len(opts.GitOpsNamespaces) > 0 {
		cfg.GitOpsNamespaces = opts.GitOpsNamespaces
	}
	if opts.ProviderTimeout > 0 {
		cfg.ProviderTimeout = opts.ProviderTimeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newReader selects and dials the hub transport. Errors here are the
// transport-failure class: the run aborts with no partial output.
func newReader(cfg *config.Config) (hub.Reader, error) {
	if cfg.UseSSH() {
		comm, err := hub.NewSSHCommunicator(cfg.SSH.Host, cfg.SSH.Port, cfg.SSH.User, cfg.SSH.KeyPath)
		if err != nil {
			return nil, err
		}
		return hub.NewSSHReader(comm), nil
	}
	return hub.NewKubeReader(cfg.Kubeconfig)
}

// newLogger builds the stderr logger. Stdout stays reserved for rendered
// output.
func newLogger(verbose bool) logr.Logger {
	verbosity := 0
	if verbose {
		verbosity = 1
	}
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, args)
		} else {
			fmt.Fprintln(os.Stderr, args)
		}
	}, funcr.Options{Verbosity: verbosity}).WithName("deploytrace")
}

// withRun assigns a fresh run ID and attaches it to every log line of the
// run. The same ID lands in the structured summary.
func withRun(log logr.Logger) (string, logr.Logger) {
	id := uuid.NewString()
	return id, log.WithValues("run", id)
}

// buildResult is everything a command handler needs after aggregation.
type buildResult struct {
	Timeline  timeline.Timeline
	Providers []string
	RunID     string
	Config    *config.Config
}

// buildTimeline runs the full aggregation: resolve config, dial the hub,
// fan out to all providers, and merge. An unreachable hub is fatal; an
// individual absent or failing source is not.
func buildTimeline(ctx context.Context, opts Options) (buildResult, error) {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return buildResult{}, err
	}

	reader, err := newReader(cfg)
	if err != nil {
		return buildResult{}, err
	}

	runID, log := withRun(newLogger(opts.Verbose))
	registered := providers.Default(reader, providers.Params{
		Cluster:          cfg.Cluster,
		Namespace:        cfg.Namespace,
		GitOpsNamespaces: cfg.GitOpsNamespaces,
	}, log)

	builder := timeline.NewBuilder(registered,
		timeline.WithProviderTimeout(cfg.ProviderTimeout),
		timeline.WithLogger(log),
		timeline.WithFatalErrors(hub.IsTransport))

	tl, err := builder.Build(ctx, cfg.Cluster)
	if err != nil {
		return buildResult{}, err
	}
	return buildResult{
		Timeline:  tl,
		Providers: providers.Names(registered),
		RunID:     runID,
		Config:    cfg,
	}, nil
}
