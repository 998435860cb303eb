// Package config holds the connection and identity parameters of a
// deploytrace run.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrMissingCluster marks the fatal configuration error of a run without a
// cluster name: there is nothing to observe.
var ErrMissingCluster = errors.New("cluster name is required")

// SSH holds the remote-execution transport parameters. When Host is set,
// the hub is reached by running kubectl over SSH instead of talking to the
// API server directly.
type SSH struct {
	Host    string `yaml:"host" mapstructure:"host"`
	Port    string `yaml:"port" mapstructure:"port"`
	User    string `yaml:"user" mapstructure:"user"`
	KeyPath string `yaml:"keyPath" mapstructure:"keyPath"`
}

// Config is the full run configuration. File values are overridden by
// flags; Validate gates every run.
type Config struct {
	// Cluster is the managed cluster name, the workflow identifier.
	Cluster string `yaml:"cluster" mapstructure:"cluster"`

	// Namespace overrides the cluster's hub namespace (defaults to the
	// cluster name).
	Namespace string `yaml:"namespace" mapstructure:"namespace"`

	// Kubeconfig is the path to the hub kubeconfig for direct access.
	Kubeconfig string `yaml:"kubeconfig" mapstructure:"kubeconfig"`

	// GitOpsNamespaces are extra namespaces searched for the triggering
	// Application.
	GitOpsNamespaces []string `yaml:"gitopsNamespaces" mapstructure:"gitopsNamespaces"`

	// ProviderTimeout bounds each provider query.
	ProviderTimeout time.Duration `yaml:"providerTimeout" mapstructure:"providerTimeout"`

	SSH SSH `yaml:"ssh" mapstructure:"ssh"`
}

// UseSSH reports whether the SSH transport is selected.
func (c *Config) UseSSH() bool {
	return c.SSH.Host != ""
}

// Validate checks the parameters this run cannot proceed without.
// Everything else degrades gracefully at the provider level.
func (c *Config) Validate() error {
	if c.Cluster == "" {
		return ErrMissingCluster
	}
	if c.UseSSH() {
		if c.SSH.User == "" {
			return fmt.Errorf("ssh transport selected but no user configured")
		}
		if c.SSH.KeyPath == "" {
			return fmt.Errorf("ssh transport selected but no key path configured")
		}
	}
	return nil
}
