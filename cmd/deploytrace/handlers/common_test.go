package handlers

import (
	"testing"
	"time"

	"github.com/go-logr/logr/funcr"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploytrace/deploytrace/internal/config"
)

func TestResolveConfigFlagOverrides(t *testing.T) {
	t.Chdir(t.TempDir()) // no config file in reach

	opts := Options{
		Cluster:          "sno-1",
		Namespace:        "custom-ns",
		Kubeconfig:       "/tmp/kc",
		GitOpsNamespaces: []string{"a", "b"},
		ProviderTimeout:  10 * time.Second,
	}

	cfg, err := resolveConfig(opts)
	require.NoError(t, err)
	assert.Equal(t, "sno-1", cfg.Cluster)
	assert.Equal(t, "custom-ns", cfg.Namespace)
	assert.Equal(t, "/tmp/kc", cfg.Kubeconfig)
	assert.Equal(t, []string{"a", "b"}, cfg.GitOpsNamespaces)
	assert.Equal(t, 10*time.Second, cfg.ProviderTimeout)
	assert.False(t, cfg.UseSSH())
}

func TestResolveConfigMissingCluster(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := resolveConfig(Options{})
	assert.ErrorIs(t, err, config.ErrMissingCluster)
}

func TestResolveConfigSSHSelection(t *testing.T) {
	t.Chdir(t.TempDir())

	opts := Options{
		Cluster: "sno-1",
		SSHHost: "hub.example.com",
		SSHUser: "core",
		SSHKey:  "/key",
	}

	cfg, err := resolveConfig(opts)
	require.NoError(t, err)
	assert.True(t, cfg.UseSSH())

	// Host without credentials is a configuration error, not a transport one.
	_, err = resolveConfig(Options{Cluster: "sno-1", SSHHost: "hub.example.com"})
	assert.Error(t, err)
}

func TestWithRunAttachesIDToLogLines(t *testing.T) {
	var lines []string
	log := funcr.New(func(_, args string) {
		lines = append(lines, args)
	}, funcr.Options{})

	id, log := withRun(log)
	require.NoError(t, uuid.Validate(id))

	log.Info("collecting")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], id)
}
