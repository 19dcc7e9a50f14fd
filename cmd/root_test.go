package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetServeFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		serveFlags.addr, serveFlags.dataset, serveFlags.k = "", "", 0
		cfgPath = "config.yaml"
		for _, name := range []string{"addr", "dataset", "neighbours", "config"} {
			f := rootCmd.Flags().Lookup(name)
			if f == nil {
				f = rootCmd.PersistentFlags().Lookup(name)
			}
			f.Changed = false
		}
	})
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestServiceConfigFlagsOverrideFile(t *testing.T) {
	resetServeFlags(t)
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("http:\n  addr: \":8081\"\nengine:\n  k: 5\n"), 0o644))

	require.NoError(t, rootCmd.ParseFlags([]string{"-c", cfgFile, "--addr", "127.0.0.1:9090", "-k", "7"}))
	cfg, err := serviceConfig(rootCmd)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.HTTP.Addr)
	assert.Equal(t, 7, cfg.Engine.K)
}

func TestServiceConfigWithoutFile(t *testing.T) {
	resetServeFlags(t)
	chdir(t, t.TempDir())
	cfg, err := serviceConfig(rootCmd)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
}

func TestServiceConfigRejectsInvalidNeighbours(t *testing.T) {
	resetServeFlags(t)
	chdir(t, t.TempDir())
	require.NoError(t, rootCmd.ParseFlags([]string{"-k", "0"}))
	_, err := serviceConfig(rootCmd)
	require.Error(t, err)
}
