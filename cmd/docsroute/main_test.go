package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunExitCodes(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "docsroute.yaml")

	require.Equal(t, 7, run([]string{"--config", filepath.Join(dir, "missing.yaml"), "validate"}), "config errors")

	require.Equal(t, 0, run([]string{"--config", cfg, "init"}))
	require.Equal(t, 2, run([]string{"--config", cfg, "init"}), "existing file is a usage error")

	// No descriptor source exists, so the primary group has no release.
	require.Equal(t, 7, run([]string{"--config", cfg, "validate"}))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "versions.json"), []byte(`[
	  {"id": "server", "basePath": "server", "versions": [{"version": "v26.0", "path": "v26.0", "startPage": "quick-start/"}]}
	]`), 0o600))
	require.Equal(t, 0, run([]string{"--config", cfg, "validate"}))
	require.Equal(t, 4, run([]string{"--config", cfg, "navbar", "unknown"}))
}
