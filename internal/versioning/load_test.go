package versioning

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docsroute/internal/foundation/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoad_MergesSourcesAndSkipsMissing(t *testing.T) {
	dir := t.TempDir()
	jsonSrc := writeFile(t, dir, "versions.json", `[
	  {"id": "server", "group": "KurrentDB", "basePath": "server", "versions": [
	    {"version": "v26.0", "path": "v26.0", "startPage": "quick-start/"}
	  ]}
	]`)
	yamlSrc := writeFile(t, dir, "legacy.yaml", `
- id: server
  group: Old
  basePath: old
  versions:
    - version: v5
      path: v5
      startPage: introduction.html
      deprecated: true
- id: node-client
  group: Clients
  basePath: clients/node
  versions:
    - version: v1.0
      path: v1.0
      preview: true
`)

	c, err := Load([]string{jsonSrc, filepath.Join(dir, "absent.json"), yamlSrc})
	require.NoError(t, err)

	groups := c.Groups()
	require.Len(t, groups, 2)
	require.Equal(t, "KurrentDB", groups[0].Group)
	require.Equal(t, []string{"v26.0", "v5"}, c.AllPaths("server"))
	require.True(t, groups[0].Versions[1].Deprecated)
	require.True(t, groups[1].Versions[0].Preview)
}

func TestLoad_NoSourcesYieldsEmptyCatalog(t *testing.T) {
	c, err := Load([]string{filepath.Join(t.TempDir(), "nope.json")})
	require.NoError(t, err)
	require.Empty(t, c.Groups())
}

func TestLoad_MalformedSourceIsConfigError(t *testing.T) {
	src := writeFile(t, t.TempDir(), "broken.json", `[{"id": "server", "versions": [`)
	_, err := Load([]string{src})
	require.Error(t, err)
	require.True(t, derrors.HasCategory(err, derrors.CategoryConfig))
}

func TestLoad_GroupWithoutIDIsRejected(t *testing.T) {
	src := writeFile(t, t.TempDir(), "noid.yaml", "- basePath: server\n  versions: []\n")
	_, err := Load([]string{src})
	require.True(t, derrors.HasCategory(err, derrors.CategoryConfig))
}
