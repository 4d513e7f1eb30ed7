package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsroute/internal/config"
	derrors "git.home.luguber.info/inful/docsroute/internal/foundation/errors"
	"git.home.luguber.info/inful/docsroute/internal/seo"
)

const descriptors = `[
  {"id": "server", "group": "KurrentDB", "basePath": "server", "versions": [
    {"version": "v26.1", "path": "v26.1", "startPage": "quick-start/", "preview": true},
    {"version": "v26.0", "path": "v26.0", "startPage": "quick-start/"},
    {"version": "v25.1", "path": "v25.1", "startPage": "quick-start/"},
    {"version": "v5", "path": "v5", "startPage": "introduction.html", "deprecated": true}
  ]},
  {"id": "dotnet-client", "group": "Clients", "basePath": "clients/dotnet", "versions": [
    {"version": "v1.0", "path": "v1.0", "startPage": "getting-started.html"},
    {"version": "v23.3", "path": "legacy/v23.3", "startPage": "getting-started.html"}
  ]}
]`

func writeDescriptors(t *testing.T, dir, content string) string {
	t.Helper()
	p := filepath.Join(dir, "versions.json")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func testConfig(t *testing.T, sources ...string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Versioning.Sources = sources
	return cfg
}

func TestInit(t *testing.T) {
	src := writeDescriptors(t, t.TempDir(), descriptors)
	s, err := Init(testConfig(t, src))
	require.NoError(t, err)

	require.Len(t, s.Catalog().Groups(), 2)
	require.Positive(t, s.Resolver().Len())
	require.Equal(t, config.DefaultHostname, s.Canonicalizer().Hostname())
	require.False(t, s.LoadedAt().IsZero())

	dest, ok := s.Resolver().Resolve("/latest/quick-start")
	require.True(t, ok)
	require.Equal(t, "/server/v26.0/quick-start", dest)

	require.Equal(t, "/server/v26.0/configuration.md", s.Rewriter().Destination("@server/configuration.md", ""))
}

func TestInit_PrimaryMissingIsFatal(t *testing.T) {
	src := writeDescriptors(t, t.TempDir(), `[{"id": "cloud", "basePath": "cloud", "versions": []}]`)
	_, err := Init(testConfig(t, src))
	require.Error(t, err)

	ce, ok := derrors.AsClassified(err)
	require.True(t, ok)
	require.Equal(t, derrors.CategoryConfig, ce.Category())
	require.True(t, ce.IsFatal())
}

func TestInit_MalformedDescriptor(t *testing.T) {
	src := writeDescriptors(t, t.TempDir(), `{not json`)
	_, err := Init(testConfig(t, src))
	require.True(t, derrors.HasCategory(err, derrors.CategoryConfig))
}

func TestInspect(t *testing.T) {
	src := writeDescriptors(t, t.TempDir(), descriptors)
	s, err := Init(testConfig(t, src))
	require.NoError(t, err)

	r := s.Inspect("/server/v26.0/configuration.html")
	require.Equal(t, "server", r.Section)
	require.Equal(t, "v26.0", r.Version)
	require.Empty(t, r.Redirect)
	require.Nil(t, r.Rule)
	require.True(t, r.Indexed)
	require.Equal(t, "https://docs.kurrent.io/server/latest/configuration.html", r.Canonical)
	require.Equal(t, seo.Tags{Version: "v26.0", Category: "Server", Latest: true}, r.Tags)
	require.Equal(t, []string{"product:Server", "version:v26.0", "version:latest"}, r.SearchFilters)

	r = s.Inspect("/server/v5/introduction.html")
	require.False(t, r.Indexed)
	require.Empty(t, r.Canonical)
	require.Equal(t, []seo.HeadTag{{Name: seo.MetaRobots, Content: "noindex,nofollow"}}, r.HeadTags)
	require.Empty(t, r.SearchFilters)

	r = s.Inspect("/clients/dotnet/legacy")
	require.Equal(t, "/clients/dotnet/legacy/v23.3/getting-started.html", r.Redirect)
	require.NotNil(t, r.Rule)
}

func TestInit_ConfiguredOverrides(t *testing.T) {
	src := writeDescriptors(t, t.TempDir(), descriptors)
	cfg := testConfig(t, src)
	cfg.SEO.ExcludedVersions = map[string][]string{}
	cfg.SEO.Categories = map[string]string{"server": "KurrentDB"}
	cfg.Routing.Redirects = []config.Redirect{{From: "/old/(.*)", To: "/new/$1"}}
	cfg.Markdown.Replacements = []config.Replacement{{Prefix: "@db/", Target: "/server/{version}/"}}

	s, err := Init(cfg)
	require.NoError(t, err)

	r := s.Inspect("/server/v5/introduction.html")
	require.True(t, r.Indexed)
	require.Equal(t, "KurrentDB", r.Tags.Category)

	dest, ok := s.Resolver().Resolve("/old/page.html")
	require.True(t, ok)
	require.Equal(t, "/new/page.html", dest)
	_, ok = s.Resolver().Resolve("/tutorials/intro.html")
	require.False(t, ok)

	require.Equal(t, "/server/v25.1/x.md", s.Rewriter().Destination("@db/x.md", "v25.1"))
	require.Equal(t, "/new/x.md", s.Rewriter().Destination("/old/x.md", ""))
	require.Equal(t, "/latest", s.Rewriter().Destination("/latest", ""), "navigation rules do not rewrite markdown links")
}

func TestInit_ExampleConfigMatchesDefaults(t *testing.T) {
	dir := t.TempDir()
	src := writeDescriptors(t, dir, descriptors)
	path := filepath.Join(dir, "docsroute.yaml")
	require.NoError(t, config.Init(path, false))
	cfg, err := config.Load(path)
	require.NoError(t, err)

	fromExample, err := Init(cfg)
	require.NoError(t, err)
	fromDefaults, err := Init(testConfig(t, src))
	require.NoError(t, err)

	for _, p := range []string{
		"/tutorials/intro.html",
		"/getting-started/use-cases/outbox/tutorial-2.md",
		"/getting-started/use-cases/outbox/introduction.md",
		"/latest/quick-start",
		"/clients/dotnet/legacy",
	} {
		want, wantOK := fromDefaults.Resolver().Resolve(p)
		got, gotOK := fromExample.Resolver().Resolve(p)
		require.Equal(t, wantOK, gotOK, p)
		require.Equal(t, want, got, p)
	}
	for _, link := range []string{"@server/a.md", "@clients/grpc/a.md", "@client/dotnet/5.0/a.md", "@httpapi/a.md"} {
		require.Equal(t, fromDefaults.Rewriter().Destination(link, "v25.1"), fromExample.Rewriter().Destination(link, "v25.1"), link)
	}
	require.Equal(t, "/server/v5/http-api/a.md", fromExample.Rewriter().Destination("@httpapi/a.md", ""))
}

func TestInit_MovesPrecedeSiteRules(t *testing.T) {
	src := writeDescriptors(t, t.TempDir(), descriptors)
	cfg := testConfig(t, src)
	cfg.Routing.Redirects = []config.Redirect{{From: "/latest/(.*)", To: "/archive/$1"}}

	s, err := Init(cfg)
	require.NoError(t, err)

	dest, ok := s.Resolver().Resolve("/latest/quick-start")
	require.True(t, ok)
	require.Equal(t, "/archive/quick-start", dest)

	dest, ok = s.Resolver().Resolve("/latest")
	require.True(t, ok)
	require.Equal(t, "/server/v26.0/quick-start/", dest)
}
