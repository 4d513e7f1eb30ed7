package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docsroute/internal/foundation/errors"
	"git.home.luguber.info/inful/docsroute/internal/markdown"
	"git.home.luguber.info/inful/docsroute/internal/redirect"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docsroute.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("DOCS_HOST", "https://docs.example.test")
	path := writeConfig(t, `
version: "1"
site:
  hostname: ${DOCS_HOST}/
versioning:
  sources: [versions.json, /abs/extra.yaml]
  primary: server
seo:
  excluded_versions:
    server: [v5]
  categories:
    dev-center: Developer Center
routing:
  client_languages: [" Dotnet", java, java]
  redirects:
    - from: /tutorials/(.*)
      to: /dev-center/tutorials/$1
server:
  listen: ":9090"
  redirect_status: 308
reload:
  watch: true
  interval: 10m
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, path, cfg.Path())
	require.Equal(t, "https://docs.example.test", cfg.Site.Hostname)
	require.Equal(t, []string{filepath.Join(filepath.Dir(path), "versions.json"), "/abs/extra.yaml"}, cfg.Versioning.Sources)
	require.Equal(t, DefaultOperator, cfg.Versioning.Operator)
	require.Equal(t, map[string][]string{"server": {"v5"}}, cfg.SEO.ExcludedVersions)
	require.Equal(t, "Developer Center", cfg.SEO.Categories["dev-center"])
	require.Equal(t, []string{"dotnet", "java"}, cfg.Routing.ClientLanguages)
	require.Equal(t, DefaultClientGroupSuffix, cfg.Routing.ClientGroupSuffix)
	require.Equal(t, []Redirect{{From: "/tutorials/(.*)", To: "/dev-center/tutorials/$1"}}, cfg.Routing.Redirects)
	require.Nil(t, cfg.Markdown.Replacements)
	require.Equal(t, ":9090", cfg.Server.Listen)
	require.Equal(t, 308, cfg.Server.RedirectStatus)
	require.Equal(t, 5*time.Second, cfg.Server.ReadHeaderTimeoutDuration())
	require.Equal(t, 10*time.Minute, cfg.Reload.IntervalDuration())
	require.Equal(t, 500*time.Millisecond, cfg.Reload.DebounceDuration())
	require.True(t, cfg.Reload.Watch)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	require.True(t, derrors.HasCategory(err, derrors.CategoryConfig))
}

func TestLoad_UnknownField(t *testing.T) {
	_, err := Load(writeConfig(t, "sites:\n  hostname: x\n"))
	require.Error(t, err)
	require.True(t, derrors.HasCategory(err, derrors.CategoryConfig))
}

func TestParse_EmptyUsesDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, DefaultHostname, cfg.Site.Hostname)
	require.Equal(t, []string{DefaultSource}, cfg.Versioning.Sources)
	require.Equal(t, DefaultClientLanguages, cfg.Routing.ClientLanguages)
	require.Nil(t, cfg.SEO.ExcludedVersions)
	require.Zero(t, cfg.Reload.IntervalDuration())
}

func TestParse_Validation(t *testing.T) {
	tests := map[string]string{
		"hostname":        "site:\n  hostname: docs.example.test\n",
		"redirect status": "server:\n  redirect_status: 200\n",
		"timeout":         "server:\n  read_header_timeout: soon\n",
		"interval":        "reload:\n  interval: 10ms\n",
		"negative":        "reload:\n  debounce: -1s\n",
		"language":        "routing:\n  client_languages: [\"c sharp\"]\n",
		"redirect regexp": "routing:\n  redirects:\n    - from: /a/(\n      to: /b\n",
		"redirect target": "routing:\n  redirects:\n    - from: /a\n",
		"replacement":     "markdown:\n  replacements:\n    - target: /x\n",
		"retry backoff":   "reload:\n  retry:\n    backoff: random\n",
		"retry attempts":  "reload:\n  retry:\n    max_retries: -1\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(content))
			require.Error(t, err)
			require.True(t, derrors.HasCategory(err, derrors.CategoryValidation))
		})
	}
}

func TestParse_RetryDefaults(t *testing.T) {
	cfg := Default()
	require.Equal(t, RetryBackoffLinear, cfg.Reload.Retry.Backoff)
	require.Equal(t, 500*time.Millisecond, cfg.Reload.Retry.InitialDuration())
	require.Equal(t, 10*time.Second, cfg.Reload.Retry.MaxDuration())
	require.Equal(t, DefaultRetryAttempts, cfg.Reload.Retry.Retries())

	cfg, err := Parse([]byte("reload:\n  retry:\n    max_retries: 0\n"))
	require.NoError(t, err)
	require.Zero(t, cfg.Reload.Retry.Retries(), "an explicit zero disables retries")
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docsroute.yaml")
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "server", cfg.Versioning.Primary)
	require.Equal(t, 15*time.Minute, cfg.Reload.IntervalDuration())
	require.NotEmpty(t, cfg.Markdown.Replacements)

	err = Init(path, false)
	require.Error(t, err)
	require.True(t, derrors.HasCategory(err, derrors.CategoryValidation))
	require.NoError(t, Init(path, true))
}

func TestInit_ListsMatchBuiltins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docsroute.yaml")
	require.NoError(t, Init(path, false))
	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Routing.Redirects, len(redirect.DefaultMoves))
	for i, m := range redirect.DefaultMoves {
		require.Equal(t, Redirect{From: m.From, To: m.To}, cfg.Routing.Redirects[i])
	}
	defaults := markdown.DefaultReplacements()
	require.Len(t, cfg.Markdown.Replacements, len(defaults))
	for i, r := range defaults {
		require.Equal(t, Replacement{Prefix: r.Prefix, Target: r.Target}, cfg.Markdown.Replacements[i])
	}
}

func TestSnapshot(t *testing.T) {
	a := Default()
	b := Default()
	require.Equal(t, a.Snapshot(), b.Snapshot())

	b.Server.Listen = ":1"
	require.Equal(t, a.Snapshot(), b.Snapshot(), "server settings do not affect routing")

	b.SEO.ExcludedVersions = map[string][]string{}
	require.NotEqual(t, a.Snapshot(), b.Snapshot(), "an explicit empty exclusion table differs from the built-in one")

	var nilCfg *Config
	require.Empty(t, nilCfg.Snapshot())
}

func TestNormalizeConfig(t *testing.T) {
	cfg := &Config{Routing: RoutingConfig{ClientLanguages: []string{"Rust", "", "rust"}}}
	res := NormalizeConfig(cfg)
	require.Equal(t, []string{"rust"}, cfg.Routing.ClientLanguages)
	require.NotEmpty(t, res.Warnings)
}

func TestExpandEnv_OnlyBracedReferences(t *testing.T) {
	t.Setenv("DOCSROUTE_TEST_HOST", "docs.example.test")
	require.Equal(t, "https://docs.example.test/$1 $HOME", expandEnv("https://${DOCSROUTE_TEST_HOST}/$1 $HOME"))
	require.Equal(t, "x", expandEnv("x${DOCSROUTE_TEST_UNSET}"))
}
