package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docsroute/internal/foundation/errors"
	"git.home.luguber.info/inful/docsroute/internal/logfields"
	"git.home.luguber.info/inful/docsroute/internal/markdown"
	"git.home.luguber.info/inful/docsroute/internal/redirect"
)

// CurrentVersion is the configuration format written by Init.
const CurrentVersion = "1"

// Load reads, normalizes, defaults and validates a configuration file.
// Relative descriptor sources are resolved against the file's directory.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(filepath.Clean(configPath))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, derrors.ConfigError("configuration file not found").
			WithContext("path", configPath).
			Build()
	}
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "failed to read configuration file").
			WithContext("path", configPath).
			Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "invalid configuration file").
			WithContext("path", configPath).
			Build()
	}
	cfg.path = configPath
	cfg.resolveSources(filepath.Dir(configPath))
	return cfg, nil
}

// envRef only matches the braced form so "$1" in redirect templates survives.
var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

func expandEnv(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(ref string) string {
		return os.Getenv(ref[2 : len(ref)-1])
	})
}

// Parse decodes configuration YAML after expanding ${VAR} references and
// returns the normalized, defaulted and validated result.
func Parse(data []byte) (*Config, error) {
	expanded := expandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "failed to decode configuration").Build()
	}

	return finish(&cfg)
}

// Default returns the built-in configuration, as if an empty file was loaded.
func Default() *Config {
	cfg, err := finish(&Config{})
	if err != nil {
		// The built-in defaults always validate.
		panic(err)
	}
	return cfg
}

func finish(cfg *Config) (*Config, error) {
	res := NormalizeConfig(cfg)
	for _, w := range res.Warnings {
		slog.Warn("Configuration normalized", slog.String("detail", w))
	}
	applyDefaults(cfg)
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) resolveSources(dir string) {
	for i, src := range c.Versioning.Sources {
		if !filepath.IsAbs(src) {
			c.Versioning.Sources[i] = filepath.Join(dir, src)
		}
	}
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return derrors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	retries := DefaultRetryAttempts
	example := Config{
		Version: CurrentVersion,
		Site:    SiteConfig{Hostname: "https://docs.kurrent.io"},
		Versioning: VersioningConfig{
			Sources:         []string{"versions.json", "versions.local.yaml"},
			Primary:         "server",
			Operator:        "kubernetes-operator",
			ServerStartPage: "quick-start/",
		},
		SEO: SEOConfig{
			ExcludedVersions: map[string][]string{"server": {"v5", "v24.6"}},
			Categories:       map[string]string{"dev-center": "Dev Center"},
		},
		Routing: RoutingConfig{
			ClientLanguages:   []string{"dotnet", "golang", "java", "node", "python", "rust"},
			ClientGroupSuffix: "-client",
			Redirects:         exampleRedirects(),
		},
		Markdown: MarkdownConfig{Replacements: exampleReplacements()},
		Server: ServerConfig{
			Listen:            ":8080",
			RedirectStatus:    301,
			ReadHeaderTimeout: "5s",
			ShutdownTimeout:   "10s",
			Metrics:           true,
		},
		Reload: ReloadConfig{
			Watch:    true,
			Debounce: "500ms",
			Interval: "15m",
			Retry:    RetryConfig{Backoff: RetryBackoffExponential, Initial: "250ms", Max: "5s", MaxRetries: &retries},
		},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryInternal, "failed to marshal example configuration").Build()
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write configuration file").
			WithContext("path", configPath).
			Build()
	}
	slog.Info("Wrote example configuration", logfields.File(configPath))
	return nil
}

// The example lists mirror the built-in sets: an explicit list replaces them.
func exampleRedirects() []Redirect {
	out := make([]Redirect, len(redirect.DefaultMoves))
	for i, m := range redirect.DefaultMoves {
		out[i] = Redirect{From: m.From, To: m.To}
	}
	return out
}

func exampleReplacements() []Replacement {
	defaults := markdown.DefaultReplacements()
	out := make([]Replacement, len(defaults))
	for i, r := range defaults {
		out[i] = Replacement{Prefix: r.Prefix, Target: r.Target}
	}
	return out
}
