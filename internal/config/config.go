package config

import "time"

// Config is the docsroute configuration file.
type Config struct {
	Version    string           `yaml:"version"`
	Site       SiteConfig       `yaml:"site"`
	Versioning VersioningConfig `yaml:"versioning"`
	SEO        SEOConfig        `yaml:"seo"`
	Routing    RoutingConfig    `yaml:"routing"`
	Markdown   MarkdownConfig   `yaml:"markdown"`
	Server     ServerConfig     `yaml:"server"`
	Reload     ReloadConfig     `yaml:"reload"`

	// path is the file the configuration was loaded from, if any.
	path string
}

// SiteConfig describes the public documentation site.
type SiteConfig struct {
	Hostname string `yaml:"hostname"` // Origin used for canonical URLs
}

// VersioningConfig points at the version descriptor files.
type VersioningConfig struct {
	Sources         []string `yaml:"sources"`           // JSON or YAML descriptor files, merged by group id
	Primary         string   `yaml:"primary"`           // Group backing /latest
	Operator        string   `yaml:"operator"`          // Kubernetes operator group
	ServerStartPage string   `yaml:"server_start_page"` // Start page for unknown /server/:version
}

// SEOConfig controls indexing metadata.
type SEOConfig struct {
	// ExcludedVersions maps a section to versions retired from indexing.
	// Omitted means the built-in table; an empty map excludes nothing.
	ExcludedVersions map[string][]string `yaml:"excluded_versions"`
	Categories       map[string]string   `yaml:"categories"` // Extra section labels, override built-ins
}

// RoutingConfig controls the redirect rule set.
type RoutingConfig struct {
	ClientLanguages   []string   `yaml:"client_languages"`
	ClientGroupSuffix string     `yaml:"client_group_suffix"`
	Redirects         []Redirect `yaml:"redirects"` // Content moves; omitted means the built-in set
}

// Redirect is a regular expression move evaluated before the site rules.
type Redirect struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// MarkdownConfig controls link rewriting in markdown sources.
type MarkdownConfig struct {
	Replacements []Replacement `yaml:"replacements"` // Omitted means the built-in set
}

// Replacement maps a link prefix to a site path. Target may contain {version}.
type Replacement struct {
	Prefix string `yaml:"prefix"`
	Target string `yaml:"target"`
}

// ServerConfig configures `docsroute serve`.
type ServerConfig struct {
	Listen            string `yaml:"listen"`
	RedirectStatus    int    `yaml:"redirect_status"`
	ReadHeaderTimeout string `yaml:"read_header_timeout"`
	ShutdownTimeout   string `yaml:"shutdown_timeout"`
	Metrics           bool   `yaml:"metrics"`
}

// ReloadConfig controls how a running server picks up descriptor changes.
type ReloadConfig struct {
	Watch    bool        `yaml:"watch"`    // Watch config and descriptor files
	Debounce string      `yaml:"debounce"` // Quiet period before a watched change reloads
	Interval string      `yaml:"interval"` // Periodic reload; empty disables
	Retry    RetryConfig `yaml:"retry"`
}

// RetryBackoffMode selects how the delay between reload retries grows.
type RetryBackoffMode string

const (
	RetryBackoffFixed       RetryBackoffMode = "fixed"
	RetryBackoffLinear      RetryBackoffMode = "linear"
	RetryBackoffExponential RetryBackoffMode = "exponential"
)

// RetryConfig controls how a failed watched reload is retried.
type RetryConfig struct {
	Backoff    RetryBackoffMode `yaml:"backoff"`
	Initial    string           `yaml:"initial"`
	Max        string           `yaml:"max"`
	MaxRetries *int             `yaml:"max_retries"` // 0 disables retries
}

// Path returns the file the configuration was loaded from, or "".
func (c *Config) Path() string { return c.path }

// ReadHeaderTimeoutDuration returns the parsed server read header timeout.
func (s ServerConfig) ReadHeaderTimeoutDuration() time.Duration {
	return mustDuration(s.ReadHeaderTimeout)
}

// ShutdownTimeoutDuration returns the parsed graceful shutdown timeout.
func (s ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return mustDuration(s.ShutdownTimeout)
}

// DebounceDuration returns the parsed watch debounce.
func (r ReloadConfig) DebounceDuration() time.Duration {
	return mustDuration(r.Debounce)
}

// IntervalDuration returns the parsed reload interval, zero when disabled.
func (r ReloadConfig) IntervalDuration() time.Duration {
	return mustDuration(r.Interval)
}

// InitialDuration returns the parsed first retry delay.
func (r RetryConfig) InitialDuration() time.Duration {
	return mustDuration(r.Initial)
}

// MaxDuration returns the parsed retry delay cap.
func (r RetryConfig) MaxDuration() time.Duration {
	return mustDuration(r.Max)
}

// Retries returns the configured retry count.
func (r RetryConfig) Retries() int {
	if r.MaxRetries == nil {
		return 0
	}
	return *r.MaxRetries
}

// mustDuration parses a duration already checked by validation.
func mustDuration(s string) time.Duration {
	if s == "" {
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}
