package config

// DefaultApplier applies defaults for one configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config)
	Domain() string
}

// Default values.
const (
	DefaultHostname          = "https://docs.kurrent.io"
	DefaultSource            = "versions.json"
	DefaultPrimary           = "server"
	DefaultOperator          = "kubernetes-operator"
	DefaultServerStartPage   = "quick-start/"
	DefaultClientGroupSuffix = "-client"
	DefaultListen            = ":8080"
	DefaultRedirectStatus    = 301
	DefaultReadHeaderTimeout = "5s"
	DefaultShutdownTimeout   = "10s"
	DefaultDebounce          = "500ms"
	DefaultRetryInitial      = "500ms"
	DefaultRetryMax          = "10s"
	DefaultRetryAttempts     = 3
)

// DefaultClientLanguages is the client documentation allow-list.
var DefaultClientLanguages = []string{"dotnet", "golang", "java", "node", "python", "rust"}

type siteDefaults struct{}

func (siteDefaults) Domain() string { return "site" }

func (siteDefaults) ApplyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}
	if cfg.Site.Hostname == "" {
		cfg.Site.Hostname = DefaultHostname
	}
}

type versioningDefaults struct{}

func (versioningDefaults) Domain() string { return "versioning" }

func (versioningDefaults) ApplyDefaults(cfg *Config) {
	v := &cfg.Versioning
	if len(v.Sources) == 0 {
		v.Sources = []string{DefaultSource}
	}
	if v.Primary == "" {
		v.Primary = DefaultPrimary
	}
	if v.Operator == "" {
		v.Operator = DefaultOperator
	}
	if v.ServerStartPage == "" {
		v.ServerStartPage = DefaultServerStartPage
	}
}

type routingDefaults struct{}

func (routingDefaults) Domain() string { return "routing" }

func (routingDefaults) ApplyDefaults(cfg *Config) {
	if len(cfg.Routing.ClientLanguages) == 0 {
		cfg.Routing.ClientLanguages = append([]string(nil), DefaultClientLanguages...)
	}
	if cfg.Routing.ClientGroupSuffix == "" {
		cfg.Routing.ClientGroupSuffix = DefaultClientGroupSuffix
	}
}

type serverDefaults struct{}

func (serverDefaults) Domain() string { return "server" }

func (serverDefaults) ApplyDefaults(cfg *Config) {
	s := &cfg.Server
	if s.Listen == "" {
		s.Listen = DefaultListen
	}
	if s.RedirectStatus == 0 {
		s.RedirectStatus = DefaultRedirectStatus
	}
	if s.ReadHeaderTimeout == "" {
		s.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
	if s.ShutdownTimeout == "" {
		s.ShutdownTimeout = DefaultShutdownTimeout
	}
}

type reloadDefaults struct{}

func (reloadDefaults) Domain() string { return "reload" }

func (reloadDefaults) ApplyDefaults(cfg *Config) {
	r := &cfg.Reload
	if r.Debounce == "" {
		r.Debounce = DefaultDebounce
	}
	if r.Retry.Backoff == "" {
		r.Retry.Backoff = RetryBackoffLinear
	}
	if r.Retry.Initial == "" {
		r.Retry.Initial = DefaultRetryInitial
	}
	if r.Retry.Max == "" {
		r.Retry.Max = DefaultRetryMax
	}
	if r.Retry.MaxRetries == nil {
		n := DefaultRetryAttempts
		r.Retry.MaxRetries = &n
	}
}

// defaultAppliers run in order.
var defaultAppliers = []DefaultApplier{siteDefaults{}, versioningDefaults{}, routingDefaults{}, serverDefaults{}, reloadDefaults{}}

func applyDefaults(cfg *Config) {
	for _, a := range defaultAppliers {
		a.ApplyDefaults(cfg)
	}
}
